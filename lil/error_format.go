package lil

import (
	"fmt"
	"strconv"
	"strings"
)

// lineColumn converts a byte offset to a 1-based line and column.
func lineColumn(source string, off int) (int, int) {
	if source == "" || off < 0 {
		return 0, 0
	}
	if off > len(source) {
		off = len(source)
	}
	line := 1 + strings.Count(source[:off], "\n")
	start := strings.LastIndexByte(source[:off], '\n') + 1
	return line, off - start + 1
}

func formatCodeFrame(source string, line, column int) string {
	if source == "" || line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	text := strings.TrimRight(lines[line-1], "\r")
	if column <= 0 {
		column = 1
	}
	if column > len(text)+1 {
		column = len(text) + 1
	}

	label := strconv.Itoa(line)
	gutter := strings.Repeat(" ", len(label))
	caret := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		line,
		column,
		label,
		text,
		gutter,
		caret,
	)
}
