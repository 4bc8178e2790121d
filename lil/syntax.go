package lil

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxError describes malformed code found by CheckSyntax.
type SyntaxError struct {
	Pos     int
	Line    int
	Column  int
	Message string
	// Incomplete is set when the code ends inside an open brace, bracket,
	// quote or comment, so more input could complete it.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// CheckSyntax scans code for unbalanced braces, brackets, quotes and block
// comments without evaluating anything.
func CheckSyntax(code string) error {
	s := &syntaxScanner{code: code}
	if err := s.script(0, len(code)); err != nil {
		err.Line, err.Column = lineColumn(code, err.Pos)
		return err
	}
	return nil
}

// Incomplete reports whether code is an unfinished prefix of a valid
// script, such as a function body whose closing brace has not been typed.
func Incomplete(code string) bool {
	var se *SyntaxError
	return errors.As(CheckSyntax(code), &se) && se.Incomplete
}

type syntaxScanner struct {
	code string
}

func (s *syntaxScanner) at(i, end int) byte {
	if i < end {
		return s.code[i]
	}
	return 0
}

func incomplete(pos int, msg string) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: msg, Incomplete: true}
}

func (s *syntaxScanner) script(pos, end int) *SyntaxError {
	wordStart := true
	for pos < end {
		c := s.code[pos]
		switch {
		case c == '#' && wordStart:
			if s.at(pos+1, end) == '#' && s.at(pos+2, end) != '#' {
				close := strings.Index(s.code[pos+2:end], "##")
				if close < 0 {
					return incomplete(pos, "unterminated comment")
				}
				pos += close + 4
				continue
			}
			for pos < end && !isEOL(s.code[pos]) {
				pos++
			}
			continue
		case c == '\\' && wordStart:
			// Outside quotes a backslash only joins lines, and only
			// between words. Anywhere else it is an ordinary byte.
			if pos+1 >= end {
				return incomplete(pos, "line continuation at end of input")
			}
			if next := s.code[pos+1]; next != '\n' && next != '\r' {
				wordStart = false
				pos++
				continue
			}
			pos++
			for pos < end && (s.code[pos] == '\n' || s.code[pos] == '\r') {
				pos++
			}
			continue
		case c == '{':
			close := s.matchBrace(pos, end)
			if close < 0 {
				return incomplete(pos, "unterminated brace")
			}
			pos = close + 1
			wordStart = false
			continue
		case c == '[':
			close := s.matchBracket(pos, end)
			if close < 0 {
				return incomplete(pos, "unterminated bracket")
			}
			if err := s.script(pos+1, close); err != nil {
				return err
			}
			pos = close + 1
			wordStart = false
			continue
		case c == '"' || c == '\'':
			close, err := s.quoted(pos, end)
			if err != nil {
				return err
			}
			pos = close + 1
			wordStart = false
			continue
		case c == '}' || c == ']':
			return &SyntaxError{Pos: pos, Message: fmt.Sprintf("unexpected '%c'", c)}
		case isSpace(c) || isEOL(c):
			wordStart = true
		default:
			wordStart = false
		}
		pos++
	}
	return nil
}

func (s *syntaxScanner) matchBrace(pos, end int) int {
	depth := 0
	for ; pos < end; pos++ {
		switch s.code[pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return pos
			}
		}
	}
	return -1
}

func (s *syntaxScanner) matchBracket(pos, end int) int {
	depth := 0
	for ; pos < end; pos++ {
		switch s.code[pos] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return pos
			}
		}
	}
	return -1
}

// quoted returns the position of the closing quote.
func (s *syntaxScanner) quoted(start, end int) (int, *SyntaxError) {
	quote := s.code[start]
	pos := start + 1
	for pos < end {
		switch c := s.code[pos]; {
		case c == '\\':
			pos += 2
			continue
		case c == quote:
			return pos, nil
		case c == '[':
			close := s.matchBracket(pos, end)
			if close < 0 {
				return 0, incomplete(pos, "unterminated bracket")
			}
			if err := s.script(pos+1, close); err != nil {
				return 0, err
			}
			pos = close + 1
			continue
		case c == '$' && s.at(pos+1, end) == '{':
			close := s.matchBrace(pos+1, end)
			if close < 0 {
				return 0, incomplete(pos+1, "unterminated brace")
			}
			pos = close + 1
			continue
		}
		pos++
	}
	return 0, incomplete(start, "unterminated quoted string")
}
