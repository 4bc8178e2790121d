package lil

import "fmt"

// parser is a cursor over one code buffer. Every nested parse (command
// substitution, function body, eval) gets its own cursor.
type parser struct {
	interp    *Interp
	code      string
	head      int
	ignoreEOL bool
	// root marks the buffer handed to the outermost parse.
	root     bool
	cmdStart int
}

func isEOL(c byte) bool {
	return c == '\n' || c == '\r' || c == ';'
}

func isSpecial(c byte) bool {
	switch c {
	case '$', '{', '}', '[', ']', '"', '\'', ';':
		return true
	}
	return false
}

func (p *parser) at(i int) byte {
	if i < len(p.code) {
		return p.code[i]
	}
	return 0
}

func (p *parser) done() bool {
	return p.head >= len(p.code)
}

func (p *parser) atEOL() bool {
	return !p.ignoreEOL && !p.done() && isEOL(p.code[p.head])
}

// skipSpaces moves past whitespace, comments and line continuations. It
// stops at a statement separator unless the cursor ignores them.
func (p *parser) skipSpaces() {
	for !p.done() {
		c := p.code[p.head]
		switch {
		case c == '#':
			if p.at(p.head+1) == '#' && p.at(p.head+2) != '#' {
				p.skipBlockComment()
				continue
			}
			for !p.done() && !isEOL(p.code[p.head]) {
				p.head++
			}
		case c == '\\' && (p.at(p.head+1) == '\n' || p.at(p.head+1) == '\r'):
			p.head++
			for !p.done() && (p.code[p.head] == '\n' || p.code[p.head] == '\r') {
				p.head++
			}
		case isEOL(c):
			if !p.ignoreEOL {
				return
			}
			p.head++
		case isSpace(c):
			p.head++
		default:
			return
		}
	}
}

func (p *parser) skipBlockComment() {
	start := p.head
	p.head += 2
	for !p.done() {
		if p.code[p.head] == '#' && p.at(p.head+1) == '#' && p.at(p.head+2) != '#' {
			p.head += 2
			return
		}
		p.head++
	}
	p.interp.fail(p, start, ErrSyntax, "unterminated comment")
}

// nextWord reads one word part starting at the cursor.
func (p *parser) nextWord() *Value {
	p.skipSpaces()
	if p.done() {
		return Empty()
	}
	switch c := p.code[p.head]; c {
	case '$':
		return p.dollarPart()
	case '{':
		return p.bracePart()
	case '[':
		return p.bracketPart()
	case '"', '\'':
		return p.quotedPart(c)
	}
	start := p.head
	for !p.done() && !isSpace(p.code[p.head]) && !isSpecial(p.code[p.head]) {
		p.head++
	}
	return NewString(p.code[start:p.head])
}

func (p *parser) bracePart() *Value {
	start := p.head
	p.head++
	depth := 1
	for !p.done() {
		c := p.code[p.head]
		p.head++
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return NewString(p.code[start+1 : p.head-1])
			}
		}
	}
	p.interp.fail(p, start, ErrSyntax, "unterminated brace")
	return NewString(p.code[start+1:])
}

// bracketPart evaluates a [command] and returns its result.
func (p *parser) bracketPart() *Value {
	start := p.head
	p.head++
	depth := 1
	for !p.done() {
		c := p.code[p.head]
		p.head++
		switch c {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return p.interp.parse(p.code[start+1:p.head-1], false)
			}
		}
	}
	p.interp.fail(p, start, ErrSyntax, "unterminated bracket")
	return Empty()
}

// dollarPart evaluates $name as the dollar prefix followed by name.
func (p *parser) dollarPart() *Value {
	p.head++
	name := p.nextWord()
	code := p.interp.dollarPrefix + NewList(name).ToValue(true).String()
	return p.interp.parse(code, false)
}

func (p *parser) quotedPart(quote byte) *Value {
	start := p.head
	p.head++
	val := Empty()
	for !p.done() {
		c := p.code[p.head]
		switch c {
		case '$', '[':
			var part *Value
			if c == '$' {
				part = p.dollarPart()
			} else {
				part = p.bracketPart()
			}
			val.AppendValue(part)
			if p.interp.err != nil {
				return val
			}
			continue
		case '\\':
			p.head++
			if p.done() {
				break
			}
			val.AppendByte(unescape(p.code[p.head]))
		case quote:
			p.head++
			return val
		default:
			val.AppendByte(c)
		}
		p.head++
	}
	p.interp.fail(p, start, ErrSyntax, "unterminated quoted string")
	return val
}

func unescape(c byte) byte {
	switch c {
	case 'b':
		return '\b'
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'v':
		return '\v'
	case 'f':
		return '\f'
	case 'r':
		return '\r'
	case '0':
		return 0
	case 'a':
		return '\a'
	case 'c':
		return '}'
	case 'o':
		return '{'
	}
	return c
}

// substitute reads the words of one command, or of a whole list when the
// cursor ignores statement separators. It returns nil on a syntax error.
func (p *parser) substitute() *List {
	words := NewList()
	p.skipSpaces()
	for !p.done() && !p.atEOL() && p.interp.err == nil {
		word := Empty()
		for {
			head := p.head
			part := p.nextWord()
			if p.head == head {
				p.interp.fail(p, head, ErrSyntax, fmt.Sprintf("unexpected '%c'", p.code[head]))
				return nil
			}
			word.AppendValue(part)
			if p.done() || isSpace(p.code[p.head]) || isEOL(p.code[p.head]) || p.interp.err != nil {
				break
			}
		}
		p.skipSpaces()
		words.Append(word)
	}
	return words
}

// SubstToList splits code into words the way a command line is split, with
// statement separators treated as whitespace. $ and [ ] substitutions are
// performed.
func (interp *Interp) SubstToList(code *Value) *List {
	p := &parser{interp: interp, code: code.String(), ignoreEOL: true}
	words := p.substitute()
	if words == nil {
		return NewList()
	}
	return words
}

// SubstToValue is SubstToList joined back with single spaces.
func (interp *Interp) SubstToValue(code *Value) *Value {
	return interp.SubstToList(code).ToValue(false)
}
