package lil

// List is an ordered sequence of values. A list owns the values appended to
// it; callers hand over ownership on Append and clone when they need a copy.
type List struct {
	items []*Value
}

// NewList builds a list that takes ownership of vals.
func NewList(vals ...*Value) *List {
	l := &List{items: make([]*Value, 0, len(vals))}
	for _, v := range vals {
		l.Append(v)
	}
	return l
}

// Append adds v to the end of the list. A nil v is stored as an empty value.
func (l *List) Append(v *Value) {
	if v == nil {
		v = Empty()
	}
	l.items = append(l.items, v)
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the i-th element, or nil when i is out of range.
func (l *List) At(i int) *Value {
	if l == nil || i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Values returns the backing slice. Callers must not retain or modify it.
func (l *List) Values() []*Value {
	if l == nil {
		return nil
	}
	return l.items
}

// Tail returns the elements starting at index from.
func (l *List) Tail(from int) []*Value {
	if l == nil || from >= len(l.items) {
		return nil
	}
	if from < 0 {
		from = 0
	}
	return l.items[from:]
}

func (l *List) Clone() *List {
	out := &List{items: make([]*Value, len(l.Values()))}
	for i, v := range l.Values() {
		out.items[i] = v.Clone()
	}
	return out
}

// Strings returns the text of each element.
func (l *List) Strings() []string {
	out := make([]string, len(l.Values()))
	for i, v := range l.Values() {
		out[i] = v.String()
	}
	return out
}

// ToValue joins the elements with single spaces. With escape set, elements
// that would not survive re-parsing as one word are wrapped in braces.
func (l *List) ToValue(escape bool) *Value {
	out := Empty()
	for i, v := range l.Values() {
		if i > 0 {
			out.AppendByte(' ')
		}
		if !escape || !needsEscape(v.buf) {
			out.AppendValue(v)
			continue
		}
		out.AppendByte('{')
		for _, c := range v.buf {
			switch c {
			case '{':
				out.AppendString(`}"\o"{`)
			case '}':
				out.AppendString(`}"\c"{`)
			default:
				out.AppendByte(c)
			}
		}
		out.AppendByte('}')
	}
	return out
}

// ValuesToList clones vals into a new list.
func ValuesToList(vals []*Value) *List {
	l := &List{items: make([]*Value, len(vals))}
	for i, v := range vals {
		l.items[i] = v.Clone()
	}
	return l
}

func needsEscape(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	for _, c := range b {
		if isPunct(c) || isSpace(c) {
			return true
		}
	}
	return false
}

func isPunct(c byte) bool {
	return c > ' ' && c < 0x7f && !isAlnum(c)
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
