package bom

import (
	"strconv"
	"strings"
)

// Equivalence decides whether two components belong on the same BOM row
type Equivalence interface {
	Equal(a, b Component) bool
}

// Keyer is an Equivalence that can also reduce a component to a key such
// that Equal(a, b) iff Key(a) == Key(b). Grouping uses it to partition in a
// single pass.
type Keyer interface {
	Equivalence
	Key(c Component) string
}

// FieldEquivalence treats components as equal when every field of the
// FieldSet yields the same string
type FieldEquivalence struct {
	Fields []string
}

// NewFieldEquivalence returns an equivalence over a copy of fields
func NewFieldEquivalence(fields []string) *FieldEquivalence {
	return &FieldEquivalence{Fields: append([]string(nil), fields...)}
}

// Equal compares the components field by field
func (e *FieldEquivalence) Equal(a, b Component) bool {
	for _, name := range e.Fields {
		if FieldValue(a, name) != FieldValue(b, name) {
			return false
		}
	}
	return true
}

// Key encodes the field tuple. Each value is length-prefixed so the
// encoding is injective whatever the values contain.
func (e *FieldEquivalence) Key(c Component) string {
	var b strings.Builder
	for _, name := range e.Fields {
		v := FieldValue(c, name)
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}

// EquivalenceFunc adapts a plain function to Equivalence
type EquivalenceFunc func(a, b Component) bool

// Equal calls f(a, b)
func (f EquivalenceFunc) Equal(a, b Component) bool {
	return f(a, b)
}
