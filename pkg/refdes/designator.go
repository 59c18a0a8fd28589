// Package refdes parses reference designators (R1, U3A, #PWR01) and orders
// them under a configurable collation.
package refdes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrInvalidDesignator is returned when a reference cannot be parsed
var ErrInvalidDesignator = errors.New("refdes: invalid designator")

// designatorLexer splits a reference into alternating digit and non-digit runs
var designatorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Text", Pattern: `[^0-9]+`},
})

// Designator is a reference split into its parts: "U3A" is prefix "U",
// number "3", suffix "A". Digits are kept as text so leading zeros and
// arbitrarily long numbers survive.
type Designator struct {
	Prefix string `parser:"@Text?"`
	Digits string `parser:"@Number?"`
	Suffix string `parser:"(@Text | @Number)*"`
}

var designatorParser = participle.MustBuild[Designator](
	participle.Lexer(designatorLexer),
)

// Parse splits a reference designator into prefix, number and suffix
func Parse(ref string) (Designator, error) {
	if ref == "" {
		return Designator{}, nil
	}
	d, err := designatorParser.ParseString("", ref)
	if err != nil {
		return Designator{}, fmt.Errorf("%w %q: %v", ErrInvalidDesignator, ref, err)
	}
	return *d, nil
}

// HasNumber reports whether the designator carries a unit number
func (d Designator) HasNumber() bool {
	return d.Digits != ""
}

// String reassembles the designator
func (d Designator) String() string {
	return d.Prefix + d.Digits + d.Suffix
}

// compareDigits orders two digit strings numerically without converting,
// so values beyond int64 still compare correctly
func compareDigits(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	// Equal value: fewer leading zeros first (R1 before R01)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// CompareNatural orders designators by prefix, then unit number, then
// suffix: R2 < R10 < U1 < U1A
func CompareNatural(a, b Designator) int {
	if c := strings.Compare(a.Prefix, b.Prefix); c != 0 {
		return c
	}
	if a.HasNumber() != b.HasNumber() {
		if !a.HasNumber() {
			return -1
		}
		return 1
	}
	if c := compareDigits(a.Digits, b.Digits); c != 0 {
		return c
	}
	return strings.Compare(a.Suffix, b.Suffix)
}
