package refdes

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Mode names a reference ordering
type Mode string

const (
	// Natural compares prefix, then the unit number numerically: R2 < R10
	Natural Mode = "natural"
	// Lexical compares raw bytes: R10 < R2
	Lexical Mode = "lexical"
	// Unicode uses the Unicode collation algorithm with numeric ordering
	Unicode Mode = "unicode"
)

// Modes lists the supported collation modes
var Modes = []Mode{Natural, Lexical, Unicode}

// ParseMode converts a configuration string to a Mode
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Modes, m) {
		return m, nil
	}
	return "", fmt.Errorf("unknown collation %q (want one of natural, lexical, unicode)", s)
}

// Collation orders reference designators. A Collation caches parsed
// designators and is not safe for concurrent use.
type Collation struct {
	mode     Mode
	collator *collate.Collator
	parsed   map[string]Designator
}

// New returns a Collation for the given mode
func New(mode Mode) (*Collation, error) {
	c := &Collation{mode: mode}
	switch mode {
	case Natural:
		c.parsed = make(map[string]Designator)
	case Lexical:
	case Unicode:
		c.collator = collate.New(language.Und, collate.Numeric)
	default:
		return nil, fmt.Errorf("unknown collation %q", mode)
	}
	return c, nil
}

// MustNew is New for constant modes
func MustNew(mode Mode) *Collation {
	c, err := New(mode)
	if err != nil {
		panic(err)
	}
	return c
}

// Mode returns the collation mode
func (c *Collation) Mode() Mode {
	return c.mode
}

// Compare returns -1, 0 or +1 as a orders before, equal to or after b.
// Distinct strings never compare equal.
func (c *Collation) Compare(a, b string) int {
	if a == b {
		return 0
	}

	var r int
	switch c.mode {
	case Natural:
		da, errA := c.designator(a)
		db, errB := c.designator(b)
		if errA == nil && errB == nil {
			r = CompareNatural(da, db)
		}
	case Unicode:
		r = c.collator.CompareString(a, b)
	}

	if r == 0 {
		r = strings.Compare(a, b)
	}
	return r
}

// Less reports whether a orders before b
func (c *Collation) Less(a, b string) bool {
	return c.Compare(a, b) < 0
}

// Sort orders refs in place
func (c *Collation) Sort(refs []string) {
	slices.SortStableFunc(refs, c.Compare)
}

func (c *Collation) designator(ref string) (Designator, error) {
	if d, ok := c.parsed[ref]; ok {
		return d, nil
	}
	d, err := Parse(ref)
	if err != nil {
		return Designator{}, err
	}
	c.parsed[ref] = d
	return d, nil
}
