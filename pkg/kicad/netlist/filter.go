package netlist

import (
	"fmt"
	"regexp"
)

// Default exclusion patterns, matched at the start of the string the way
// KiCad's own BOM reader does.
var (
	DefaultExcludedReferences = []string{`#`, `TP[0-9]+`}
	DefaultExcludedValues     = []string{`MOUNTHOLE`, `SCOPETEST`, `MOUNT_HOLE`, `SOLDER_BRIDGE.*`}
	DefaultExcludedFootprints = []string{}
)

// Filter selects the components that belong in a BOM
type Filter struct {
	ExcludeBOM   bool // Drop parts flagged exclude_from_bom
	ExcludeBoard bool // Drop parts flagged exclude_from_board
	ExcludeDNP   bool // Drop do-not-populate parts

	References []*regexp.Regexp // Drop parts whose reference matches
	Values     []*regexp.Regexp // Drop parts whose value matches
	Footprints []*regexp.Regexp // Drop parts whose footprint matches
}

// DefaultFilter returns the filter used for BOM export: exclude-from-BOM
// parts and the default reference/value patterns are dropped
func DefaultFilter() Filter {
	f, err := NewFilter(DefaultExcludedReferences, DefaultExcludedValues, DefaultExcludedFootprints)
	if err != nil {
		panic(err) // defaults are constant
	}
	f.ExcludeBOM = true
	return f
}

// NewFilter compiles reference, value and footprint exclusion patterns
func NewFilter(references, values, footprints []string) (Filter, error) {
	var f Filter
	var err error

	if f.References, err = CompilePatterns(references); err != nil {
		return Filter{}, fmt.Errorf("reference pattern: %w", err)
	}
	if f.Values, err = CompilePatterns(values); err != nil {
		return Filter{}, fmt.Errorf("value pattern: %w", err)
	}
	if f.Footprints, err = CompilePatterns(footprints); err != nil {
		return Filter{}, fmt.Errorf("footprint pattern: %w", err)
	}
	return f, nil
}

// CompilePatterns compiles patterns anchored at the start of the input
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Excludes reports whether the filter drops the component
func (f Filter) Excludes(c *Component) bool {
	if f.ExcludeBOM && c.GetExcludeFromBOM() {
		return true
	}
	if f.ExcludeBoard && c.GetExcludeFromBoard() {
		return true
	}
	if f.ExcludeDNP && c.GetDNP() {
		return true
	}
	return matchAny(f.References, c.GetRef()) ||
		matchAny(f.Values, c.GetValue()) ||
		matchAny(f.Footprints, c.GetFootprint())
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// InterestingComponents returns the components the filter keeps, in file
// order. Units of a multi-unit symbol share a reference; only the first
// occurrence is kept.
func (nl *Netlist) InterestingComponents(f Filter) []*Component {
	seen := make(map[string]bool, len(nl.Components))
	result := make([]*Component, 0, len(nl.Components))

	for _, c := range nl.Components {
		if seen[c.Ref] {
			continue
		}
		seen[c.Ref] = true

		if f.Excludes(c) {
			continue
		}
		result = append(result, c)
	}

	return result
}
