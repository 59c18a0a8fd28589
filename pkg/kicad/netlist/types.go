// Package netlist reads KiCad netlists (XML intermediate .xml and
// S-expression .net) into a component model suitable for BOM generation.
package netlist

import "strings"

// Property names KiCad attaches to components as flags
const (
	PropertyDNP              = "dnp"
	PropertyExcludeFromBOM   = "exclude_from_bom"
	PropertyExcludeFromBoard = "exclude_from_board"
)

// DNPString is the value GetDNPString reports for do-not-populate parts
const DNPString = "DNP"

// Netlist is a parsed KiCad netlist
type Netlist struct {
	Format     Format       // Input format the netlist was read from
	Version    string       // Netlist format version (e.g. "E")
	Design     Design       // Header information
	Components []*Component // Components in file order
	LibParts   []*LibPart   // Library part definitions
}

// Design holds the netlist header
type Design struct {
	Source string // Schematic the netlist was generated from
	Date   string
	Tool   string // e.g. "Eeschema 8.0.4"
}

// Field is a named user field on a component or library part
type Field struct {
	Name  string
	Value string
}

// Property is a KiCad 7+ component property. Flag properties such as
// dnp carry no value; their presence is the signal.
type Property struct {
	Name  string
	Value string
}

// LibSource identifies the library symbol a component was placed from
type LibSource struct {
	Lib         string
	Part        string
	Description string
}

// LibPart is a library part definition from the (libparts ...) section
type LibPart struct {
	Lib         string
	Part        string
	Description string
	Docs        string
	Fields      []Field
}

// GetField returns the named field, or "" if the part does not carry it
func (lp *LibPart) GetField(name string) string {
	if lp == nil {
		return ""
	}
	for _, f := range lp.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Component is a single placed symbol. Components are immutable once the
// netlist has been read.
type Component struct {
	Ref         string
	Value       string
	Footprint   string
	Datasheet   string
	Description string
	Fields      []Field
	LibSource   LibSource
	Properties  []Property

	libPart *LibPart
}

// GetRef returns the reference designator
func (c *Component) GetRef() string {
	return c.Ref
}

// GetValue returns the electrical value (e.g. "10k")
func (c *Component) GetValue() string {
	return c.Value
}

// GetFootprint returns the footprint including its library prefix
func (c *Component) GetFootprint() string {
	return c.Footprint
}

// GetDatasheet returns the datasheet URL. KiCad's "~" placeholder is
// reported as empty, and an empty component datasheet falls back to the
// library part's documentation.
func (c *Component) GetDatasheet() string {
	if ds := blankTilde(c.Datasheet); ds != "" {
		return ds
	}
	if ds := blankTilde(c.GetField("Datasheet")); ds != "" {
		return ds
	}
	if c.libPart != nil {
		return blankTilde(c.libPart.Docs)
	}
	return ""
}

// GetDescription returns the component description, falling back to the
// library part description
func (c *Component) GetDescription() string {
	if c.Description != "" {
		return c.Description
	}
	if c.LibSource.Description != "" {
		return c.LibSource.Description
	}
	if c.libPart != nil {
		return c.libPart.Description
	}
	return ""
}

// GetField returns the named user field. Fields missing on the component
// are looked up on its library part; "" is returned when neither has it.
func (c *Component) GetField(name string) string {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return c.libPart.GetField(name)
}

// HasField reports whether the component itself carries the named field
func (c *Component) HasField(name string) bool {
	for _, f := range c.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// GetProperty returns the named property and whether it is present
func (c *Component) GetProperty(name string) (string, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// GetDNP reports whether the component is marked do-not-populate
func (c *Component) GetDNP() bool {
	return c.flag(PropertyDNP)
}

// GetDNPString returns "DNP" for do-not-populate parts and "" otherwise
func (c *Component) GetDNPString() string {
	if c.GetDNP() {
		return DNPString
	}
	return ""
}

// GetExcludeFromBOM reports whether the component is marked exclude-from-BOM
func (c *Component) GetExcludeFromBOM() bool {
	return c.flag(PropertyExcludeFromBOM)
}

// GetExcludeFromBoard reports whether the component is marked exclude-from-board
func (c *Component) GetExcludeFromBoard() bool {
	return c.flag(PropertyExcludeFromBoard)
}

// GetLibPart returns the linked library part, or nil
func (c *Component) GetLibPart() *LibPart {
	return c.libPart
}

// flag treats a present property as set unless its value is an explicit
// false-like string
func (c *Component) flag(name string) bool {
	v, ok := c.GetProperty(name)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "no":
		return false
	}
	return true
}

func blankTilde(s string) string {
	if s == "~" {
		return ""
	}
	return s
}

// GetComponent returns the component with the given reference, or nil
func (nl *Netlist) GetComponent(ref string) *Component {
	for _, c := range nl.Components {
		if c.Ref == ref {
			return c
		}
	}
	return nil
}

// GetLibPart returns the library part for lib/part, or nil
func (nl *Netlist) GetLibPart(lib, part string) *LibPart {
	for _, lp := range nl.LibParts {
		if lp.Lib == lib && lp.Part == part {
			return lp
		}
	}
	return nil
}

// link attaches every component to its library part
func (nl *Netlist) link() {
	parts := make(map[string]*LibPart, len(nl.LibParts))
	for _, lp := range nl.LibParts {
		parts[lp.Lib+":"+lp.Part] = lp
	}
	for _, c := range nl.Components {
		c.libPart = parts[c.LibSource.Lib+":"+c.LibSource.Part]
	}
}
