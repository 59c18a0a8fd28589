package bom

// Component is the read-only view of a netlist component the BOM needs.
// *netlist.Component satisfies it.
type Component interface {
	GetRef() string
	GetValue() string
	GetFootprint() string
	GetDNPString() string
	GetDatasheet() string
	// GetField returns "" for fields the component does not carry
	GetField(name string) string
}

// FieldValue returns the string value of a named field. Value, Footprint,
// DNP and Datasheet use their dedicated accessors; any other name is a
// generic field lookup. Missing fields yield "".
func FieldValue(c Component, name string) string {
	switch name {
	case NameValue:
		return c.GetValue()
	case NameFootprint:
		return c.GetFootprint()
	case NameDNP:
		return c.GetDNPString()
	case NameDatasheet:
		return c.GetDatasheet()
	default:
		return c.GetField(name)
	}
}

// FieldValues returns the values of every field in order
func FieldValues(c Component, fields []string) []string {
	values := make([]string, len(fields))
	for i, name := range fields {
		values[i] = FieldValue(c, name)
	}
	return values
}
