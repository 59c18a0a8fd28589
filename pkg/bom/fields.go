// Package bom builds grouped Bill-of-Materials rows from KiCad netlist
// components.
//
// Components are grouped when they agree on every field of a FieldSet.
// The default FieldSet extends KiCad's usual Value/Footprint grouping with
// the DNP flag and the AVR-KiCAD-Method metadata fields (manufacturer,
// vendor, cost breaks, compliance), so two 10k 0603 resistors from
// different manufacturers land on separate rows.
//
// # Pipeline
//
//	Load → Filter → Group → Sort → Emit → Close
//
// Grouping is a pure function of the component list, an Equivalence and a
// reference Collation:
//
//	eq := bom.NewFieldEquivalence(bom.DefaultFields())
//	groups := bom.GroupComponents(comps, eq, refdes.MustNew(refdes.Natural))
//	rows := bom.BuildRows(groups, eq.Fields)
//
// Exporter wires the whole pipeline, including the quote-all CSV writer.
package bom

// Field names with dedicated accessors
const (
	NameValue     = "Value"
	NameFootprint = "Footprint"
	NameDNP       = "DNP"
	NameDatasheet = "Datasheet"
)

// Leading output columns before the FieldSet
const (
	ColumnIndex     = "#"
	ColumnReference = "Reference"
	ColumnQty       = "Qty"
)

// AVRFields are the symbol properties used by the AVR-KiCAD-Method libraries
var AVRFields = []string{
	"Datasheet",
	"Description",
	"Cost QTY: 1",
	"Cost QTY: 1000",
	"Cost QTY: 2500",
	"Cost QTY: 5000",
	"Cost QTY: 10000",
	"MFR",
	"MFR#",
	"Vendor",
	"Vendor #",
	"Designer",
	"Height",
	"Date Created",
	"Date Modified",
	"Lead-Free ?",
	"RoHS Levels",
	"Mounting",
	"Pin Count #",
	"Status",
	"Tolerance",
	"Type",
	"Voltage",
	"Package",
	"Description_1",
	"_Value_",
	"Management_ID",
}

// BaseFields are always compared and emitted first
var BaseFields = []string{NameValue, NameFootprint, NameDNP}

// DefaultFields returns a fresh copy of BaseFields followed by AVRFields
func DefaultFields() []string {
	fields := make([]string, 0, len(BaseFields)+len(AVRFields))
	fields = append(fields, BaseFields...)
	return append(fields, AVRFields...)
}

// HeaderNames returns the CSV header for a FieldSet
func HeaderNames(fields []string) []string {
	header := make([]string, 0, len(fields)+3)
	header = append(header, ColumnIndex, ColumnReference, ColumnQty)
	return append(header, fields...)
}
