package bom

import (
	"strconv"
	"strings"
)

// RefSeparator joins reference designators in the Reference column
const RefSeparator = ", "

// Row is one BOM line
type Row struct {
	Index  int      // 1-based position in the BOM
	Refs   []string // Reference designators in the group
	Qty    int
	Values []string // One value per FieldSet field, from the representative
}

// Reference returns the joined reference list
func (r Row) Reference() string {
	return strings.Join(r.Refs, RefSeparator)
}

// Record renders the row as CSV fields: index, references, qty, values
func (r Row) Record() []string {
	rec := make([]string, 0, len(r.Values)+3)
	rec = append(rec, strconv.Itoa(r.Index), r.Reference(), strconv.Itoa(r.Qty))
	return append(rec, r.Values...)
}

// BuildRows turns ordered groups into rows numbered from 1
func BuildRows(groups []Group, fields []string) []Row {
	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		rows = append(rows, Row{
			Index:  len(rows) + 1,
			Refs:   g.Refs(),
			Qty:    len(g),
			Values: FieldValues(g.Representative(), fields),
		})
	}
	return rows
}
