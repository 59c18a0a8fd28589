package netlist

import (
	"fmt"
	"io"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/kicad/sexp/kicadsexp"
)

// parseSexp reads a KiCad S-expression netlist: (export (version "E") ...)
func parseSexp(r io.Reader) (*Netlist, error) {
	root, err := kicadsexp.NewParser(r).ParseOne()
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}
	if rootName != "export" {
		return nil, fmt.Errorf("not a KiCad netlist: expected 'export', got '%s'", rootName)
	}

	nl := &Netlist{
		Version: sexp.GetChildValue(root, "version"),
	}

	if designNode, found := sexp.FindNode(root, "design"); found {
		nl.Design = Design{
			Source: sexp.GetChildValue(designNode, "source"),
			Date:   sexp.GetChildValue(designNode, "date"),
			Tool:   sexp.GetChildValue(designNode, "tool"),
		}
	}

	if componentsNode, found := sexp.FindNode(root, "components"); found {
		for _, compNode := range sexp.FindAllNodes(componentsNode, "comp") {
			nl.Components = append(nl.Components, parseSexpComponent(compNode))
		}
	}

	if libPartsNode, found := sexp.FindNode(root, "libparts"); found {
		for _, partNode := range sexp.FindAllNodes(libPartsNode, "libpart") {
			nl.LibParts = append(nl.LibParts, parseSexpLibPart(partNode))
		}
	}

	return nl, nil
}

// parseSexpComponent extracts a (comp ...) node
func parseSexpComponent(node kicadsexp.Sexp) *Component {
	c := &Component{
		Ref:         sexp.GetChildValue(node, "ref"),
		Value:       sexp.GetChildValue(node, "value"),
		Footprint:   sexp.GetChildValue(node, "footprint"),
		Datasheet:   sexp.GetChildValue(node, "datasheet"),
		Description: sexp.GetChildValue(node, "description"),
	}

	if fieldsNode, found := sexp.FindNode(node, "fields"); found {
		c.Fields = parseSexpFields(fieldsNode)
	}

	if srcNode, found := sexp.FindNode(node, "libsource"); found {
		c.LibSource = LibSource{
			Lib:         sexp.GetChildValue(srcNode, "lib"),
			Part:        sexp.GetChildValue(srcNode, "part"),
			Description: sexp.GetChildValue(srcNode, "description"),
		}
	}

	// Format: (property (name "dnp")) or (property (name "Sheetname") (value "Root"))
	for _, propNode := range sexp.FindAllNodes(node, "property") {
		c.Properties = append(c.Properties, Property{
			Name:  sexp.GetChildValue(propNode, "name"),
			Value: sexp.GetChildValue(propNode, "value"),
		})
	}

	return c
}

// parseSexpLibPart extracts a (libpart ...) node
func parseSexpLibPart(node kicadsexp.Sexp) *LibPart {
	lp := &LibPart{
		Lib:         sexp.GetChildValue(node, "lib"),
		Part:        sexp.GetChildValue(node, "part"),
		Description: sexp.GetChildValue(node, "description"),
		Docs:        sexp.GetChildValue(node, "docs"),
	}
	if fieldsNode, found := sexp.FindNode(node, "fields"); found {
		lp.Fields = parseSexpFields(fieldsNode)
	}
	return lp
}

// parseSexpFields extracts (field (name "MFR") "Yageo") entries. The value
// is the first bare atom after the name; a field without one is empty.
func parseSexpFields(node kicadsexp.Sexp) []Field {
	var fields []Field
	for _, fieldNode := range sexp.FindAllNodes(node, "field") {
		fields = append(fields, Field{
			Name:  sexp.GetChildValue(fieldNode, "name"),
			Value: sexp.GetValue(fieldNode),
		})
	}
	return fields
}
