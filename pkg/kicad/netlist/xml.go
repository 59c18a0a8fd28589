package netlist

import (
	"encoding/xml"
	"fmt"
	"io"
)

type xmlExport struct {
	XMLName    xml.Name     `xml:"export"`
	Version    string       `xml:"version,attr"`
	Design     xmlDesign    `xml:"design"`
	Components []xmlComp    `xml:"components>comp"`
	LibParts   []xmlLibPart `xml:"libparts>libpart"`
}

type xmlDesign struct {
	Source string `xml:"source"`
	Date   string `xml:"date"`
	Tool   string `xml:"tool"`
}

type xmlField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlLibSource struct {
	Lib         string `xml:"lib,attr"`
	Part        string `xml:"part,attr"`
	Description string `xml:"description,attr"`
}

type xmlComp struct {
	Ref         string        `xml:"ref,attr"`
	Value       string        `xml:"value"`
	Footprint   string        `xml:"footprint"`
	Datasheet   string        `xml:"datasheet"`
	Description string        `xml:"description"`
	Fields      []xmlField    `xml:"fields>field"`
	LibSource   xmlLibSource  `xml:"libsource"`
	Properties  []xmlProperty `xml:"property"`
}

type xmlLibPart struct {
	Lib         string     `xml:"lib,attr"`
	Part        string     `xml:"part,attr"`
	Description string     `xml:"description"`
	Docs        string     `xml:"docs"`
	Fields      []xmlField `xml:"fields>field"`
}

// parseXML reads a KiCad intermediate (XML) netlist
func parseXML(r io.Reader) (*Netlist, error) {
	var doc xmlExport
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML netlist: %w", err)
	}

	nl := &Netlist{
		Version: doc.Version,
		Design: Design{
			Source: doc.Design.Source,
			Date:   doc.Design.Date,
			Tool:   doc.Design.Tool,
		},
		Components: make([]*Component, 0, len(doc.Components)),
		LibParts:   make([]*LibPart, 0, len(doc.LibParts)),
	}

	for _, xc := range doc.Components {
		c := &Component{
			Ref:         xc.Ref,
			Value:       xc.Value,
			Footprint:   xc.Footprint,
			Datasheet:   xc.Datasheet,
			Description: xc.Description,
			Fields:      convertXMLFields(xc.Fields),
			LibSource: LibSource{
				Lib:         xc.LibSource.Lib,
				Part:        xc.LibSource.Part,
				Description: xc.LibSource.Description,
			},
		}
		for _, p := range xc.Properties {
			c.Properties = append(c.Properties, Property{Name: p.Name, Value: p.Value})
		}
		nl.Components = append(nl.Components, c)
	}

	for _, xp := range doc.LibParts {
		nl.LibParts = append(nl.LibParts, &LibPart{
			Lib:         xp.Lib,
			Part:        xp.Part,
			Description: xp.Description,
			Docs:        xp.Docs,
			Fields:      convertXMLFields(xp.Fields),
		})
	}

	return nl, nil
}

func convertXMLFields(in []xmlField) []Field {
	if len(in) == 0 {
		return nil
	}
	out := make([]Field, len(in))
	for i, f := range in {
		out[i] = Field{Name: f.Name, Value: f.Value}
	}
	return out
}
