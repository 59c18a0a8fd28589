package bom

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/kicad/netlist"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/refdes"
)

// ErrOutputFallback is returned by ExportFile when the output file could not
// be opened. The BOM has already been written to the fallback writer.
var ErrOutputFallback = errors.New("bom: can't open output file for writing")

// Exporter runs the netlist → CSV pipeline
type Exporter struct {
	Fields      []string           // Compared and emitted fields; DefaultFields() when nil
	Equivalence Equivalence        // Grouping predicate; FieldEquivalence over Fields when nil
	Collation   *refdes.Collation  // Reference ordering; natural when nil
	Filter      netlist.Filter     // Component selection; ExcludeBOM is always applied
	Logger      *zap.SugaredLogger // Diagnostics; discarded when nil
	Fallback    io.Writer          // Written to when the output can't be opened; os.Stdout when nil
}

// NewExporter returns an exporter with the default FieldSet, natural
// collation and the default BOM filter
func NewExporter() *Exporter {
	return &Exporter{
		Fields:    DefaultFields(),
		Collation: refdes.MustNew(refdes.Natural),
		Filter:    netlist.DefaultFilter(),
	}
}

// Result summarizes an export
type Result struct {
	Components int // Components that passed the filter
	Groups     []Group
	Rows       []Row
}

func (e *Exporter) fields() []string {
	if e.Fields == nil {
		return DefaultFields()
	}
	return e.Fields
}

func (e *Exporter) equivalence() Equivalence {
	if e.Equivalence == nil {
		return NewFieldEquivalence(e.fields())
	}
	return e.Equivalence
}

func (e *Exporter) collation() *refdes.Collation {
	if e.Collation == nil {
		return refdes.MustNew(refdes.Natural)
	}
	return e.Collation
}

func (e *Exporter) logger() *zap.SugaredLogger {
	if e.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return e.Logger
}

func (e *Exporter) fallback() io.Writer {
	if e.Fallback == nil {
		return os.Stdout
	}
	return e.Fallback
}

// Group filters the netlist and groups the remaining components
func (e *Exporter) Group(nl *netlist.Netlist) *Result {
	log := e.logger()
	fields := e.fields()

	// exclude-from-BOM parts never reach a BOM, whatever the filter says
	filter := e.Filter
	filter.ExcludeBOM = true
	interesting := nl.InterestingComponents(filter)
	log.Debugw("filtered components",
		"total", len(nl.Components),
		"interesting", len(interesting))

	comps := make([]Component, len(interesting))
	for i, c := range interesting {
		comps[i] = c
	}

	groups := GroupComponents(comps, e.equivalence(), e.collation())
	rows := BuildRows(groups, fields)
	log.Debugw("grouped components",
		"groups", len(groups),
		"fields", len(fields),
		"collation", e.collation().Mode())

	return &Result{
		Components: len(interesting),
		Groups:     groups,
		Rows:       rows,
	}
}

// Export groups the netlist and writes the header and one row per group to w
func (e *Exporter) Export(nl *netlist.Netlist, w io.Writer) (*Result, error) {
	res := e.Group(nl)

	out := NewCSVWriter(w)
	out.WriteHeader(e.fields())
	for _, row := range res.Rows {
		out.WriteRow(row)
	}
	if err := out.Flush(); err != nil {
		return res, fmt.Errorf("failed to write BOM: %w", err)
	}

	return res, nil
}

// ExportFile reads the netlist at inputPath and writes the BOM to
// outputPath. If outputPath can't be created the BOM goes to the fallback
// writer and ErrOutputFallback is returned after writing completes.
// Netlist read errors are returned before anything is written.
func (e *Exporter) ExportFile(inputPath, outputPath string) (*Result, error) {
	log := e.logger()

	nl, err := netlist.ParseFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read netlist %s: %w", inputPath, err)
	}
	log.Debugw("loaded netlist",
		"path", inputPath,
		"format", nl.Format,
		"tool", nl.Design.Tool,
		"components", len(nl.Components))

	f, openErr := os.Create(outputPath)
	if openErr != nil {
		log.Errorw("can't open output file for writing, writing to stdout",
			"path", outputPath,
			"error", openErr)
		res, err := e.Export(nl, e.fallback())
		if err != nil {
			return res, err
		}
		return res, fmt.Errorf("%w: %s: %v", ErrOutputFallback, outputPath, openErr)
	}

	res, err := e.Export(nl, f)
	if err != nil {
		f.Close()
		return res, err
	}
	if err := f.Close(); err != nil {
		return res, fmt.Errorf("failed to close %s: %w", outputPath, err)
	}

	log.Infow("wrote BOM",
		"path", outputPath,
		"rows", len(res.Rows),
		"components", res.Components)
	return res, nil
}
