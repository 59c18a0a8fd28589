package bom

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/kicad/netlist"
)

const fixtureXML = "../../testdata/netlist/avr_board.xml"

func TestCSVWriterQuoting(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	w.Write([]string{"1", `27" rack`, "a,b", ""})
	w.Write([]string{"line\nbreak"})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	want := "\"1\",\"27\"\" rack\",\"a,b\",\"\"\n\"line\nbreak\"\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	// Standard CSV readers recover the fields
	r := csv.NewReader(strings.NewReader(buf.String()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if diff := cmp.Diff([][]string{{"1", `27" rack`, "a,b", ""}, {"line\nbreak"}}, records); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCSVWriterError(t *testing.T) {
	w := NewCSVWriter(failingWriter{})
	w.Write([]string{"x"})
	if err := w.Flush(); err == nil {
		t.Fatal("Expected flush error")
	}
	if w.Error() == nil {
		t.Error("Expected sticky error")
	}
	if err := w.Write([]string{"y"}); err == nil {
		t.Error("Expected Write to return the sticky error")
	}
}

func TestExportFixture(t *testing.T) {
	nl, err := netlist.ParseFile(fixtureXML)
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}

	var buf bytes.Buffer
	res, err := NewExporter().Export(nl, &buf)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	if res.Components != 6 {
		t.Errorf("Expected 6 interesting components, got %d", res.Components)
	}

	output := buf.String()
	records, err := csv.NewReader(strings.NewReader(output)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read emitted CSV: %v", err)
	}

	if diff := cmp.Diff(HeaderNames(DefaultFields()), records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	var refs []string
	for _, rec := range records[1:] {
		refs = append(refs, rec[1])
	}
	want := []string{"C1", "R1, R2, R10", "R3", "U1"}
	if diff := cmp.Diff(want, refs); diff != "" {
		t.Errorf("Reference column mismatch (-want +got):\n%s", diff)
	}

	col := func(name string) int {
		for i, h := range records[0] {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %q missing", name)
		return -1
	}

	c1 := records[1]
	if c1[col("DNP")] != "DNP" {
		t.Errorf("Expected C1 to be DNP, got %q", c1[col("DNP")])
	}
	if c1[col("Tolerance")] != "10%" {
		t.Errorf("Expected library Tolerance for C1, got %q", c1[col("Tolerance")])
	}
	u1 := records[4]
	if !strings.HasPrefix(u1[col("Datasheet")], "http://ww1.microchip.com/") {
		t.Errorf("Unexpected U1 datasheet %q", u1[col("Datasheet")])
	}
	if u1[col("Pin Count #")] != "32" {
		t.Errorf("Expected U1 pin count 32, got %q", u1[col("Pin Count #")])
	}

	// Excluded from BOM
	if strings.Contains(output, "H1") {
		t.Error("exclude_from_bom component H1 appears in output")
	}
}

// Re-reading the CSV recovers the in-memory rows.
func TestExportRoundTrip(t *testing.T) {
	nl, err := netlist.ParseFile(fixtureXML)
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}

	var buf bytes.Buffer
	res, err := NewExporter().Export(nl, &buf)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read emitted CSV: %v", err)
	}
	if len(records)-1 != len(res.Rows) {
		t.Fatalf("Expected %d data rows, got %d", len(res.Rows), len(records)-1)
	}

	for i, rec := range records[1:] {
		row := res.Rows[i]
		index, _ := strconv.Atoi(rec[0])
		qty, _ := strconv.Atoi(rec[2])
		got := Row{
			Index:  index,
			Refs:   strings.Split(rec[1], RefSeparator),
			Qty:    qty,
			Values: rec[3:],
		}
		if diff := cmp.Diff(row, got); diff != "" {
			t.Errorf("row %d mismatch (-memory +csv):\n%s", i+1, diff)
		}
	}
}

func TestExportFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bom.csv")

	res, err := NewExporter().ExportFile(fixtureXML, out)
	if err != nil {
		t.Fatalf("ExportFile() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != len(res.Rows)+1 {
		t.Errorf("Expected %d lines, got %d", len(res.Rows)+1, got)
	}
}

func TestExportFileFallback(t *testing.T) {
	var stdout bytes.Buffer
	e := NewExporter()
	e.Fallback = &stdout

	out := filepath.Join(t.TempDir(), "missing-dir", "bom.csv")
	res, err := e.ExportFile(fixtureXML, out)
	if !errors.Is(err, ErrOutputFallback) {
		t.Fatalf("Expected ErrOutputFallback, got %v", err)
	}
	if res == nil || len(res.Rows) != 4 {
		t.Fatalf("Expected 4 rows in result, got %+v", res)
	}
	if !strings.HasPrefix(stdout.String(), `"#","Reference","Qty"`) {
		t.Errorf("Expected BOM on fallback writer, got %q", stdout.String())
	}
}

func TestExportFileBadInput(t *testing.T) {
	var stdout bytes.Buffer
	e := NewExporter()
	e.Fallback = &stdout

	input := filepath.Join(t.TempDir(), "broken.net")
	if err := os.WriteFile(input, []byte(`(export (version "E")`), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "bom.csv")
	if _, err := e.ExportFile(input, out); err == nil {
		t.Fatal("Expected error for broken netlist")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("Output file should not be created when the netlist fails to load")
	}
	if stdout.Len() != 0 {
		t.Error("Nothing should be written when the netlist fails to load")
	}
}

func TestExportCustomFields(t *testing.T) {
	nl := &netlist.Netlist{Components: []*netlist.Component{
		part("R1", "10k", "0603", "MFR", "Yageo"),
		part("R2", "10k", "0805", "MFR", "Yageo"),
	}}

	e := NewExporter()
	e.Fields = []string{"Value", "MFR"}

	var buf bytes.Buffer
	res, err := e.Export(nl, &buf)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Errorf("Expected footprint to be ignored, got %d rows", len(res.Rows))
	}
	want := "\"#\",\"Reference\",\"Qty\",\"Value\",\"MFR\"\n\"1\",\"R1, R2\",\"2\",\"10k\",\"Yageo\"\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
