package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debugw("loaded netlist", "components", 3)
	log.Infow("wrote BOM", "rows", 2)
	if buf.Len() != 0 {
		t.Errorf("Expected debug/info to be suppressed, got %q", buf.String())
	}

	log.Errorw("can't open output file for writing", "path", "/nope/bom.csv")
	out := buf.String()
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "/nope/bom.csv") {
		t.Errorf("Expected error with path field, got %q", out)
	}
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debugw("grouped components", "groups", 4)
	out := buf.String()
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, `"groups": 4`) {
		t.Errorf("Expected debug line with fields, got %q", out)
	}
}
