package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/bom"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/kicad/netlist"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/refdes"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestDefaults(t *testing.T) {
	cfg, err := Decode(New())
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if diff := cmp.Diff(bom.DefaultFields(), cfg.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if cfg.Collation != "natural" {
		t.Errorf("Expected natural collation, got %q", cfg.Collation)
	}
	if cfg.Filter.ExcludeDNP || cfg.Filter.ExcludeBoard {
		t.Error("DNP and board exclusion should be off by default")
	}
	if diff := cmp.Diff(netlist.DefaultExcludedReferences, cfg.Filter.ExcludeReferences); diff != "" {
		t.Errorf("reference patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "kicad-bom.yaml", `
fields: [Value, Footprint, MFR]
collation: Lexical
filter:
  exclude_dnp: true
  exclude_values: [MOUNTHOLE, "NC.*"]
`)

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if diff := cmp.Diff([]string{"Value", "Footprint", "MFR"}, cfg.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if cfg.Collation != "lexical" {
		t.Errorf("Expected collation to be normalized to lexical, got %q", cfg.Collation)
	}
	if !cfg.Filter.ExcludeDNP {
		t.Error("Expected exclude_dnp from file")
	}
	// Unset keys keep their defaults
	if diff := cmp.Diff(netlist.DefaultExcludedReferences, cfg.Filter.ExcludeReferences); diff != "" {
		t.Errorf("reference patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "kicad-bom.toml", `
collation = "unicode"

[filter]
exclude_board = true
`)

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Collation != "unicode" || !cfg.Filter.ExcludeBoard {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "kicad-bom.json"), []byte(`{"collation": "lexical"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Collation != "lexical" {
		t.Errorf("Expected config from working directory, got collation %q", cfg.Collation)
	}
}

func TestLoadNoFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(New(), ""); err != nil {
		t.Errorf("Missing config file should not be an error, got %v", err)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("KICADBOM_COLLATION", "unicode")
	t.Setenv("KICADBOM_FILTER_EXCLUDE_DNP", "true")

	cfg, err := Decode(New())
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if cfg.Collation != "unicode" {
		t.Errorf("Expected collation from environment, got %q", cfg.Collation)
	}
	if !cfg.Filter.ExcludeDNP {
		t.Error("Expected exclude_dnp from environment")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   string
	}{
		{"bad collation", "collation: alphabetical\n", "Collation"},
		{"empty fields", "fields: []\n", "Fields"},
		{"duplicate fields", "fields: [Value, MFR, Value]\n", "Fields"},
		{"blank field", "fields: [Value, \"\"]\n", "Fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "kicad-bom.yaml", tt.config)
			_, err := Load(New(), path)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestExporter(t *testing.T) {
	v := New()
	v.Set(Collation, "lexical")
	v.Set(FilterExcludeDNP, true)
	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	e, err := cfg.Exporter()
	if err != nil {
		t.Fatalf("Exporter() error: %v", err)
	}
	if e.Collation.Mode() != refdes.Lexical {
		t.Errorf("Expected lexical collation, got %s", e.Collation.Mode())
	}
	if !e.Filter.ExcludeBOM || !e.Filter.ExcludeDNP || e.Filter.ExcludeBoard {
		t.Errorf("Unexpected filter flags %+v", e.Filter)
	}
	if len(e.Filter.References) != len(netlist.DefaultExcludedReferences) {
		t.Errorf("Expected %d reference patterns, got %d",
			len(netlist.DefaultExcludedReferences), len(e.Filter.References))
	}
}

func TestExporterBadPattern(t *testing.T) {
	v := New()
	v.Set(FilterExcludeValues, []string{"("})
	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if _, err := cfg.Exporter(); err == nil {
		t.Error("Expected error for invalid value pattern")
	}
}
