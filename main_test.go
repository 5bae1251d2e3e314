package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/tabprint/layout"
	fpdfrenderer "github.com/ByLCY/tabprint/renderer/fpdf"
)

func TestRunWritesPDFAndDebugJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tabs.txt")
	if err := os.WriteFile(in, []byte("Alpha\n\nBeta\nGamma\nDelta\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out", "tabs.pdf")
	debug := filepath.Join(dir, "debug", "layout.json")

	defaults := layout.DefaultSettings()
	defaults.FillBlanks = true
	if err := run(in, out, debug, defaults, fpdfrenderer.NewRenderer()); err != nil {
		t.Fatalf("run error: %v", err)
	}

	pdf, err := os.ReadFile(out)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected PDF output, err=%v", err)
	}
	raw, err := os.ReadFile(debug)
	if err != nil {
		t.Fatalf("debug JSON missing: %v", err)
	}
	var doc layout.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode debug JSON: %v", err)
	}
	if len(doc.Pages) != 6 {
		t.Fatalf("expected 6 pages after blank fill, got %d", len(doc.Pages))
	}
}

func TestRunReportsFitFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tabs.txt")
	long := strings.Repeat("overflow ", 25)[:200]
	if err := os.WriteFile(in, []byte("ok\n"+long+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	defaults := layout.DefaultSettings()
	defaults.Columns = 5
	out := filepath.Join(dir, "tabs.pdf")
	err := run(in, out, "", defaults, fpdfrenderer.NewRenderer())
	if !errors.Is(err, layout.ErrFit) {
		t.Fatalf("expected ErrFit, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("no PDF may be written on failure")
	}
}

func TestLoadDefaultsFromProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.tabs")
	src := "profile default { columns: 4; renderer: fpdf }\nprofile other { columns: 2 }\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := loadDefaults(path, "other")
	if err != nil {
		t.Fatalf("loadDefaults error: %v", err)
	}
	if d.Columns != 2 {
		t.Fatalf("expected 2 columns, got %d", d.Columns)
	}
	if _, err := loadDefaults(path, "missing"); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
	if d, err := loadDefaults("", "default"); err != nil || d.Columns != 3 {
		t.Fatalf("expected built-in defaults, got %#v %v", d, err)
	}
}

func TestNewBackend(t *testing.T) {
	for _, name := range []string{"", "canvas", "fpdf"} {
		if _, err := newBackend(name, ""); err != nil {
			t.Fatalf("newBackend(%q) error: %v", name, err)
		}
	}
	if _, err := newBackend("svg", ""); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
