package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/tabprint/dsl"
)

const sampleProfile = `
# 默认的 tab 版式
profile default {
  margin-left: 0.5in
  margin-right: 12.7mm
  columns: 3
  fill-blanks: true
  renderer: canvas
  title: "Binder tabs"
  keywords: [
    "tabs"
    "binder"
  ]
}

// 窄列版式
profile narrow { columns: 5; margin-left: .25in; margin-right: 18pt }
`

func TestParseProfiles(t *testing.T) {
	file, err := dsl.ParseString(sampleProfile)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(file.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(file.Profiles))
	}

	def := file.Lookup("default")
	if def == nil {
		t.Fatalf("profile default not found")
	}
	got := map[string]*dsl.Value{}
	for _, s := range def.Settings {
		got[s.Key] = s.Value
	}
	if v := got["margin-left"]; v == nil || v.Number == nil || *v.Number != "0.5in" {
		t.Fatalf("unexpected margin-left: %#v", v)
	}
	if v := got["fill-blanks"]; v == nil || v.Bool == nil || !bool(*v.Bool) {
		t.Fatalf("expected fill-blanks true, got %#v", v)
	}
	if v := got["renderer"]; v.Text() != "canvas" {
		t.Fatalf("expected renderer canvas, got %q", v.Text())
	}
	if v := got["title"]; v.Text() != "Binder tabs" {
		t.Fatalf("expected unquoted title, got %q", v.Text())
	}
	if kws := got["keywords"].Strings(); strings.Join(kws, ",") != "tabs,binder" {
		t.Fatalf("unexpected keywords: %v", kws)
	}

	narrow := file.Lookup("narrow")
	if narrow == nil || len(narrow.Settings) != 3 {
		t.Fatalf("expected narrow profile with 3 settings, got %#v", narrow)
	}
	if narrow.Settings[1].Value.Text() != ".25in" {
		t.Fatalf("expected .25in, got %q", narrow.Settings[1].Value.Text())
	}
}

func TestParseRejectsMissingColon(t *testing.T) {
	if _, err := dsl.ParseString(`profile bad { columns 3 }`); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLookupMissing(t *testing.T) {
	file, err := dsl.Parse(strings.NewReader("profile a { columns: 1 }"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if file.Lookup("b") != nil {
		t.Fatalf("expected nil for unknown profile")
	}
	if p := file.Lookup("a"); p == nil || p.Settings[0].Value.Text() != "1" {
		t.Fatalf("expected profile a with columns 1")
	}
}
