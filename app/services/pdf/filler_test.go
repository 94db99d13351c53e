package pdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeLayout(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const testLayout = `{
	"name": "attestation",
	"statics": [
		{"text": "ATTESTATION D'INSCRIPTION", "x": 150, "y": 760, "size": 16, "bold": true}
	],
	"rules": [{"x1": 60, "y": 740, "x2": 535}],
	"fields": {
		"full_name": {"x": 200, "y": 640, "bold": true},
		"number": {"x": 200, "y": 700, "max_width": 120}
	}
}`

func TestLoadLayoutMissing(t *testing.T) {
	_, err := LoadLayout(t.TempDir(), "nope")
	if !errors.Is(err, ErrTemplateLoad) {
		t.Fatalf("expected ErrTemplateLoad, got %v", err)
	}
}

func TestLoadLayoutInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "bad", "{not json")
	if _, err := LoadLayout(dir, "bad"); !errors.Is(err, ErrTemplateLoad) {
		t.Fatalf("expected ErrTemplateLoad, got %v", err)
	}
}

func TestLoadLayoutDefaults(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "attestation", testLayout)

	layout, err := LoadLayout(dir, "attestation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout.PageSize != "A4" {
		t.Errorf("expected default page size A4, got %s", layout.PageSize)
	}
	if layout.BaseSize != 11 {
		t.Errorf("expected default base size 11, got %.1f", layout.BaseSize)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "attestation", testLayout)
	filler := NewFiller(dir, "") // no display font: Helvetica fallback

	out, err := filler.Render("attestation", map[string]string{
		"full_name": "Jean Dupont",
		"number":    "ATT-IP24-0001-1B",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output should start with a PDF header")
	}
	if len(out) < 500 {
		t.Errorf("suspiciously small document: %d bytes", len(out))
	}
}

func TestFillSkipsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "attestation", testLayout)
	filler := NewFiller(dir, "")

	// A value with no position must be skipped, not fail the document.
	out, err := filler.Render("attestation", map[string]string{
		"full_name":  "Jean Dupont",
		"unmapped":   "ignored",
		"also_blank": "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Error("expected document bytes despite unmapped field")
	}
}

func TestMissingFontFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "attestation", testLayout)
	filler := NewFiller(dir, filepath.Join(dir, "missing.ttf"))

	out, err := filler.Render("attestation", map[string]string{"full_name": "Jean Dupont"})
	if err != nil {
		t.Fatalf("expected Helvetica fallback, got error: %v", err)
	}
	if len(out) == 0 {
		t.Error("expected document bytes")
	}
}
