package source

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadLinesTrimsAndSkipsBlanks(t *testing.T) {
	lines, raw, err := ReadLines(strings.NewReader("  Alpha \n\n\t\nBeta\r\n   Gamma\n"))
	if err != nil {
		t.Fatalf("ReadLines error: %v", err)
	}
	want := []string{"Alpha", "Beta", "Gamma"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got=%q want=%q", lines, want)
	}
	if !strings.Contains(raw, "Beta") {
		t.Fatalf("raw text should keep the original content, got %q", raw)
	}
}

func TestReadLinesStripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("First\nSecond")...)
	lines, _, err := ReadLines(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLines error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "First" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestReadLinesDecodesUTF16(t *testing.T) {
	// UTF-16LE with BOM: "Hi\nYo"
	input := []byte{0xFF, 0xFE, 'H', 0, 'i', 0, '\n', 0, 'Y', 0, 'o', 0}
	lines, _, err := ReadLines(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLines error: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"Hi", "Yo"}) {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestReadLinesNormalizesNFC(t *testing.T) {
	lines, _, err := ReadLines(strings.NewReader("Cafe\u0301"))
	if err != nil {
		t.Fatalf("ReadLines error: %v", err)
	}
	if lines[0] != "Caf\u00e9" {
		t.Fatalf("expected composed form, got %q", lines[0])
	}
}

func TestReadLinesNilReader(t *testing.T) {
	if _, _, err := ReadLines(nil); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}
