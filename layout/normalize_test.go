package layout

import (
	"reflect"
	"testing"
)

func TestFillBlanksPadsToColumnMultiple(t *testing.T) {
	seven := []string{"1", "2", "3", "4", "5", "6", "7"}
	got := FillBlanks(seven, 3)
	if len(got) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(got))
	}
	if got[7] != "" || got[8] != "" {
		t.Fatalf("expected two trailing blanks, got %q", got[7:])
	}
	if len(seven) != 7 {
		t.Fatalf("input slice must not be modified")
	}

	six := seven[:6]
	if got := FillBlanks(six, 3); !reflect.DeepEqual(got, six) {
		t.Fatalf("multiple of columns should be a no-op, got %q", got)
	}
	if got := FillBlanks(nil, 3); len(got) != 0 {
		t.Fatalf("empty input should stay empty, got %q", got)
	}
}

func TestNewRequestAppliesFillBlanksOnlyWhenAsked(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	req, err := NewRequest(Inches(0.5), Inches(0.5), 3, false, lines)
	if err != nil {
		t.Fatalf("NewRequest error: %v", err)
	}
	if len(req.Lines) != 4 {
		t.Fatalf("expected 4 lines without fill, got %d", len(req.Lines))
	}
	req, err = NewRequest(Inches(0.5), Inches(0.5), 3, true, lines)
	if err != nil {
		t.Fatalf("NewRequest error: %v", err)
	}
	if len(req.Lines) != 6 || req.MarginLeft != 36 || req.MarginRight != 36 {
		t.Fatalf("unexpected request: %#v", req)
	}
}

func TestCleanLinesDropsBlankLines(t *testing.T) {
	got := CleanLines([]string{"  first ", "", "\t", "second\r", "   "})
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%q want=%q", got, want)
	}
}
