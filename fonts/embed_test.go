package fonts

import "testing"

func TestLoad(t *testing.T) {
	for _, name := range []string{"", "Go-Regular", "embed:Go-Bold", "Go-Mono"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) error: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned empty data", name)
		}
	}
	if _, err := Load("Inter-Regular"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
}
