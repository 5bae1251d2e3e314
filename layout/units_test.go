package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestLengthPoints 覆盖 Length 在常见单位上到 pt 的转换。
func TestLengthPoints(t *testing.T) {
	cases := []struct {
		in   Length
		want float64
	}{
		{Length{Value: 1, Unit: UnitIN}, 72},
		{Length{Value: 0.5, Unit: UnitNone}, 36}, // 裸数字按英寸处理
		{Length{Value: 25.4, Unit: UnitMM}, 72},
		{Length{Value: 2.54, Unit: UnitCM}, 72},
		{Length{Value: 18, Unit: UnitPT}, 18},
	}
	for _, tc := range cases {
		if got := tc.in.Points(); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%v 转 pt 期望 %g，实际 %g", tc.in, tc.want, got)
		}
	}
	if got := Inches(11).Points(); got != PageWidth {
		t.Fatalf("11in 应等于页面宽度，实际 %g", got)
	}
}

func TestParseLength(t *testing.T) {
	cases := map[string]Length{
		"0.5":     {Value: 0.5, Unit: UnitNone},
		"0.5in":   {Value: 0.5, Unit: UnitIN},
		" 12.7MM": {Value: 12.7, Unit: UnitMM},
		"1 cm":    {Value: 1, Unit: UnitCM},
		"36pt":    {Value: 36, Unit: UnitPT},
	}
	for in, want := range cases {
		got, err := ParseLength(in)
		if err != nil {
			t.Fatalf("ParseLength(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLength(%q) = %#v, want %#v", in, got, want)
		}
	}
	for _, bad := range []string{"", "abc", "1.2.3in", "NaN", "Inf"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("ParseLength(%q) should fail", bad)
		}
	}
}
