package layout

import (
	"math"
	"strings"
)

// FillBlanks 在 lines 末尾追加空行，直到行数为 columns 的整数倍。
// 已是整数倍时原样返回；columns <= 0 时不做处理（由 NewGeometry 报错）。
func FillBlanks(lines []string, columns int) []string {
	if columns <= 0 {
		return lines
	}
	rem := len(lines) % columns
	if rem == 0 {
		return lines
	}
	out := make([]string, len(lines), len(lines)+columns-rem)
	copy(out, lines)
	for i := rem; i < columns; i++ {
		out = append(out, "")
	}
	return out
}

// CleanLines 去掉每行首尾空白并丢弃空行。
func CleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// NewGeometry 校验页边距与列数并计算列宽。任何非正的可用宽度或列宽都会返回 *ConfigError。
func NewGeometry(marginLeft, marginRight float64, columns int) (Geometry, error) {
	if columns <= 0 {
		return Geometry{}, &ConfigError{Field: "columns", Reason: "列数必须至少为 1"}
	}
	if !finiteNonNegative(marginLeft) {
		return Geometry{}, &ConfigError{Field: "margin_left", Reason: "左边距必须是非负数"}
	}
	if !finiteNonNegative(marginRight) {
		return Geometry{}, &ConfigError{Field: "margin_right", Reason: "右边距必须是非负数"}
	}
	usable := PageWidth - marginLeft - marginRight
	if usable <= 0 {
		return Geometry{}, &ConfigError{Field: "margins", Reason: "左右边距之和不能达到或超过页面宽度 11in"}
	}
	columnWidth := usable / float64(columns)
	return Geometry{
		PageWidth:   PageWidth,
		PageHeight:  PageHeight,
		MarginLeft:  marginLeft,
		MarginRight: marginRight,
		Columns:     columns,
		UsableWidth: usable,
		ColumnWidth: columnWidth,
		WrapWidth:   columnWidth - TextPadding,
	}, nil
}

// NewRequest 把以英寸给出的页边距换算为 pt，校验几何参数，并在需要时补齐空白 tab。
// lines 应当已经去除首尾空白与空行（见 CleanLines）。
func NewRequest(marginLeft, marginRight Length, columns int, fillBlanks bool, lines []string) (Request, error) {
	left, right := marginLeft.Points(), marginRight.Points()
	if _, err := NewGeometry(left, right, columns); err != nil {
		return Request{}, err
	}
	if fillBlanks {
		lines = FillBlanks(lines, columns)
	}
	return Request{
		MarginLeft:  left,
		MarginRight: right,
		Columns:     columns,
		FillBlanks:  fillBlanks,
		Lines:       lines,
	}, nil
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
