package layout

import (
	"fmt"
	"strings"
)

// Layout 是对外的一站式入口：页边距以英寸给出，lines 为已清洗的非空行。
// 成功时返回完整文档；任何一行放不下时返回 *FitError，不产生部分结果。
func Layout(marginLeftInches, marginRightInches float64, columns int, fillBlanks bool, lines []string, opts BuildOptions) (*Document, error) {
	req, err := NewRequest(Inches(marginLeftInches), Inches(marginRightInches), columns, fillBlanks, lines)
	if err != nil {
		return nil, err
	}
	return Build(req, opts)
}

// Build 把请求中的每一行排成独立的一页。
// 几何参数先于任何逐行处理校验；第一行放不下即整体失败。
func Build(req Request, opts BuildOptions) (*Document, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: 缺少测量后端 Measurer")
	}
	geo, err := NewGeometry(req.MarginLeft, req.MarginRight, req.Columns)
	if err != nil {
		return nil, err
	}

	pages := make([]Page, 0, len(req.Lines))
	for i, line := range req.Lines {
		fit, ok := FitText(line, geo.WrapWidth, opts.Measurer)
		if !ok {
			return nil, &FitError{Index: i, Line: line}
		}
		pages = append(pages, composePage(i, line, fit, geo, opts.Measurer))
	}

	return &Document{
		Width:    PageWidth,
		Height:   PageHeight,
		Geometry: geo,
		Pages:    pages,
		Meta:     opts.Meta,
	}, nil
}

// FitText 从 12pt 开始逐级减小字号，返回第一个使折行高度不超过 MaxTextHeight 的结果。
// 9pt 仍放不下时 ok 为 false。
func FitText(text string, width float64, m Measurer) (fit Fit, ok bool) {
	for size := MaxFontSize; size >= MinFontSize; size-- {
		fit = Fit{FontSize: size, Lines: Wrap(text, width, float64(size), m)}
		if fit.Height() <= MaxTextHeight {
			return fit, true
		}
	}
	return Fit{}, false
}

// Wrap 使用贪心算法按单词折行：尽可能多地把单词放进一行，下一个单词放不下时换行。
// 比单行宽度还长的单词独占一行，不做词内拆分。
func Wrap(text string, width, fontSize float64, m Measurer) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if m.TextWidth(candidate, fontSize) <= width {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// composePage 计算一页中文本块的坐标：列内水平居中，在 tab 文本区内垂直居中。
func composePage(index int, content string, fit Fit, geo Geometry, m Measurer) Page {
	column := index % geo.Columns
	size := float64(fit.FontSize)
	columnY := PageHeight - TabHeight/2
	blockHeight := fit.Height()
	baseline := columnY + MaxTextHeight/2 - blockHeight/2

	lines := make([]TextLine, 0, len(fit.Lines))
	for i, text := range fit.Lines {
		lines = append(lines, TextLine{
			Content:  text,
			Width:    m.TextWidth(text, size),
			Baseline: baseline - float64(i)*size,
		})
	}

	return Page{
		Index:  index,
		Column: column,
		Text: TextBox{
			Content:     content,
			ColumnX:     geo.ColumnX(column),
			ColumnWidth: geo.ColumnWidth,
			CenterX:     geo.ColumnCenter(column),
			FontSize:    size,
			Height:      blockHeight,
			Lines:       lines,
		},
	}
}
