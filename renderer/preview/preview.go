// Package preview rasterises a single tab page to PNG with github.com/fogleman/gg.
// It draws an already-built layout.Document, so the preview shows the same
// wrapping and font size the PDF backend chose.
package preview

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/ByLCY/tabprint/fonts"
	"github.com/ByLCY/tabprint/layout"
	"github.com/ByLCY/tabprint/renderer"
)

// DefaultScale 是每 pt 对应的像素数。
const DefaultScale = 1.0

// Renderer draws pages to PNG.
type Renderer struct {
	scale float64
	font  *truetype.Font
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer parses the embedded font and returns a preview renderer.
// scale <= 0 falls back to DefaultScale.
func NewRenderer(scale float64) (*Renderer, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	data, err := fonts.Load(fonts.Default)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	return &Renderer{scale: scale, font: f}, nil
}

// Render renders the first page (or a blank page for an empty document).
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	return r.RenderPage(doc, 0)
}

// RenderPage renders page index of doc as PNG.
func (r *Renderer) RenderPage(doc *layout.Document, index int) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if index < 0 || (index >= len(doc.Pages) && !(index == 0 && len(doc.Pages) == 0)) {
		return nil, fmt.Errorf("页码 %d 超出范围（共 %d 页）", index, len(doc.Pages))
	}

	s := r.scale
	dc := gg.NewContext(int(doc.Width*s+0.5), int(doc.Height*s+0.5))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if len(doc.Pages) == 0 {
		return encode(dc)
	}

	page := doc.Pages[index]
	tb := page.Text
	// tab 区域外框
	dc.SetRGB(0.8, 0.8, 0.8)
	dc.SetLineWidth(1)
	dc.DrawRectangle(tb.ColumnX*s, 0, tb.ColumnWidth*s, layout.TabHeight*s)
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	// truetype 的 face 带有字形缓存，不能跨 goroutine 共用，每次渲染单独创建。
	dc.SetFontFace(truetype.NewFace(r.font, &truetype.Options{Size: tb.FontSize * s}))
	// gg 原点在左上角，基线需要从 PDF 坐标翻转。
	for _, line := range tb.Lines {
		dc.DrawStringAnchored(line.Content, tb.CenterX*s, (doc.Height-line.Baseline)*s, 0.5, 0)
	}
	return encode(dc)
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
