// Package fpdfrenderer renders tab documents with codeberg.org/go-pdf/fpdf
// using the Helvetica core font, so no font files are needed and widths follow
// the standard Adobe metrics.
package fpdfrenderer

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/tabprint/layout"
	"github.com/ByLCY/tabprint/renderer"
)

const fontFamily = "Helvetica"

// Renderer implements renderer.Backend on top of fpdf.
type Renderer struct {
	mu      sync.Mutex
	measure *fpdf.Fpdf // 仅用于测量，不输出
	tr      func(string) string
}

var _ renderer.Backend = (*Renderer)(nil)

// NewRenderer creates an fpdf backend.
func NewRenderer() *Renderer {
	m := newDocument()
	return &Renderer{
		measure: m,
		tr:      m.UnicodeTranslatorFromDescriptor(""),
	}
}

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetFont(fontFamily, "", layout.MaxFontSize)
	return pdf
}

// TextWidth 实现 layout.Measurer，返回 pt。
func (r *Renderer) TextWidth(text string, fontSize float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.measure.SetFontSize(fontSize)
	return r.measure.GetStringWidth(r.tr(text))
}

// Render renders the document into a PDF byte slice, one PDF page per
// layout page. fpdf cannot close a document without pages, so an empty
// document yields one blank page.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	applyMeta(pdf, doc.Meta)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		tb := page.Text
		pdf.SetFont(fontFamily, "", tb.FontSize)
		for _, line := range tb.Lines {
			text := tr(line.Content)
			// fpdf 原点在左上角，基线需要翻转。
			x := tb.CenterX - pdf.GetStringWidth(text)/2
			pdf.Text(x, doc.Height-line.Baseline, text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(pdf *fpdf.Fpdf, meta layout.DocumentMeta) {
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.SetKeywords(strings.Join(meta.Keywords, " "), true)
}
