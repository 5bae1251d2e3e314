package canvasrenderer

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/tabprint/fonts"
	"github.com/ByLCY/tabprint/layout"
	"github.com/ByLCY/tabprint/renderer"
)

// Renderer draws layout results via github.com/tdewolff/canvas.
// canvas works in millimeters; the layout works in points, so every
// coordinate crosses the boundary through toMm/toPt.
type Renderer struct {
	fontMu sync.Mutex
	family *canvas.FontFamily
	faces  map[float64]*canvas.FontFace
}

var _ renderer.Backend = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Font Resource // 为空时使用内置 Go-Regular
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer and loads its font up front,
// so measuring never has to report a font error.
func NewRenderer(opts Options) (*Renderer, error) {
	data, err := loadFontBytes(opts.Font)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("tabprint")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	return &Renderer{
		family: family,
		faces:  map[float64]*canvas.FontFace{},
	}, nil
}

// TextWidth 实现 layout.Measurer，返回 pt。
func (r *Renderer) TextWidth(text string, fontSize float64) float64 {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	return toPt(r.faceLocked(fontSize).TextWidth(text))
}

// Render renders the document into a PDF byte slice, one PDF page per
// layout page. A document without pages is not a zero-page PDF: pdf.New
// always opens a first page, so the file holds one blank 792x648pt page.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}

	width, height := toMm(doc.Width), toMm(doc.Height)
	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	applyMeta(writer, doc.Meta)
	for i, page := range doc.Pages {
		if i > 0 {
			writer.NewPage(width, height)
		}
		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		r.drawPage(ctx, page)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawPage 使用默认的 CartesianI 坐标系（原点左下角），与排版结果的 PDF 坐标一致。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) {
	tb := page.Text
	if len(tb.Lines) == 0 {
		return
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	face := r.faceLocked(tb.FontSize)

	x := toMm(tb.CenterX)
	for _, line := range tb.Lines {
		ctx.DrawText(x, toMm(line.Baseline), canvas.NewTextLine(face, line.Content, canvas.Center))
	}
}

func (r *Renderer) faceLocked(size float64) *canvas.FontFace {
	if face, ok := r.faces[size]; ok {
		return face
	}
	face := r.family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	r.faces[size] = face
	return face
}

func loadFontBytes(res Resource) ([]byte, error) {
	if len(res.Bytes) > 0 {
		return res.Bytes, nil
	}
	if res.Path != "" {
		if strings.HasPrefix(res.Path, "embed:") {
			return fonts.Load(res.Path)
		}
		data, err := os.ReadFile(res.Path)
		if err != nil {
			return nil, fmt.Errorf("读取字体 %s 失败: %w", res.Path, err)
		}
		return data, nil
	}
	return fonts.Load(fonts.Default)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
