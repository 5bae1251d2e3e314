package layout

// 该文件定义排版请求与排版结果，供引擎、渲染后端与调试 JSON 共用。
// 所有坐标与尺寸均以 pt 为单位，坐标系为 PDF 用户空间（原点位于页面左下角，y 向上）。

// 固定的页面几何参数（11×9 英寸横向页面）。
const (
	PageWidth     = 11 * PointsPerInch // 792pt
	PageHeight    = 9 * PointsPerInch  // 648pt
	TabHeight     = 0.5 * PointsPerInch
	MaxTextHeight = 0.45 * PointsPerInch
	TextPadding   = 10.0

	MaxFontSize = 12
	MinFontSize = 9
)

// Request 是一次排版调用的输入，由 NewRequest 构造，使用一次后即丢弃。
type Request struct {
	MarginLeft  float64  `json:"marginLeft"`  // pt
	MarginRight float64  `json:"marginRight"` // pt
	Columns     int      `json:"columns"`
	FillBlanks  bool     `json:"fillBlanks"`
	Lines       []string `json:"lines"`
}

// Geometry 保存由页边距与列数推导出的版面尺寸。
type Geometry struct {
	PageWidth   float64 `json:"pageWidth"`
	PageHeight  float64 `json:"pageHeight"`
	MarginLeft  float64 `json:"marginLeft"`
	MarginRight float64 `json:"marginRight"`
	Columns     int     `json:"columns"`
	UsableWidth float64 `json:"usableWidth"`
	ColumnWidth float64 `json:"columnWidth"`
	WrapWidth   float64 `json:"wrapWidth"`
}

// ColumnX 返回第 column 列左边缘的横坐标。
func (g Geometry) ColumnX(column int) float64 {
	return g.MarginLeft + float64(column)*g.ColumnWidth
}

// ColumnCenter 返回第 column 列的水平中心。
func (g Geometry) ColumnCenter(column int) float64 {
	return g.ColumnX(column) + g.ColumnWidth/2
}

// Fit 记录一行文本最终采用的字号与折行结果。
type Fit struct {
	FontSize int      `json:"fontSize"`
	Lines    []string `json:"lines"`
}

// Height 返回折行后的占用高度（行数 × 字号，不含行距）。
func (f Fit) Height() float64 {
	return float64(len(f.Lines) * f.FontSize)
}

// Document 是排版结果：每个输入行对应一页。
type Document struct {
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Geometry Geometry     `json:"geometry"`
	Pages    []Page       `json:"pages"`
	Meta     DocumentMeta `json:"meta"`
}

// Page 是一个 tab 页：所在列与其中唯一的文本块。
type Page struct {
	Index  int     `json:"index"`
	Column int     `json:"column"`
	Text   TextBox `json:"text"`
}

// TextBox 表示已经排好坐标、水平居中的文本块。
type TextBox struct {
	Content     string     `json:"content"`
	ColumnX     float64    `json:"columnX"`
	ColumnWidth float64    `json:"columnWidth"`
	CenterX     float64    `json:"centerX"`
	FontSize    float64    `json:"fontSize"`
	Height      float64    `json:"height"`
	Lines       []TextLine `json:"lines"`
}

// TextLine 表示排版后的一行文本，Baseline 为基线纵坐标。
type TextLine struct {
	Content  string  `json:"content"`
	Width    float64 `json:"width"`
	Baseline float64 `json:"baseline"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
