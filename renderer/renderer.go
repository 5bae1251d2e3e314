package renderer

import "github.com/ByLCY/tabprint/layout"

// Renderer 将排版结果输出为最终文件，例如 PDF 或图像。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}

// Backend 同时负责测量文字与输出文档。排版与渲染必须使用同一个 Backend，
// 否则折行结果与实际绘制宽度会不一致。
type Backend interface {
	Renderer
	layout.Measurer
}
