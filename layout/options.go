package layout

// BuildOptions 配置排版阶段所需的依赖，例如测量文字宽度的后端。
type BuildOptions struct {
	Measurer Measurer
	Meta     DocumentMeta
}

// Measurer 负责测量文本在给定字号下的宽度（pt）。
// 实现必须是确定性的：相同输入总是返回相同宽度。
type Measurer interface {
	TextWidth(text string, fontSize float64) float64
}

// MeasurerFunc 让普通函数满足 Measurer 接口。
type MeasurerFunc func(text string, fontSize float64) float64

func (f MeasurerFunc) TextWidth(text string, fontSize float64) float64 { return f(text, fontSize) }
