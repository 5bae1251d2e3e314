package layout

import (
	"errors"
	"fmt"
)

// 排版失败的两类哨兵错误，可用 errors.Is 判断。
var (
	ErrConfiguration = errors.New("layout: 版面参数无效")
	ErrFit           = errors.New("layout: 文本超出 tab 尺寸")
)

// ConfigError 表示页边距或列数导致的无效几何，在任何排版之前返回。
type ConfigError struct {
	Field  string // 出错的参数，例如 "columns"、"margins"
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("layout: 参数 %s 无效: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// FitError 表示某一行在 9–12pt 的任何字号下都无法放进 tab 文本区。
type FitError struct {
	Index int    // 出错行在请求中的位置（从 0 开始）
	Line  string // 出错行内容
}

func (e *FitError) Error() string {
	return fmt.Sprintf("layout: 第 %d 行文本过长，无法放入 tab（最小字号 %dpt）: %q", e.Index+1, MinFontSize, truncate(e.Line, 40))
}

func (e *FitError) Unwrap() error { return ErrFit }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
