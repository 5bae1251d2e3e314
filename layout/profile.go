package layout

import (
	"fmt"
	"strconv"

	"github.com/ByLCY/tabprint/dsl"
)

// Defaults 是表单未填写时使用的版式参数，可由 .tabs 配置文件覆盖。
type Defaults struct {
	MarginLeft  Length
	MarginRight Length
	Columns     int
	FillBlanks  bool
	Renderer    string
	Meta        DocumentMeta
}

// DefaultSettings 返回内置默认值：左右各 0.5in，3 列，不补空白 tab。
func DefaultSettings() Defaults {
	return Defaults{
		MarginLeft:  Inches(0.5),
		MarginRight: Inches(0.5),
		Columns:     3,
		Meta:        DocumentMeta{Title: "Tabbed Output", Creator: "tabprint"},
	}
}

// ProfileDefaults 在内置默认值的基础上应用 profile 中的设置。未知的键视为错误。
func ProfileDefaults(p *dsl.Profile) (Defaults, error) {
	d := DefaultSettings()
	if p == nil {
		return d, nil
	}
	for _, s := range p.Settings {
		text := s.Value.Text()
		var err error
		switch s.Key {
		case "margin-left":
			d.MarginLeft, err = ParseLength(text)
		case "margin-right":
			d.MarginRight, err = ParseLength(text)
		case "columns":
			d.Columns, err = strconv.Atoi(text)
		case "fill-blanks":
			d.FillBlanks, err = strconv.ParseBool(text)
		case "renderer":
			d.Renderer = text
		case "title":
			d.Meta.Title = text
		case "author":
			d.Meta.Author = text
		case "subject":
			d.Meta.Subject = text
		case "creator":
			d.Meta.Creator = text
		case "keywords":
			d.Meta.Keywords = s.Value.Strings()
		default:
			err = fmt.Errorf("未知设置")
		}
		if err != nil {
			return Defaults{}, fmt.Errorf("profile %s 第 %d 行 %s: %w", p.Name, s.Pos.Line, s.Key, err)
		}
	}
	if _, err := NewGeometry(d.MarginLeft.Points(), d.MarginRight.Points(), d.Columns); err != nil {
		return Defaults{}, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return d, nil
}
