package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未指定字体时使用的内置字体名。
const Default = "Go-Regular"

var builtin = map[string][]byte{
	"Go-Regular": goregular.TTF,
	"Go-Bold":    gobold.TTF,
	"Go-Mono":    gomono.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:Go-Regular" 或直接 "Go-Regular"。
func Load(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, "embed:")
	if name == "" {
		name = Default
	}
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", name)
	}
	return data, nil
}
