package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称。
const (
	Regular = "Go-Regular"
	Bold    = "Go-Bold"
)

var builtin = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
}

// Load 返回内置字体的 TTF 数据，name 可写为 "embed:Go-Bold" 或直接 "Go-Bold"（不区分大小写）。
func Load(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, "embed:")
	for key, data := range builtin {
		if strings.EqualFold(key, name) {
			return data, nil
		}
	}
	return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", name)
}

// For 按字重返回内置字体名称。
func For(bold bool) string {
	if bold {
		return Bold
	}
	return Regular
}
