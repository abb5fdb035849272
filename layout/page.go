package layout

import (
	"fmt"
	"strings"
)

var pagePresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
}

const defaultMargin = 15.0

// DefaultPage 返回 A4 纵向、四边 15mm 的页面。
func DefaultPage() PageSpec {
	return PageSpec{
		Width:  210,
		Height: 297,
		Margin: Margin{Top: defaultMargin, Right: defaultMargin, Bottom: defaultMargin, Left: defaultMargin},
	}
}

// ResolvePage 根据纸张名称、方向与 CSS 风格的边距列表计算页面规格。
// 边距语义：
// 1 个值：四边相同；2 个值：上下、左右；3 个值：上、左右、下；4 个值：上、右、下、左（多余的忽略）。
func ResolvePage(size string, landscape bool, margins []string) (PageSpec, error) {
	key := strings.ToUpper(strings.TrimSpace(size))
	if key == "" {
		key = "A4"
	}
	base, ok := pagePresets[key]
	if !ok {
		return PageSpec{}, &ConfigurationError{Message: fmt.Sprintf("unsupported page size %q", size)}
	}
	spec := PageSpec{Width: base[0], Height: base[1]}
	if landscape {
		spec.Width, spec.Height = spec.Height, spec.Width
	}

	margin, err := resolveMargin(margins)
	if err != nil {
		return PageSpec{}, err
	}
	spec.Margin = margin
	if spec.ContentWidth() <= 0 || spec.ContentBottom() <= spec.Margin.Top {
		return PageSpec{}, &ConfigurationError{Message: fmt.Sprintf("margins %v leave no room on a %s page", margins, key)}
	}
	return spec, nil
}

func resolveMargin(values []string) (Margin, error) {
	vals := make([]float64, 0, 4)
	for _, raw := range values {
		if len(vals) == 4 {
			break
		}
		l, ok := ParseRawLengthStr(raw)
		if !ok || l.Value < 0 {
			return Margin{}, &ConfigurationError{Message: fmt.Sprintf("invalid margin %q", raw)}
		}
		vals = append(vals, l.ToMM())
	}
	switch len(vals) {
	case 0:
		return DefaultPage().Margin, nil
	case 1:
		v := vals[0]
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	default:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
}
