// Package textwrap 提供与字体无关的贪心折行，供各渲染端实现 layout.Typesetter。
package textwrap

import (
	"strings"
	"unicode"

	"github.com/ByLCY/cvpress/layout"
)

// MeasureFunc 返回文本在当前字体下的宽度（mm）。
type MeasureFunc func(text string) float64

// Greedy 优先在空白处断行，单个词超过 limit 时在词内按字符拆分；显式换行总是断行。
// 行首空白被丢弃，行尾空白被裁掉，行宽按裁剪后的内容重新测量。
// 空白内容返回 nil。limit 非正时不按宽度折行。
func Greedy(content string, limit float64, measure MeasureFunc) []layout.TextLine {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	var lines []layout.TextLine
	var builder strings.Builder
	current := 0.0

	emit := func(force bool) {
		text := strings.TrimRightFunc(builder.String(), unicode.IsSpace)
		builder.Reset()
		current = 0
		if text == "" && !force {
			return
		}
		lines = append(lines, layout.TextLine{Content: text, Width: measure(text)})
	}
	fits := func(w float64) bool { return limit <= 0 || w <= limit }

	appendToken := func(token string, w float64) {
		builder.WriteString(token)
		current += w
	}

	for _, token := range tokenize(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		isSpace := strings.TrimSpace(token) == ""
		if isSpace && builder.Len() == 0 {
			continue
		}
		w := measure(token)
		if isSpace {
			appendToken(token, w)
			continue
		}
		if current > 0 && !fits(current+w) {
			emit(false)
		}
		if fits(w) {
			appendToken(token, w)
			continue
		}
		for _, chunk := range splitByWidth(token, limit, measure) {
			cw := measure(chunk)
			if current > 0 && !fits(current+cw) {
				emit(false)
			}
			appendToken(chunk, cw)
		}
	}
	if builder.Len() > 0 {
		emit(false)
	}
	return lines
}

// tokenize 把文本切分为交替的空白与非空白片段，换行单独成为 "\n"。
func tokenize(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

// splitByWidth 按字符把过长的词拆开；每段至少包含一个字符。
func splitByWidth(token string, limit float64, measure MeasureFunc) []string {
	if limit <= 0 {
		return []string{token}
	}
	var parts []string
	var chunk []rune
	for _, r := range token {
		chunk = append(chunk, r)
		if len(chunk) > 1 && measure(string(chunk)) > limit {
			parts = append(parts, string(chunk[:len(chunk)-1]))
			chunk = []rune{r}
		}
	}
	if len(chunk) > 0 {
		parts = append(parts, string(chunk))
	}
	return parts
}
