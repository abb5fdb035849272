package renderer

import "github.com/ByLCY/cvpress/layout"

// Renderer 既是排版端（测量文本）也是绘制端（接收指令），并把布局结果输出为最终文件。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
// 同一个 Renderer 不可并发调用 Render。
type Renderer interface {
	layout.Typesetter
	layout.Surface
	Render(result *layout.Result) ([]byte, error)
}
