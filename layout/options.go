package layout

import "go.uber.org/zap"

// BuildOptions 配置布局阶段所需的依赖，例如排版后端与页面尺寸。
type BuildOptions struct {
	Typesetter Typesetter
	// Page 为空时使用 DefaultPage（A4，四边 15mm）。
	Page PageSpec
	// FilenamePattern 支持 ${name}、${template}、${ext} 占位符，默认 DefaultFilenamePattern。
	FilenamePattern string
	// Extension 为输出文件扩展名，默认 "pdf"。
	Extension string
	Logger    *zap.Logger
}

// Typesetter 负责文本测量：按宽度约束把文本拆成行，并给出某字号的行高。
// 约定：width 与返回的行宽、行高均为 mm，Font.Size 为 pt。
type Typesetter interface {
	LayoutLines(content string, width float64, font Font) ([]TextLine, error)
	LineHeight(font Font) float64
}

// Surface 是外部渲染端，按顺序接收绘制指令。
type Surface interface {
	AddPage() error
	DrawText(ins DrawInstruction) error
	DrawLine(ins DrawInstruction) error
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.Page == (PageSpec{}) {
		o.Page = DefaultPage()
	}
	if o.FilenamePattern == "" {
		o.FilenamePattern = DefaultFilenamePattern
	}
	if o.Extension == "" {
		o.Extension = "pdf"
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
