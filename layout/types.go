package layout

// 该文件定义布局结果与绘制指令，供布局计算、渲染回放与调试 JSON 共用。
// 坐标统一使用毫米（mm），原点位于页面左上角；字号使用 pt。

// Result 保存一次生成调用的全部输出。
type Result struct {
	Template     Variant           `json:"template"`
	Filename     string            `json:"filename"`
	Page         PageSpec          `json:"page"`
	Pages        int               `json:"pages"`
	Instructions []DrawInstruction `json:"instructions"`
	Columns      []ColumnReport    `json:"columns"`
	Overflows    []Overflow        `json:"overflows,omitempty"`
	Meta         DocumentMeta      `json:"meta"`
}

// InstructionKind 区分绘制指令类型。
type InstructionKind string

const (
	KindPage InstructionKind = "page" // 分配新页面（包括第一页）
	KindText InstructionKind = "text"
	KindLine InstructionKind = "line"
)

// DrawInstruction 是一条不可变的绘制指令，交由渲染端按顺序回放。
// 文本指令的 Y 为该行顶部；线条指令使用 (X, Y) → (X2, Y2)，Width 为线宽。
type DrawInstruction struct {
	Kind    InstructionKind `json:"kind"`
	Page    int             `json:"page"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	X2      float64         `json:"x2,omitempty"`
	Y2      float64         `json:"y2,omitempty"`
	Width   float64         `json:"width,omitempty"`
	Height  float64         `json:"height,omitempty"`
	Content string          `json:"content,omitempty"`
	Style   Style           `json:"style"`
}

// Font 描述单一字族下的字号与字重。
type Font struct {
	Size float64 `json:"size"` // pt
	Bold bool    `json:"bold,omitempty"`
}

// Style 记录指令的字体、对齐方式与语义角色（name/contact/heading/title/detail/divider）。
type Style struct {
	Font  Font   `json:"font"`
	Align Align  `json:"align,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Align 为水平对齐方式。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// TextLine 表示排版后的一行文本及其宽度（mm）。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// PageSpec 描述页面尺寸与边距。
type PageSpec struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// ContentWidth 返回左右边距之间的可用宽度。
func (p PageSpec) ContentWidth() float64 { return p.Width - p.Margin.Left - p.Margin.Right }

// ContentBottom 返回可用内容的底边（页面高度减下边距）。
func (p PageSpec) ContentBottom() float64 { return p.Height - p.Margin.Bottom }

// ColumnReport 记录每一栏最终的排版状态。
type ColumnReport struct {
	Index    int           `json:"index"`
	Role     ColumnRole    `json:"role"`
	X        float64       `json:"x"`
	Width    float64       `json:"width"`
	Sections []SectionKind `json:"sections"`
	LastPage int           `json:"lastPage"`
	EndY     float64       `json:"endY"`
}

// Overflow 记录高于整页可用高度、只能越过下边距绘制的内容块。
type Overflow struct {
	Column  int         `json:"column"`
	Section SectionKind `json:"section"`
	Page    int         `json:"page"`
	Y       float64     `json:"y"`
	Height  float64     `json:"height"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Subject string `json:"subject"`
	Creator string `json:"creator"`
}
