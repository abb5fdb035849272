// Package fpdfrenderer 基于 codeberg.org/go-pdf/fpdf 的核心字体（Helvetica）渲染布局结果。
// 它不需要嵌入字体文件，输出体积更小；文本按 cp1252 编码，超出范围的字符会被替换。
package fpdfrenderer

import (
	"bytes"
	"fmt"
	"sync"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/cvpress/layout"
	"github.com/ByLCY/cvpress/renderer"
	"github.com/ByLCY/cvpress/renderer/textwrap"
)

const (
	family          = "Helvetica"
	lineHeightRatio = 1.2
	defaultRule     = 0.2
)

// Renderer draws layout results via fpdf.
type Renderer struct {
	tr func(string) string

	measureMu sync.Mutex
	measurer  *fpdf.Fpdf

	doc *fpdf.Fpdf
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 创建渲染器；测量使用独立的 fpdf 实例，不影响输出文档的状态。
func NewRenderer() *Renderer {
	m := fpdf.New("P", "mm", "A4", "")
	m.SetFont(family, "", 10)
	return &Renderer{
		tr:       fpdf.UnicodeTranslatorFromDescriptor(""),
		measurer: m,
	}
}

func style(font layout.Font) string {
	if font.Bold {
		return "B"
	}
	return ""
}

// LayoutLines 实现 layout.Typesetter 接口。
func (r *Renderer) LayoutLines(content string, width float64, font layout.Font) ([]layout.TextLine, error) {
	if font.Size <= 0 {
		return nil, fmt.Errorf("字号无效: %g", font.Size)
	}
	r.measureMu.Lock()
	defer r.measureMu.Unlock()
	r.measurer.SetFont(family, style(font), font.Size)
	if err := r.measurer.Error(); err != nil {
		return nil, err
	}
	measure := func(s string) float64 { return r.measurer.GetStringWidth(r.tr(s)) }
	return textwrap.Greedy(content, width, measure), nil
}

// LineHeight 实现 layout.Typesetter 接口，行高为字号的 1.2 倍（mm）。
func (r *Renderer) LineHeight(font layout.Font) float64 {
	return font.Size * layout.PtToMm * lineHeightRatio
}

// Render 按页顺序回放指令并输出 PDF 字节。fpdf 只能顺序写页，因此使用 layout.CommitByPage。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Pages == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	page := result.Page
	orientation := "P"
	if page.Width > page.Height {
		orientation = "L"
	}
	r.doc = fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	defer func() { r.doc = nil }()

	doc := r.doc
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCellMargin(0)
	doc.SetTextColor(30, 30, 30)
	doc.SetDrawColor(120, 120, 120)
	meta := result.Meta
	doc.SetTitle(meta.Title, true)
	doc.SetAuthor(meta.Author, true)
	doc.SetSubject(meta.Subject, true)
	doc.SetCreator(meta.Creator, true)

	if err := layout.CommitByPage(result, r); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) current(page int) (*fpdf.Fpdf, error) {
	if r.doc == nil {
		return nil, fmt.Errorf("渲染器未处于 Render 过程中")
	}
	if got := r.doc.PageNo() - 1; got != page {
		return nil, fmt.Errorf("指令属于第 %d 页，当前为第 %d 页", page, got)
	}
	return r.doc, nil
}

// AddPage 实现 layout.Surface。
func (r *Renderer) AddPage() error {
	if r.doc == nil {
		return fmt.Errorf("渲染器未处于 Render 过程中")
	}
	r.doc.AddPage()
	return r.doc.Error()
}

// DrawText 实现 layout.Surface。
func (r *Renderer) DrawText(ins layout.DrawInstruction) error {
	doc, err := r.current(ins.Page)
	if err != nil {
		return err
	}
	font := ins.Style.Font
	doc.SetFont(family, style(font), font.Size)
	h := ins.Height
	if h <= 0 {
		h = r.LineHeight(font)
	}
	doc.SetXY(ins.X, ins.Y)
	doc.CellFormat(ins.Width, h, r.tr(ins.Content), "", 0, "LM", false, 0, "")
	return doc.Error()
}

// DrawLine 实现 layout.Surface。
func (r *Renderer) DrawLine(ins layout.DrawInstruction) error {
	doc, err := r.current(ins.Page)
	if err != nil {
		return err
	}
	w := ins.Width
	if w <= 0 {
		w = defaultRule
	}
	doc.SetLineWidth(w)
	doc.Line(ins.X, ins.Y, ins.X2, ins.Y2)
	return doc.Error()
}
