package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/cvpress/fonts"
	"github.com/ByLCY/cvpress/layout"
	"github.com/ByLCY/cvpress/renderer"
	"github.com/ByLCY/cvpress/renderer/textwrap"
)

const defaultRuleWidth = 0.2

var (
	textColor = canvas.RGBA(30.0/255, 30.0/255, 30.0/255, 1)
	ruleColor = canvas.RGBA(120.0/255, 120.0/255, 120.0/255, 1)
)

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	regular []byte
	bold    []byte

	fontMu sync.Mutex
	family *canvas.FontFamily
	faces  map[faceKey]*canvas.FontFace

	// 一次 Render 期间的页面，按 AddPage 顺序排列。
	pages    []*canvas.Canvas
	contexts []*canvas.Context
	size     [2]float64
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

type faceKey struct {
	size float64
	bold bool
}

// Options configures the canvas renderer.
type Options struct {
	// Regular/Bold 为空时使用内置的 Go 字体。
	Regular Resource
	Bold    Resource
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer using the built-in fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font resources.
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{
		regular: opts.Regular.read(),
		bold:    opts.Bold.read(),
		faces:   map[faceKey]*canvas.FontFace{},
	}
}

func (r Resource) read() []byte {
	if len(r.Bytes) > 0 {
		return r.Bytes
	}
	if r.Path != "" {
		data, _ := os.ReadFile(r.Path) // 读取失败时回退到内置字体
		return data
	}
	return nil
}

// Render 将布局结果回放到画布并输出 PDF 字节。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Pages == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	r.pages = r.pages[:0]
	r.contexts = r.contexts[:0]
	r.size = [2]float64{result.Page.Width, result.Page.Height}
	if err := layout.Commit(result, r); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, r.size[0], r.size[1], nil)
	meta := result.Meta
	writer.SetInfo(meta.Title, meta.Subject, "", meta.Author, meta.Creator)
	for i, c := range r.pages {
		if i > 0 {
			writer.NewPage(r.size[0], r.size[1])
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// AddPage 实现 layout.Surface：新建一页画布，坐标以左上角为原点（mm）。
func (r *Renderer) AddPage() error {
	if r.size[0] <= 0 || r.size[1] <= 0 {
		return fmt.Errorf("页面尺寸无效: %gx%g", r.size[0], r.size[1])
	}
	c := canvas.New(r.size[0], r.size[1])
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	r.pages = append(r.pages, c)
	r.contexts = append(r.contexts, ctx)
	return nil
}

func (r *Renderer) context(page int) (*canvas.Context, error) {
	if page < 0 || page >= len(r.contexts) {
		return nil, fmt.Errorf("第 %d 页尚未创建", page)
	}
	return r.contexts[page], nil
}

// DrawText 实现 layout.Surface。指令的 Y 为行顶部，基线为行顶加字体上升部。
func (r *Renderer) DrawText(ins layout.DrawInstruction) error {
	ctx, err := r.context(ins.Page)
	if err != nil {
		return err
	}
	face, err := r.fontFace(ins.Style.Font)
	if err != nil {
		return err
	}
	line := canvas.NewTextLine(face, ins.Content, canvas.Left)
	ctx.DrawText(ins.X, ins.Y+face.Metrics().Ascent, line)
	return nil
}

// DrawLine 实现 layout.Surface。
func (r *Renderer) DrawLine(ins layout.DrawInstruction) error {
	ctx, err := r.context(ins.Page)
	if err != nil {
		return err
	}
	w := ins.Width
	if w <= 0 {
		w = defaultRuleWidth
	}
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(ruleColor)
	ctx.SetStrokeWidth(w)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(ins.X2-ins.X, ins.Y2-ins.Y)
	ctx.DrawPath(ins.X, ins.Y, p)
	return nil
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。宽度单位为 mm，字号为 pt。
func (r *Renderer) LayoutLines(content string, width float64, font layout.Font) ([]layout.TextLine, error) {
	face, err := r.fontFace(font)
	if err != nil {
		return nil, err
	}
	return textwrap.Greedy(content, width, face.TextWidth), nil
}

// LineHeight 实现 layout.Typesetter 接口，返回字体度量给出的行高（mm）。
func (r *Renderer) LineHeight(font layout.Font) float64 {
	face, err := r.fontFace(font)
	if err != nil {
		return font.Size * layout.PtToMm * 1.2
	}
	return face.Metrics().LineHeight
}

func (r *Renderer) fontFace(font layout.Font) (*canvas.FontFace, error) {
	if font.Size <= 0 {
		return nil, fmt.Errorf("字号无效: %g", font.Size)
	}
	family, err := r.ensureFontFamily()
	if err != nil {
		return nil, err
	}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	key := faceKey{size: font.Size, bold: font.Bold}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	style := canvas.FontRegular
	if font.Bold {
		style = canvas.FontBold
	}
	face := family.Face(font.Size, textColor, style, canvas.FontNormal)
	r.faces[key] = face
	return face, nil
}

func (r *Renderer) ensureFontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}

	family := canvas.NewFontFamily("cvpress")
	for _, f := range []struct {
		injected []byte
		name     string
		style    canvas.FontStyle
	}{
		{r.regular, fonts.Regular, canvas.FontRegular},
		{r.bold, fonts.Bold, canvas.FontBold},
	} {
		if err := loadInto(family, f.injected, f.name, f.style); err != nil {
			return nil, err
		}
	}
	r.family = family
	return family, nil
}

// loadInto 优先加载注入的字体，失败时回退到同字重的内置字体。
func loadInto(family *canvas.FontFamily, injected []byte, builtin string, style canvas.FontStyle) error {
	if len(injected) > 0 {
		if err := family.LoadFont(injected, 0, style); err == nil {
			return nil
		}
	}
	data, err := fonts.Load(builtin)
	if err != nil {
		return err
	}
	if err := family.LoadFont(data, 0, style); err != nil {
		return fmt.Errorf("加载字体 %s 失败: %w", builtin, err)
	}
	return nil
}
