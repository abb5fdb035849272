package layout

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ByLCY/cvpress/binding"
	"github.com/ByLCY/cvpress/resume"
)

const (
	// DefaultFilenamePattern 生成 <personName>_<templateVariant>.<ext>。
	DefaultFilenamePattern = "${name}_${template}.${ext}"
	contactSeparator       = " | "
	creator                = "cvpress"
)

// Build 按模板计算整份简历的版面与分页，返回绘制指令流。
// 模板无效时在生成任何指令之前返回 ConfigurationError；Typesetter 的错误原样返回。
func Build(doc *resume.Document, v Variant, opts BuildOptions) (*Result, error) {
	if opts.Typesetter == nil {
		return nil, &ConfigurationError{Message: "layout: missing Typesetter"}
	}
	opts = opts.withDefaults()

	plan, err := PlanFor(v, opts.Page)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &resume.Document{}
	}
	log := opts.Logger.With(zap.String("template", v.String()))
	th := themeFor(plan)

	collector := newPageCollector(opts.Page)
	bodyTop, err := drawHeader(collector, opts.Typesetter, doc.Personal, plan, th)
	if err != nil {
		return nil, err
	}

	reports := make([]ColumnReport, 0, len(plan.Columns))
	for i, col := range plan.Columns {
		pg := newPaginator(collector, col, i, bodyTop, log)
		sr := &sectionRenderer{ts: opts.Typesetter, plan: plan, theme: th, pg: pg}
		for _, kind := range col.Sections {
			if err := sr.render(sectionOf(doc, kind)); err != nil {
				return nil, err
			}
		}
		reports = append(reports, ColumnReport{
			Index:    i,
			Role:     col.Role,
			X:        col.X,
			Width:    col.Width,
			Sections: col.Sections,
			LastPage: pg.cursor.Page,
			EndY:     pg.cursor.Y,
		})
	}

	res := &Result{
		Template:     v,
		Filename:     Filename(doc.Personal.Name, v, opts.FilenamePattern, opts.Extension),
		Page:         opts.Page,
		Pages:        collector.pages,
		Instructions: collector.instructions,
		Columns:      reports,
		Overflows:    collector.overflows,
		Meta: DocumentMeta{
			Title:   strings.TrimSpace(doc.Personal.Name + " Resume"),
			Author:  doc.Personal.Name,
			Subject: v.String(),
			Creator: creator,
		},
	}
	log.Debug("layout finished",
		zap.Int("pages", res.Pages),
		zap.Int("instructions", len(res.Instructions)),
		zap.Int("overflows", len(res.Overflows)),
	)
	return res, nil
}

// drawHeader 绘制姓名、联系方式与分隔线；页眉总是横跨整个内容宽度。返回正文起始 Y。
func drawHeader(pc *pageCollector, ts Typesetter, p resume.Personal, plan ColumnPlan, th theme) (float64, error) {
	x := pc.page.Margin.Left
	width := pc.page.ContentWidth()
	y := pc.page.Margin.Top

	name, err := measure(ts, p.Name, width, Style{Font: th.name, Align: plan.Align, Role: "name"})
	if err != nil {
		return 0, err
	}
	if len(name.lines) > 0 {
		y += emitText(pc, 0, x, y, width, name) + th.lineGap
	}

	contact, err := measure(ts, joinContact(p), width, Style{Font: th.contact, Align: plan.Align, Role: "contact"})
	if err != nil {
		return 0, err
	}
	if len(contact.lines) > 0 {
		y += emitText(pc, 0, x, y, width, contact) + th.lineGap
	}

	emitRule(pc, 0, x, y, width, th.rule)
	return y + th.headerGap, nil
}

func joinContact(p resume.Personal) string {
	parts := make([]string, 0, 3)
	for _, v := range []string{p.Phone, p.Email, p.LinkedIn} {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, strings.TrimSpace(v))
		}
	}
	return strings.Join(parts, contactSeparator)
}

// Filename 按模式生成输出文件名。姓名中的空白与路径分隔符会被替换，空姓名使用 "resume"。
func Filename(name string, v Variant, pattern, ext string) string {
	if pattern == "" {
		pattern = DefaultFilenamePattern
	}
	return binding.Interpolate(pattern, map[string]any{
		"name":     binding.SanitizeFilename(name, "resume"),
		"template": v.String(),
		"ext":      strings.TrimPrefix(ext, "."),
	})
}

// Commit 按指令流顺序回放到渲染端。渲染端返回的错误不做包装，原样返回。
func Commit(res *Result, s Surface) error {
	if res == nil {
		return fmt.Errorf("layout: nil result")
	}
	return replay(res.Instructions, s)
}

// CommitByPage 先按页码稳定排序再回放，适用于只能顺序写页的渲染端。
// 每页的 KindPage 指令在流中先于该页内容，稳定排序后仍位于该页之首。
func CommitByPage(res *Result, s Surface) error {
	if res == nil {
		return fmt.Errorf("layout: nil result")
	}
	ordered := make([]DrawInstruction, len(res.Instructions))
	copy(ordered, res.Instructions)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Page < ordered[j].Page })
	return replay(ordered, s)
}

func replay(instructions []DrawInstruction, s Surface) error {
	for _, ins := range instructions {
		var err error
		switch ins.Kind {
		case KindPage:
			err = s.AddPage()
		case KindText:
			err = s.DrawText(ins)
		case KindLine:
			err = s.DrawLine(ins)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
