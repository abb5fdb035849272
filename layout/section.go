package layout

import (
	"strings"

	"github.com/ByLCY/cvpress/resume"
)

const detailSeparator = " | "

// section 是某一分区的标题与条目，条目顺序即输入顺序。
type section struct {
	kind  SectionKind
	items []item
}

// item 由标题行与一行次要信息组成，两者分别折行。
type item struct {
	title  string
	detail string
}

func sectionOf(doc *resume.Document, kind SectionKind) section {
	s := section{kind: kind}
	if doc == nil {
		return s
	}
	switch kind {
	case SectionObjective:
		if strings.TrimSpace(doc.Objective) != "" {
			s.items = append(s.items, item{title: doc.Objective})
		}
	case SectionExperience:
		for _, e := range doc.Experience {
			s.items = append(s.items, item{title: e.Title, detail: joinNonEmpty(e.Company, e.Duration)})
		}
	case SectionEducation:
		for _, e := range doc.Education {
			s.items = append(s.items, item{title: e.Degree, detail: joinNonEmpty(e.Institution, e.Year)})
		}
	case SectionSkills:
		for _, sk := range doc.Skills {
			s.items = append(s.items, item{title: sk.Name, detail: sk.Level})
		}
	case SectionProjects:
		for _, p := range doc.Projects {
			s.items = append(s.items, item{title: p.Name, detail: p.Description})
		}
	case SectionCertifications:
		for _, c := range doc.Certifications {
			s.items = append(s.items, item{title: c.Name, detail: joinNonEmpty(c.Issuer, c.Year)})
		}
	case SectionAchievements:
		for _, a := range doc.Achievements {
			s.items = append(s.items, item{title: a.Title, detail: a.Description})
		}
	}
	return s
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, detailSeparator)
}

// textBlock 是已测量、尚未定位的若干行。
type textBlock struct {
	lines      []TextLine
	lineHeight float64
	style      Style
}

func (b textBlock) height() float64 { return float64(len(b.lines)) * b.lineHeight }

// measure 对文本折行；空文本不调用 Typesetter，返回零高度的块。
func measure(ts Typesetter, content string, width float64, style Style) (textBlock, error) {
	block := textBlock{style: style}
	if strings.TrimSpace(content) == "" {
		return block, nil
	}
	lines, err := ts.LayoutLines(content, width, style.Font)
	if err != nil {
		return block, err
	}
	block.lines = lines
	block.lineHeight = ts.LineHeight(style.Font)
	return block, nil
}

// emitText 把已测量的块按对齐方式放到 (x, y) 开始的栏内，返回块高度。
func emitText(pc *pageCollector, page int, x, y, width float64, block textBlock) float64 {
	for _, ln := range block.lines {
		lx := x
		if block.style.Align == AlignCenter && ln.Width < width {
			lx = x + (width-ln.Width)/2
		}
		pc.emit(DrawInstruction{
			Kind:    KindText,
			Page:    page,
			X:       lx,
			Y:       y,
			Width:   ln.Width,
			Height:  block.lineHeight,
			Content: ln.Content,
			Style:   block.style,
		})
		y += block.lineHeight
	}
	return block.height()
}

func emitRule(pc *pageCollector, page int, x, y, width, thickness float64) {
	pc.emit(DrawInstruction{
		Kind:  KindLine,
		Page:  page,
		X:     x,
		Y:     y,
		X2:    x + width,
		Y2:    y,
		Width: thickness,
		Style: Style{Role: "divider"},
	})
}

// sectionRenderer 在一栏内依次绘制分区，共享该栏的 paginator。
type sectionRenderer struct {
	ts    Typesetter
	plan  ColumnPlan
	theme theme
	pg    *paginator
}

// render 绘制一个分区；空分区不绘制标题与分隔线，也不移动光标。
func (r *sectionRenderer) render(sec section) error {
	if len(sec.items) == 0 {
		return nil
	}
	col := r.pg.column
	cur := r.pg.cursor
	pc := r.pg.collector

	heading, err := measure(r.ts, sec.kind.Title(), col.Width, Style{Font: r.theme.heading, Align: r.plan.Align, Role: "heading"})
	if err != nil {
		return err
	}
	r.pg.ensureSpace(heading.height(), sec.kind)
	emitText(pc, cur.Page, col.X, cur.Y, col.Width, heading)
	cur.Advance(heading.height() + r.theme.lineGap)

	titleFont := r.theme.title
	if sec.kind == SectionObjective {
		titleFont = r.theme.body
	}
	for _, it := range sec.items {
		title, err := measure(r.ts, it.title, col.Width, Style{Font: titleFont, Align: r.plan.Align, Role: "title"})
		if err != nil {
			return err
		}
		detail, err := measure(r.ts, it.detail, col.Width, Style{Font: r.theme.detail, Align: r.plan.Align, Role: "detail"})
		if err != nil {
			return err
		}
		h := title.height() + detail.height()
		r.pg.ensureSpace(h, sec.kind)
		y := cur.Y
		y += emitText(pc, cur.Page, col.X, y, col.Width, title)
		emitText(pc, cur.Page, col.X, y, col.Width, detail)
		cur.Advance(h + r.theme.itemGap)
	}

	r.pg.ensureSpace(r.theme.rule, sec.kind)
	emitRule(pc, cur.Page, col.X, cur.Y, col.Width, r.theme.rule)
	cur.Advance(r.theme.sectionGap)
	return nil
}
