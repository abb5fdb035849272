package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ByLCY/cvpress/resume"
)

// stubTypesetter 是测试用的等宽排版：每个字符宽 0.5em，行高 1.2em。
// 它记录每次调用的参数，用来检查布局从不以空文本或非正宽度调用排版。
type stubTypesetter struct {
	calls []stubCall
	err   error
}

type stubCall struct {
	content string
	width   float64
}

func (s *stubTypesetter) LayoutLines(content string, width float64, font Font) ([]TextLine, error) {
	s.calls = append(s.calls, stubCall{content: content, width: width})
	if s.err != nil {
		return nil, s.err
	}
	charW := font.Size * PtToMm * 0.5
	lineW := func(text string) float64 { return float64(utf8.RuneCountInString(text)) * charW }

	var lines []TextLine
	cur := ""
	for _, word := range strings.Fields(content) {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if cur != "" && lineW(candidate) > width {
			lines = append(lines, TextLine{Content: cur, Width: lineW(cur)})
			cur = word
			continue
		}
		cur = candidate
	}
	if cur != "" {
		lines = append(lines, TextLine{Content: cur, Width: lineW(cur)})
	}
	return lines, nil
}

func (s *stubTypesetter) LineHeight(font Font) float64 {
	return font.Size * PtToMm * 1.2
}

// recordingSurface 记录回放的操作；failAt>0 时在第 failAt 次调用返回 err。
type recordingSurface struct {
	ops    []string
	pages  []int
	calls  int
	failAt int
	err    error
}

func (r *recordingSurface) step(op string) error {
	r.calls++
	if r.failAt > 0 && r.calls == r.failAt {
		return r.err
	}
	r.ops = append(r.ops, op)
	return nil
}

func (r *recordingSurface) AddPage() error { return r.step("page") }

func (r *recordingSurface) DrawText(ins DrawInstruction) error {
	r.pages = append(r.pages, ins.Page)
	return r.step("text:" + ins.Content)
}

func (r *recordingSurface) DrawLine(ins DrawInstruction) error {
	r.pages = append(r.pages, ins.Page)
	return r.step("line")
}

func build(t *testing.T, doc *resume.Document, v Variant) (*Result, *stubTypesetter) {
	t.Helper()
	ts := &stubTypesetter{}
	res, err := Build(doc, v, BuildOptions{Typesetter: ts})
	require.NoError(t, err, "构建 %s 失败", v)
	return res, ts
}

func headings(res *Result) []DrawInstruction {
	var out []DrawInstruction
	for _, ins := range res.Instructions {
		if ins.Kind == KindText && ins.Style.Role == "heading" {
			out = append(out, ins)
		}
	}
	return out
}

func count(res *Result, kind InstructionKind) int {
	n := 0
	for _, ins := range res.Instructions {
		if ins.Kind == kind {
			n++
		}
	}
	return n
}

// columnOf 按 X 坐标找到指令所在的栏。
func columnOf(res *Result, ins DrawInstruction) int {
	for _, col := range res.Columns {
		if ins.X >= col.X-epsilon && ins.X < col.X+col.Width {
			return col.Index
		}
	}
	return -1
}

func kindByTitle(title string) SectionKind {
	for _, k := range SectionOrder {
		if k.Title() == title {
			return k
		}
	}
	return ""
}

func longResume(experiences int) *resume.Document {
	doc := resume.Sample()
	doc.Experience = nil
	for i := 0; i < experiences; i++ {
		doc.Experience = append(doc.Experience, resume.Experience{
			Title:    fmt.Sprintf("Senior Platform Engineer, team %d", i+1),
			Company:  "Acme Learning",
			Duration: "2019 - 2021",
		})
	}
	return doc
}

// 仅有姓名：单页，只有页眉与分隔线，没有任何分区标题。
func TestBuildNameOnly(t *testing.T) {
	doc := &resume.Document{Personal: resume.Personal{Name: "Jane Roe"}}
	res, ts := build(t, doc, SingleColumnLeft)

	assert.Equal(t, 1, res.Pages)
	assert.Empty(t, headings(res))
	require.Len(t, res.Instructions, 3)
	assert.Equal(t, KindPage, res.Instructions[0].Kind)
	assert.Equal(t, "Jane Roe", res.Instructions[1].Content)
	assert.Equal(t, "name", res.Instructions[1].Style.Role)
	assert.Equal(t, KindLine, res.Instructions[2].Kind)
	assert.Equal(t, "Jane_Roe_singleColumnLeft.pdf", res.Filename)

	// 联系方式为空，不应触发排版调用。
	require.Len(t, ts.calls, 1)
	assert.Equal(t, "Jane Roe", ts.calls[0].content)
}

func TestBuildTwoColumnSplitsSections(t *testing.T) {
	res, _ := build(t, resume.Sample(), TwoColumn)
	require.Len(t, res.Columns, 2)
	assert.Equal(t, ColumnNarrow, res.Columns[0].Role)
	assert.Equal(t, ColumnMain, res.Columns[1].Role)

	got := map[int][]SectionKind{}
	for _, h := range headings(res) {
		col := columnOf(res, h)
		require.NotEqual(t, -1, col, "标题 %q 不在任何栏内", h.Content)
		got[col] = append(got[col], kindByTitle(h.Content))
	}
	assert.Equal(t, []SectionKind{SectionSkills, SectionCertifications}, got[0])
	assert.Equal(t, []SectionKind{
		SectionObjective, SectionExperience, SectionEducation, SectionProjects, SectionAchievements,
	}, got[1])

	// 两栏都从页眉下方同一位置开始。
	firstY := map[int]float64{}
	for _, h := range headings(res) {
		col := columnOf(res, h)
		if _, ok := firstY[col]; !ok {
			firstY[col] = h.Y
		}
	}
	require.Len(t, firstY, 2)
	assert.InDelta(t, firstY[0], firstY[1], 1e-9)
}

func TestSectionOrderPerVariant(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			res, _ := build(t, resume.Sample(), v)
			last := map[int]int{}
			for _, h := range headings(res) {
				col := columnOf(res, h)
				kind := kindByTitle(h.Content)
				idx := -1
				for i, k := range res.Columns[col].Sections {
					if k == kind {
						idx = i
					}
				}
				require.NotEqual(t, -1, idx, "分区 %s 不属于栏 %d", kind, col)
				if prev, ok := last[col]; ok {
					assert.Greater(t, idx, prev, "栏 %d 中 %s 顺序错误", col, kind)
				}
				last[col] = idx
			}
			assert.Len(t, headings(res), len(SectionOrder))
		})
	}
}

func TestEmptySectionsAreSkipped(t *testing.T) {
	doc := &resume.Document{
		Personal:   resume.Personal{Name: "Jane Roe", Email: "jane@example.com"},
		Experience: []resume.Experience{{Title: "Engineer", Company: "Acme"}},
	}
	res, ts := build(t, doc, SingleColumnLeft)

	hs := headings(res)
	require.Len(t, hs, 1)
	assert.Equal(t, "Experience", hs[0].Content)
	// 页眉分隔线 + Experience 分隔线。
	assert.Equal(t, 2, count(res, KindLine))

	for _, c := range ts.calls {
		assert.NotEmpty(t, strings.TrimSpace(c.content))
		assert.Greater(t, c.width, 0.0)
	}

	// 追加空分区不改变光标位置。
	doc.Skills = []resume.Skill{}
	again, _ := build(t, doc, SingleColumnLeft)
	assert.Equal(t, res.Columns[0].EndY, again.Columns[0].EndY)
}

func TestPageBreakKeepsItemTogether(t *testing.T) {
	res, _ := build(t, longResume(40), SingleColumnLeft)
	require.Greater(t, res.Pages, 1)
	assert.Empty(t, res.Overflows)

	page := res.Page
	seenPage := map[int]bool{}
	for i, ins := range res.Instructions {
		switch ins.Kind {
		case KindPage:
			seenPage[ins.Page] = true
		case KindText:
			require.True(t, seenPage[ins.Page], "第 %d 页的内容先于分页指令出现", ins.Page)
			assert.LessOrEqual(t, ins.Y+ins.Height, page.ContentBottom()+1e-6, "文本越过下边距: %q", ins.Content)
			if ins.Style.Role == "title" && i+1 < len(res.Instructions) {
				next := res.Instructions[i+1]
				if next.Style.Role == "detail" {
					assert.Equal(t, ins.Page, next.Page, "条目 %q 被拆到两页", ins.Content)
				}
			}
		case KindLine:
			assert.LessOrEqual(t, ins.Y, page.ContentBottom()+1e-6)
		}
	}

	// 第 1 页上的第一条内容从上边距开始。
	for _, ins := range res.Instructions {
		if ins.Kind == KindText && ins.Page == 1 {
			assert.InDelta(t, page.Margin.Top, ins.Y, 1e-9)
			break
		}
	}
}

func TestNoBlockCrossesBottomMargin(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			res, _ := build(t, longResume(60), v)
			assert.Empty(t, res.Overflows)
			for _, ins := range res.Instructions {
				if ins.Kind == KindText {
					assert.LessOrEqual(t, ins.Y+ins.Height, res.Page.ContentBottom()+1e-6)
				}
			}
			maxPage := 0
			for _, col := range res.Columns {
				if col.LastPage > maxPage {
					maxPage = col.LastPage
				}
			}
			assert.Equal(t, maxPage+1, res.Pages)
			assert.Equal(t, res.Pages, count(res, KindPage))
		})
	}
}

func TestCompactIsShorter(t *testing.T) {
	loose, _ := build(t, resume.Sample(), SingleColumnLeft)
	tight, _ := build(t, resume.Sample(), Compact)
	require.Equal(t, 1, loose.Pages)
	require.Equal(t, 1, tight.Pages)
	assert.Less(t, tight.Columns[0].EndY, loose.Columns[0].EndY)

	longLoose, _ := build(t, longResume(50), SingleColumnLeft)
	longTight, _ := build(t, longResume(50), Compact)
	assert.LessOrEqual(t, longTight.Pages, longLoose.Pages)
}

func TestCenteredAlignsLines(t *testing.T) {
	res, _ := build(t, resume.Sample(), Centered)
	for _, ins := range res.Instructions {
		if ins.Kind != KindText {
			continue
		}
		assert.Equal(t, AlignCenter, ins.Style.Align)
		center := ins.X + ins.Width/2
		assert.InDelta(t, res.Page.Margin.Left+res.Page.ContentWidth()/2, center, 1e-6, "%q 未居中", ins.Content)
	}
}

func TestColumnsPaginateIndependently(t *testing.T) {
	doc := longResume(40)
	full, _ := build(t, doc, TwoColumn)
	require.Greater(t, full.Columns[1].LastPage, 0)
	assert.Equal(t, 0, full.Columns[0].LastPage)

	// 去掉窄栏内容，主栏结果不变。
	noNarrow := longResume(40)
	noNarrow.Skills = nil
	noNarrow.Certifications = nil
	other, _ := build(t, noNarrow, TwoColumn)
	assert.Equal(t, full.Columns[1].LastPage, other.Columns[1].LastPage)
	assert.InDelta(t, full.Columns[1].EndY, other.Columns[1].EndY, 1e-9)
	assert.Equal(t, full.Pages, other.Pages)

	// 窄栏跨页而主栏很短时，主栏仍停留在第 0 页。
	manySkills := resume.Sample()
	for i := 0; i < 80; i++ {
		manySkills.Skills = append(manySkills.Skills, resume.Skill{Name: fmt.Sprintf("Skill %d", i), Level: "Expert"})
	}
	wide, _ := build(t, manySkills, TwoColumn)
	assert.Greater(t, wide.Columns[0].LastPage, 0)
	assert.Equal(t, 0, wide.Columns[1].LastPage)
	assert.Equal(t, wide.Columns[0].LastPage+1, wide.Pages)
}

func TestOversizeBlockIsReported(t *testing.T) {
	doc := resume.Sample()
	doc.Achievements = []resume.Achievement{{
		Title:       "Reading list",
		Description: strings.Repeat("lorem ipsum ", 2000),
	}}

	core, logs := observer.New(zap.WarnLevel)
	ts := &stubTypesetter{}
	res, err := Build(doc, SingleColumnLeft, BuildOptions{Typesetter: ts, Logger: zap.New(core)})
	require.NoError(t, err)

	require.Len(t, res.Overflows, 1)
	ov := res.Overflows[0]
	assert.Equal(t, SectionAchievements, ov.Section)
	assert.Equal(t, 1, ov.Page)
	assert.InDelta(t, res.Page.Margin.Top, ov.Y, 1e-9)
	assert.Greater(t, ov.Height, res.Page.ContentBottom()-res.Page.Margin.Top)
	assert.Equal(t, 1, logs.FilterMessage("content block taller than page, drawing past bottom margin").Len())
}

func TestBuildIsDeterministic(t *testing.T) {
	for _, v := range Variants() {
		a, _ := build(t, longResume(30), v)
		b, _ := build(t, longResume(30), v)
		ja, err := json.Marshal(a)
		require.NoError(t, err)
		jb, err := json.Marshal(b)
		require.NoError(t, err)
		assert.Equal(t, string(ja), string(jb), "模板 %s 两次输出不一致", v)
	}
}

func TestUnknownVariant(t *testing.T) {
	_, err := ParseVariant("fancy")
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	res, err := Build(resume.Sample(), Variant(42), BuildOptions{Typesetter: &stubTypesetter{}})
	require.ErrorAs(t, err, &cfgErr)
	assert.Nil(t, res)

	_, err = Build(resume.Sample(), TwoColumn, BuildOptions{})
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseVariantRoundTrip(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestTypesetterErrorPropagates(t *testing.T) {
	boom := errors.New("font exploded")
	_, err := Build(resume.Sample(), SingleColumnLeft, BuildOptions{Typesetter: &stubTypesetter{err: boom}})
	assert.Same(t, boom, err)
}

func TestCommitReplaysInOrder(t *testing.T) {
	res, _ := build(t, longResume(40), SingleColumnLeft)
	s := &recordingSurface{}
	require.NoError(t, Commit(res, s))
	assert.Len(t, s.ops, len(res.Instructions))
	pages := 0
	for _, op := range s.ops {
		if op == "page" {
			pages++
		}
	}
	assert.Equal(t, res.Pages, pages)
	assert.Equal(t, "page", s.ops[0])
}

func TestCommitByPageOrdersPages(t *testing.T) {
	doc := longResume(40)
	for i := 0; i < 80; i++ {
		doc.Skills = append(doc.Skills, resume.Skill{Name: fmt.Sprintf("Skill %d", i)})
	}
	res, _ := build(t, doc, TwoColumn)
	s := &recordingSurface{}
	require.NoError(t, CommitByPage(res, s))
	for i := 1; i < len(s.pages); i++ {
		assert.LessOrEqual(t, s.pages[i-1], s.pages[i])
	}
	// 原结果不被修改。
	assert.Equal(t, KindPage, res.Instructions[0].Kind)
}

func TestSurfaceErrorPropagates(t *testing.T) {
	res, _ := build(t, resume.Sample(), SingleColumnLeft)
	boom := errors.New("disk full")
	s := &recordingSurface{failAt: 3, err: boom}
	err := Commit(res, s)
	assert.Same(t, boom, err)
	assert.Len(t, s.ops, 2)

	err = CommitByPage(res, &recordingSurface{failAt: 1, err: boom})
	assert.Same(t, boom, err)
}

func TestPlanForGeometry(t *testing.T) {
	page := DefaultPage()
	plan, err := PlanFor(TwoColumn, page)
	require.NoError(t, err)
	require.Len(t, plan.Columns, 2)
	assert.InDelta(t, 15, plan.Columns[0].X, 1e-9)
	assert.InDelta(t, 55, plan.Columns[0].Width, 1e-9)
	assert.InDelta(t, 78, plan.Columns[1].X, 1e-9)
	assert.InDelta(t, 117, plan.Columns[1].Width, 1e-9)

	plan, err = PlanFor(SidebarRight, page)
	require.NoError(t, err)
	assert.Equal(t, ColumnMain, plan.Columns[0].Role)
	assert.InDelta(t, 15, plan.Columns[0].X, 1e-9)
	assert.InDelta(t, 140, plan.Columns[1].X, 1e-9)

	plan, err = PlanFor(StackedSections, page)
	require.NoError(t, err)
	assert.False(t, plan.HeadingBold)

	plan, err = PlanFor(Compact, page)
	require.NoError(t, err)
	assert.Less(t, plan.Density, 1.0)

	narrow := PageSpec{Width: 80, Height: 200, Margin: Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}}
	_, err = PlanFor(TwoColumn, narrow)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	_, err = PlanFor(SingleColumnLeft, narrow)
	assert.NoError(t, err)
}

func TestResolvePageMargins(t *testing.T) {
	cases := []struct {
		in   []string
		want Margin
	}{
		{nil, Margin{Top: 15, Right: 15, Bottom: 15, Left: 15}},
		{[]string{"10"}, Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}},
		{[]string{"10mm", "20mm"}, Margin{Top: 10, Right: 20, Bottom: 10, Left: 20}},
		{[]string{"1cm", "2cm", "3cm"}, Margin{Top: 10, Right: 20, Bottom: 30, Left: 20}},
		{[]string{"1", "2", "3", "4", "5"}, Margin{Top: 1, Right: 2, Bottom: 3, Left: 4}},
	}
	for _, c := range cases {
		spec, err := ResolvePage("a4", false, c.in)
		require.NoError(t, err, "边距 %v", c.in)
		assert.InDelta(t, c.want.Top, spec.Margin.Top, 1e-9)
		assert.InDelta(t, c.want.Right, spec.Margin.Right, 1e-9)
		assert.InDelta(t, c.want.Bottom, spec.Margin.Bottom, 1e-9)
		assert.InDelta(t, c.want.Left, spec.Margin.Left, 1e-9)
	}

	spec, err := ResolvePage("Letter", true, nil)
	require.NoError(t, err)
	assert.InDelta(t, 279.4, spec.Width, 1e-9)

	var cfgErr *ConfigurationError
	_, err = ResolvePage("B9", false, nil)
	assert.ErrorAs(t, err, &cfgErr)
	_, err = ResolvePage("A4", false, []string{"abc"})
	assert.ErrorAs(t, err, &cfgErr)
	_, err = ResolvePage("A5", false, []string{"80mm"})
	assert.ErrorAs(t, err, &cfgErr)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Jane_Roe_twoColumn.pdf", Filename("Jane Roe", TwoColumn, "", "pdf"))
	assert.Equal(t, "resume_compact.pdf", Filename("  ", Compact, "", ".pdf"))
	assert.Equal(t, "cv-centered.json", Filename("Jane", Centered, "cv-${template}.${ext}", "json"))
}
