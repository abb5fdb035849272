package layout

import (
	"fmt"
)

// Variant 是封闭的模板枚举；零值无效。
type Variant int

const (
	SingleColumnLeft Variant = iota + 1
	TwoColumn
	Centered
	Compact
	SidebarRight
	StackedSections
)

var variantKeys = map[Variant]string{
	SingleColumnLeft: "singleColumnLeft",
	TwoColumn:        "twoColumn",
	Centered:         "centered",
	Compact:          "compact",
	SidebarRight:     "sidebarRight",
	StackedSections:  "stackedSections",
}

// Variants 按固定顺序返回全部模板。
func Variants() []Variant {
	return []Variant{SingleColumnLeft, TwoColumn, Centered, Compact, SidebarRight, StackedSections}
}

// ParseVariant 将模板 key 解析为 Variant，未知 key 返回 ConfigurationError。
func ParseVariant(key string) (Variant, error) {
	for v, k := range variantKeys {
		if k == key {
			return v, nil
		}
	}
	return 0, &ConfigurationError{Message: fmt.Sprintf("unknown template %q", key)}
}

func (v Variant) String() string {
	if k, ok := variantKeys[v]; ok {
		return k
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// MarshalText 让调试 JSON 输出模板 key。
func (v Variant) MarshalText() ([]byte, error) {
	if _, ok := variantKeys[v]; !ok {
		return nil, &ConfigurationError{Message: fmt.Sprintf("unknown template %d", int(v))}
	}
	return []byte(v.String()), nil
}

// UnmarshalText 是 MarshalText 的逆操作。
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// SectionKind 标识简历中的一个语义分区。
type SectionKind string

const (
	SectionObjective      SectionKind = "objective"
	SectionExperience     SectionKind = "experience"
	SectionEducation      SectionKind = "education"
	SectionSkills         SectionKind = "skills"
	SectionProjects       SectionKind = "projects"
	SectionCertifications SectionKind = "certifications"
	SectionAchievements   SectionKind = "achievements"
)

// SectionOrder 是固定的分区顺序，所有模板在每一栏内都保持该相对顺序。
var SectionOrder = []SectionKind{
	SectionObjective,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionAchievements,
}

// Title 返回分区标题。
func (k SectionKind) Title() string {
	switch k {
	case SectionObjective:
		return "Career Objective"
	case SectionExperience:
		return "Experience"
	case SectionEducation:
		return "Education"
	case SectionSkills:
		return "Skills"
	case SectionProjects:
		return "Projects"
	case SectionCertifications:
		return "Certifications"
	case SectionAchievements:
		return "Achievements"
	default:
		return string(k)
	}
}

// ColumnRole 区分窄栏与主栏。
type ColumnRole string

const (
	ColumnMain   ColumnRole = "main"
	ColumnNarrow ColumnRole = "narrow"
)

// Column 是一栏的几何与分区分配。
type Column struct {
	Role     ColumnRole    `json:"role"`
	X        float64       `json:"x"`
	Width    float64       `json:"width"`
	Sections []SectionKind `json:"sections"`
}

// ColumnPlan 由模板推导得到，不做持久化。
type ColumnPlan struct {
	Variant     Variant  `json:"variant"`
	Columns     []Column `json:"columns"`
	Align       Align    `json:"align"`
	HeadingBold bool     `json:"headingBold"`
	Density     float64  `json:"density"`
}

const (
	narrowColumnWidth = 55.0 // mm
	columnGutter      = 8.0  // mm
	compactDensity    = 0.6
)

var narrowSections = map[SectionKind]bool{
	SectionSkills:         true,
	SectionCertifications: true,
}

// PlanFor 按策略表为模板计算栏位。页面过窄导致任一栏宽度非正时返回 ConfigurationError，
// 保证后续排版不会以非正宽度调用 Typesetter。
func PlanFor(v Variant, page PageSpec) (ColumnPlan, error) {
	if _, ok := variantKeys[v]; !ok {
		return ColumnPlan{}, &ConfigurationError{Message: fmt.Sprintf("unknown template %d", int(v))}
	}
	plan := ColumnPlan{
		Variant:     v,
		Align:       AlignLeft,
		HeadingBold: true,
		Density:     1,
	}
	x0 := page.Margin.Left
	width := page.ContentWidth()
	single := Column{Role: ColumnMain, X: x0, Width: width, Sections: append([]SectionKind(nil), SectionOrder...)}

	switch v {
	case SingleColumnLeft:
		plan.Columns = []Column{single}
	case Centered:
		plan.Columns = []Column{single}
		plan.Align = AlignCenter
	case Compact:
		plan.Columns = []Column{single}
		plan.Density = compactDensity
	case StackedSections:
		plan.Columns = []Column{single}
		plan.HeadingBold = false
	case TwoColumn:
		narrow, main := splitSections()
		mainWidth := width - narrowColumnWidth - columnGutter
		plan.Columns = []Column{
			{Role: ColumnNarrow, X: x0, Width: narrowColumnWidth, Sections: narrow},
			{Role: ColumnMain, X: x0 + narrowColumnWidth + columnGutter, Width: mainWidth, Sections: main},
		}
	case SidebarRight:
		narrow, main := splitSections()
		mainWidth := width - narrowColumnWidth - columnGutter
		plan.Columns = []Column{
			{Role: ColumnMain, X: x0, Width: mainWidth, Sections: main},
			{Role: ColumnNarrow, X: x0 + mainWidth + columnGutter, Width: narrowColumnWidth, Sections: narrow},
		}
	}

	for i, col := range plan.Columns {
		if col.Width <= 0 {
			return ColumnPlan{}, &ConfigurationError{
				Message: fmt.Sprintf("template %s: column %d has non-positive width %.2fmm", v, i, col.Width),
			}
		}
	}
	return plan, nil
}

func splitSections() (narrow, main []SectionKind) {
	for _, kind := range SectionOrder {
		if narrowSections[kind] {
			narrow = append(narrow, kind)
		} else {
			main = append(main, kind)
		}
	}
	return narrow, main
}

// theme 汇总某个模板的字号与间距（mm）。
type theme struct {
	name       Font
	contact    Font
	heading    Font
	title      Font
	detail     Font
	body       Font
	lineGap    float64
	itemGap    float64
	sectionGap float64
	headerGap  float64
	rule       float64
}

func themeFor(plan ColumnPlan) theme {
	t := theme{
		name:       Font{Size: 22, Bold: true},
		contact:    Font{Size: 10},
		heading:    Font{Size: 13, Bold: plan.HeadingBold},
		title:      Font{Size: 10.5, Bold: true},
		detail:     Font{Size: 9.5},
		body:       Font{Size: 10},
		lineGap:    1.5,
		itemGap:    3,
		sectionGap: 5,
		headerGap:  6,
		rule:       0.3,
	}
	if plan.Density < 1 {
		t.heading.Size = 11
		t.lineGap *= plan.Density
		t.itemGap *= plan.Density
		t.sectionGap *= plan.Density
	}
	return t
}
