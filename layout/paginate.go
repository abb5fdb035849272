package layout

import (
	"go.uber.org/zap"
)

const epsilon = 1e-9

// pageCollector 在各栏之间共享：记录已分配页数并累积指令流。
type pageCollector struct {
	page         PageSpec
	pages        int
	instructions []DrawInstruction
	overflows    []Overflow
}

func newPageCollector(page PageSpec) *pageCollector {
	pc := &pageCollector{page: page}
	pc.ensurePage(0)
	return pc
}

// ensurePage 保证页码 idx 已分配；新页以 KindPage 指令出现在流中，
// 因此回放时页面总是先于其上的内容被创建。
func (pc *pageCollector) ensurePage(idx int) {
	for pc.pages <= idx {
		pc.instructions = append(pc.instructions, DrawInstruction{Kind: KindPage, Page: pc.pages})
		pc.pages++
	}
}

func (pc *pageCollector) emit(ins DrawInstruction) {
	pc.instructions = append(pc.instructions, ins)
}

// paginator 是单栏的分页控制器，独占该栏的 Cursor。
type paginator struct {
	collector *pageCollector
	cursor    *Cursor
	column    Column
	index     int
	// firstTop 为第 0 页上该栏的起始 Y（页眉之下）。
	firstTop float64
	log      *zap.Logger
}

func newPaginator(pc *pageCollector, col Column, index int, firstTop float64, log *zap.Logger) *paginator {
	return &paginator{
		collector: pc,
		cursor:    &Cursor{X: col.X, Y: firstTop},
		column:    col,
		index:     index,
		firstTop:  firstTop,
		log:       log,
	}
}

func (p *paginator) pageTop() float64 {
	if p.cursor.Page == 0 {
		return p.firstTop
	}
	return p.collector.page.Margin.Top
}

// ensureSpace 在绘制高度为 h 的内容块前调用。空间不足时换到本栏的下一页；
// 若光标已在页顶仍放不下，则原样越界绘制并记录 Overflow。
func (p *paginator) ensureSpace(h float64, section SectionKind) {
	bottom := p.collector.page.ContentBottom()
	if p.cursor.Y+h <= bottom+epsilon {
		return
	}
	if p.cursor.Y > p.pageTop()+epsilon {
		p.collector.ensurePage(p.cursor.Page + 1)
		p.cursor.ResetToTop(p.column.X, p.collector.page.Margin.Top)
		p.log.Debug("page break",
			zap.Int("column", p.index),
			zap.String("section", string(section)),
			zap.Int("page", p.cursor.Page),
		)
		if p.cursor.Y+h <= bottom+epsilon {
			return
		}
	}
	// 已在页顶仍放不下：不再翻页，越过下边距绘制。
	p.collector.overflows = append(p.collector.overflows, Overflow{
		Column:  p.index,
		Section: section,
		Page:    p.cursor.Page,
		Y:       p.cursor.Y,
		Height:  h,
	})
	p.log.Warn("content block taller than page, drawing past bottom margin",
		zap.Int("column", p.index),
		zap.String("section", string(section)),
		zap.Int("page", p.cursor.Page),
		zap.Float64("height", h),
	)
}
