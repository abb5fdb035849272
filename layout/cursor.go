package layout

// Cursor 是某一栏的绘制位置，只在一次生成调用内存在。
type Cursor struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Page int     `json:"page"`
}

// Advance 将 Y 下移 dy，不做边界检查；边界由 paginator 负责。
func (c *Cursor) Advance(dy float64) {
	c.Y += dy
}

// ResetToTop 用于分页：翻到下一页并回到该栏的起始位置。
func (c *Cursor) ResetToTop(x, top float64) {
	c.Page++
	c.X = x
	c.Y = top
}
