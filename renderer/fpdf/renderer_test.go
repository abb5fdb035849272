package fpdfrenderer

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/cvpress/layout"
	"github.com/ByLCY/cvpress/resume"
)

func TestLayoutLinesRespectsWidth(t *testing.T) {
	r := NewRenderer()
	lines, err := r.LayoutLines("Adaptive quiz service serving forty thousand students a day", 40, layout.Font{Size: 10})
	require.NoError(t, err)
	require.Greater(t, len(lines), 1)
	for _, ln := range lines {
		assert.LessOrEqual(t, ln.Width, 40+1e-6, "行 %q 超宽", ln.Content)
	}

	_, err = r.LayoutLines("x", 40, layout.Font{})
	assert.Error(t, err)
}

func TestBoldMeasuresWider(t *testing.T) {
	r := NewRenderer()
	regular, err := r.LayoutLines("Certifications", 1e6, layout.Font{Size: 12})
	require.NoError(t, err)
	bold, err := r.LayoutLines("Certifications", 1e6, layout.Font{Size: 12, Bold: true})
	require.NoError(t, err)
	assert.Greater(t, bold[0].Width, regular[0].Width)
}

func TestRenderMultiPageTwoColumn(t *testing.T) {
	doc := resume.Sample()
	for i := 0; i < 60; i++ {
		doc.Skills = append(doc.Skills, resume.Skill{Name: fmt.Sprintf("Skill %d", i), Level: "Working"})
		doc.Experience = append(doc.Experience, resume.Experience{Title: "Engineer", Company: "Acme", Duration: "2020"})
	}
	r := NewRenderer()
	res, err := layout.Build(doc, layout.TwoColumn, layout.BuildOptions{Typesetter: r})
	require.NoError(t, err)
	require.Greater(t, res.Pages, 1)

	out, err := r.Render(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Nil(t, r.doc)
}

func TestRenderRejectsOutOfOrderInstructions(t *testing.T) {
	r := NewRenderer()
	res := &layout.Result{
		Page:  layout.DefaultPage(),
		Pages: 1,
		Instructions: []layout.DrawInstruction{
			{Kind: layout.KindPage, Page: 0},
			{Kind: layout.KindText, Page: 1, Content: "orphan", Style: layout.Style{Font: layout.Font{Size: 10}}},
		},
	}
	_, err := r.Render(res)
	assert.Error(t, err)
}

func TestSurfaceOutsideRender(t *testing.T) {
	r := NewRenderer()
	assert.Error(t, r.AddPage())
	assert.Error(t, r.DrawLine(layout.DrawInstruction{Kind: layout.KindLine}))
}
