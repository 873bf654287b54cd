package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/dist"
	"github.com/san-kum/qcviz/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.SetPen(viz.PenVector)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 4, viz.ThemeQuantum.Pens("#00ff00"))
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `fill="#00ff00"`)
	assert.Contains(t, svg, `width="16" height="16"`)
	assert.Empty(t, CanvasToSVG(nil, 1, nil))
}

func TestTrajectorySVG(t *testing.T) {
	vs := []bloch.Vec3{bloch.North, bloch.PlusX, bloch.South}
	svg := TrajectorySVG(vs, []string{"Init", "After H<0>", "X"}, 200, "#ff0000")

	assert.Contains(t, svg, `d="M100.0,24.0 L176.0,100.0 L100.0,176.0"`)
	assert.Contains(t, svg, "After H&lt;0&gt;")
	assert.Equal(t, 1+3, strings.Count(svg, "<circle"))
	assert.Empty(t, TrajectorySVG(nil, nil, 200, "#fff"))
}

func TestHistogramSVG(t *testing.T) {
	d := dist.Distribution{"00": 0.5, "11": 0.5}
	svg := HistogramSVG(d, dist.BasisLabels(2), 400, 300, "#0000ff")

	assert.Equal(t, 4, strings.Count(svg, "<rect x="))
	assert.Contains(t, svg, "|01⟩")
	assert.Contains(t, svg, "0.500")
}

func TestHistogramPNG(t *testing.T) {
	var buf bytes.Buffer
	err := HistogramPNG(&buf, dist.Distribution{"0": 1}, []string{"0", "1"}, "Final State", "#008000")
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestHistogramPNGAllZero(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HistogramPNG(&buf, dist.Distribution{}, []string{"0", "1"}, "", "#008000"))
	assert.NotZero(t, buf.Len())
}

func TestEntanglementPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EntanglementPNG(&buf, []float64{0, 0.5, 1}, []float64{0, 0.5, 1}, "Bell"))
	_, err := png.Decode(&buf)
	require.NoError(t, err)

	assert.ErrorIs(t, EntanglementPNG(&buf, []float64{0}, []float64{1}, ""), ErrTooFewPoints)
	assert.ErrorIs(t, EntanglementPNG(&buf, []float64{0, 1}, []float64{1}, ""), ErrTooFewPoints)
}
