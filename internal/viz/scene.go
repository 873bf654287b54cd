package viz

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/dist"
	"github.com/san-kum/qcviz/internal/timeline"
)

// Label is text placed at a canvas cell. Renderers that cannot draw text
// onto the canvas print it alongside.
type Label struct {
	Col, Row int
	Text     string
	Color    lipgloss.Color
}

// BlochScene draws one qubit's vector with a fading trail of the vectors
// drawn before it.
type BlochScene struct {
	Camera *Camera
	// TrailLen caps the number of earlier vectors kept. Zero disables it.
	TrailLen int
	trail    []bloch.Vec3
}

func NewBlochScene() *BlochScene {
	return &BlochScene{Camera: NewCamera(), TrailLen: 40}
}

func (s *BlochScene) Reset() { s.trail = s.trail[:0] }

func (s *BlochScene) Draw(c *Canvas, f timeline.Frame[bloch.Vec3]) []Label {
	c.Clear()
	vp := Split(c, 1)[0]
	DrawBloch(c, s.Camera, vp, f.Payload, s.trail, PenVector)
	if s.TrailLen > 0 {
		s.trail = append(s.trail, f.Payload)
		if len(s.trail) > s.TrailLen {
			s.trail = s.trail[1:]
		}
	}
	return poleLabels(c, s.Camera, vp)
}

// HistogramScene draws the joint distribution as vertical bars.
type HistogramScene struct {
	Labels []string
}

func (s *HistogramScene) Draw(c *Canvas, f timeline.Frame[dist.Distribution]) []Label {
	c.Clear()
	labels := s.Labels
	if labels == nil {
		labels = f.Payload.Keys()
	}
	if len(labels) == 0 {
		return nil
	}
	w, h := c.Size()
	// Last text row holds the basis labels.
	plotH := h - 8
	slot := w / len(labels)
	barW := max(1, slot*2/3)

	c.SetPen(PenAxis)
	c.DrawLine(0, plotH, w-1, plotH)

	out := make([]Label, 0, len(labels))
	for i, l := range labels {
		p := math.Max(0, math.Min(1, f.Payload.Get(l)))
		top := plotH - int(math.Round(p*float64(plotH-4)))
		x0 := i*slot + (slot-barW)/2
		c.SetPen(PenVector)
		for x := x0; x < x0+barW; x++ {
			c.DrawLine(x, plotH-1, x, top)
		}
		out = append(out, Label{Col: (i*slot + slot/2) / 2, Row: c.Height - 1, Text: "|" + l + "⟩"})
	}
	return out
}

// PairScene draws two qubits side by side and marks their correlation.
type PairScene struct {
	Camera *Camera
	// Highlight is the score above which both vectors are drawn in the
	// alert pen. LabelAt is the score above which the value is printed.
	Highlight, LabelAt float64
}

func NewPairScene(highlight, labelAt float64) *PairScene {
	return &PairScene{Camera: NewCamera(), Highlight: highlight, LabelAt: labelAt}
}

func (s *PairScene) Draw(c *Canvas, f timeline.Frame[timeline.PairState]) []Label {
	c.Clear()
	vps := Split(c, 2)
	pen := PenVector
	if f.Payload.Entanglement > s.Highlight {
		pen = PenAlert
	}
	DrawBloch(c, s.Camera, vps[0], f.Payload.Q0, nil, pen)
	DrawBloch(c, s.Camera, vps[1], f.Payload.Q1, nil, pen)

	labels := []Label{
		{Col: vps[0].X/2 + 1, Row: 0, Text: "Qubit 0"},
		{Col: vps[1].X/2 + 1, Row: 0, Text: "Qubit 1"},
	}
	if f.Payload.Entanglement > s.LabelAt {
		labels = append(labels, Label{
			Col:  c.Width/2 - 8,
			Row:  c.Height - 1,
			Text: fmt.Sprintf("Entanglement: %.3f", f.Payload.Entanglement),
		})
	}
	return labels
}

func poleLabels(c *Canvas, cam *Camera, vp Viewport) []Label {
	nx, ny, _ := cam.Project(bloch.North, vp)
	sx, sy, _ := cam.Project(bloch.South, vp)
	return []Label{
		{Col: nx/2 + 1, Row: max(0, ny/4-1), Text: "|0⟩"},
		{Col: sx/2 + 1, Row: min(c.Height-1, sy/4+1), Text: "|1⟩"},
	}
}
