package viz

import (
	"bytes"
	"image/gif"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/dist"
	"github.com/san-kum/qcviz/internal/timeline"
)

func TestCanvasPen(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetPen(PenAlert)
	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Fatal("expected pixel set")
	}
	if c.Pens[1][1] != PenAlert {
		t.Errorf("expected alert pen, got %d", c.Pens[1][1])
	}
	c.SetPen(PenGrid)
	c.Set(2, 4)
	if c.Pens[1][1] != PenAlert {
		t.Error("lower pen should not override a higher one")
	}
	c.Set(-1, 0)
	c.Set(100, 100)
	c.Clear()
	if c.IsSet(3, 5) || c.Pens[1][1] != PenGrid {
		t.Error("expected clear canvas")
	}
}

func TestCameraProjectsPoles(t *testing.T) {
	cam := NewCamera()
	vp := Viewport{W: 100, H: 100}
	_, ny, _ := cam.Project(bloch.North, vp)
	_, sy, _ := cam.Project(bloch.South, vp)
	if ny >= sy {
		t.Errorf("north pole should be above south pole: %d vs %d", ny, sy)
	}
	ox, oy, _ := cam.Project(bloch.Vec3{}, vp)
	if ox != 50 || oy != 50 {
		t.Errorf("origin should project to the centre, got (%d, %d)", ox, oy)
	}
}

func TestBlochSceneTrail(t *testing.T) {
	c := NewCanvas(30, 15)
	s := NewBlochScene()
	s.TrailLen = 2
	for _, v := range bloch.Interpolate(bloch.North, bloch.PlusX, 4) {
		labels := s.Draw(c, timeline.Frame[bloch.Vec3]{Payload: v})
		if len(labels) != 2 {
			t.Fatalf("expected pole labels, got %v", labels)
		}
	}
	if len(s.trail) != 2 {
		t.Errorf("expected trail capped at 2, got %d", len(s.trail))
	}
	s.Reset()
	if len(s.trail) != 0 {
		t.Error("expected empty trail after reset")
	}
}

func TestPairSceneHighlight(t *testing.T) {
	c := NewCanvas(40, 12)
	s := NewPairScene(0.3, 0.1)

	calm := s.Draw(c, timeline.Frame[timeline.PairState]{Payload: timeline.PairState{Q0: bloch.North, Q1: bloch.North}})
	if hasPen(c, PenAlert) || len(calm) != 2 {
		t.Error("unentangled pair should not be highlighted or labelled")
	}

	hot := s.Draw(c, timeline.Frame[timeline.PairState]{Payload: timeline.PairState{Q0: bloch.PlusX, Q1: bloch.PlusX, Entanglement: 1}})
	if !hasPen(c, PenAlert) {
		t.Error("expected the vectors in the alert pen")
	}
	if len(hot) != 3 || !strings.Contains(hot[2].Text, "1.000") {
		t.Errorf("expected entanglement label, got %v", hot)
	}
}

func TestHistogramScene(t *testing.T) {
	c := NewCanvas(20, 10)
	s := &HistogramScene{Labels: []string{"0", "1"}}
	labels := s.Draw(c, timeline.Frame[dist.Distribution]{Payload: dist.Distribution{"0": 1}})
	if len(labels) != 2 || labels[1].Text != "|1⟩" {
		t.Errorf("unexpected labels %v", labels)
	}
	w, _ := c.Size()
	if !c.IsSet(w/4, 10) {
		t.Error("expected a full bar over |0⟩")
	}
	if c.IsSet(3*w/4, 10) {
		t.Error("expected no bar over |1⟩")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(ThemeQuantum, 20, []string{"green", "blue"})
	var buf bytes.Buffer
	if err := r.Encode(&buf); err != ErrNoFrames {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}

	c := NewCanvas(10, 5)
	c.SetPen(PenVector)
	c.DrawLine(0, 0, 19, 19)
	r.Capture(c, PaletteColor("green"), "Bell State", "After H(Q0)", []Label{{Col: 1, Row: 1, Text: "|0⟩"}})
	r.Capture(c, PaletteColor("blue"), "Bell State", "After CNOT(Q0→Q1)", nil)

	if err := r.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 2 || g.Delay[0] != 5 {
		t.Errorf("expected 2 frames at delay 5, got %d at %v", len(g.Image), g.Delay)
	}
	if b := g.Image[0].Bounds(); b.Dx() != 80 || b.Dy() != 5*16+40 {
		t.Errorf("unexpected frame size %v", b)
	}
}

func TestPaletteColor(t *testing.T) {
	if PaletteColor("Green") != "#008000" {
		t.Errorf("expected named colour, got %s", PaletteColor("Green"))
	}
	if PaletteColor("#123456") != "#123456" {
		t.Error("expected hex passthrough")
	}
	if c := RGBA(PaletteColor("orange")); c.R != 0xff || c.G != 0xa5 || c.B != 0 {
		t.Errorf("unexpected rgba %v", c)
	}
}

func TestPlayerKeys(t *testing.T) {
	steps := []timeline.Frame[timeline.Snapshot]{
		{Index: 0, Payload: timeline.Snapshot{Vector: bloch.North, Distribution: dist.Distribution{"0": 1}}, Color: "green"},
		{Index: 1, Payload: timeline.Snapshot{Vector: bloch.PlusX, Distribution: dist.Distribution{"0": 0.5, "1": 0.5}}, Color: "green"},
		{Index: 2, Payload: timeline.Snapshot{Vector: bloch.PlusX, Distribution: dist.Distribution{"0": 0.5, "1": 0.5}}, Color: "green", Hold: true},
	}
	var m tea.Model = NewPlayer(steps, PlayerOptions{Name: "test", FPS: 10, Labels: []string{"0", "1"}})

	m, _ = m.Update(TickMsg{})
	if m.(Player).Index() != 1 {
		t.Errorf("expected tick to advance, got %d", m.(Player).Index())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	if p := m.(Player); p.Index() != 0 || p.Playing() {
		t.Errorf("expected paused at 0, got %d playing=%v", p.Index(), p.Playing())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	if m.(Player).Index() != 2 {
		t.Errorf("expected wrap to last frame, got %d", m.(Player).Index())
	}
	if !strings.Contains(m.View(), "TEST") {
		t.Error("expected title in view")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func hasPen(c *Canvas, p Pen) bool {
	for i := range c.Pens {
		for j := range c.Pens[i] {
			if c.Pens[i][j] == p && c.Grid[i][j] != blank {
				return true
			}
		}
	}
	return false
}
