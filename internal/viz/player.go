package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/timeline"
)

type TickMsg time.Time

type PlayerOptions struct {
	Name      string
	FPS       int
	Labels    []string
	Palette   []string
	Theme     Theme
	Highlight float64
	Width     int
	Height    int
	// GIFPath is where the g key saves a recording.
	GIFPath string
}

// Player steps through a rendered timeline in the terminal.
type Player struct {
	opts      PlayerOptions
	frames    []timeline.Frame[timeline.Snapshot]
	idx       int
	playing   bool
	canvas    *Canvas
	scene     *BlochScene
	theme     Theme
	recorder  *Recorder
	status    string
	showHelp  bool
	quitting  bool
	entangled []float64
}

func NewPlayer(frames []timeline.Frame[timeline.Snapshot], opts PlayerOptions) Player {
	if opts.FPS < 1 {
		opts.FPS = timeline.DefaultFrameRate
	}
	if opts.Width <= 0 {
		opts.Width = 60
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "recording.gif"
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeQuantum
	}
	ent := make([]float64, len(frames))
	for i, f := range frames {
		if f.Payload.Pair != nil {
			ent[i] = f.Payload.Pair.Entanglement
		}
	}
	scene := NewBlochScene()
	scene.TrailLen = 0
	return Player{
		opts:      opts,
		frames:    frames,
		playing:   true,
		canvas:    NewCanvas(opts.Width, opts.Height),
		scene:     scene,
		theme:     opts.Theme,
		entangled: ent,
	}
}

func (m Player) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Player) Init() tea.Cmd { return m.tick() }

// Index returns the current frame index.
func (m Player) Index() int { return m.idx }

func (m Player) Playing() bool { return m.playing }

func (m Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.idx = 0
		case "[":
			m.playing = false
			m.seek(-1)
		case "]":
			m.playing = false
			m.seek(1)
		case "t":
			m.theme = m.theme.Next()
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		case "x":
			m.scene.Camera.RotateX(0.1)
		case "X":
			m.scene.Camera.RotateX(-0.1)
		case "y":
			m.scene.Camera.RotateY(0.1)
		case "Y":
			m.scene.Camera.RotateY(-0.1)
		case "+", "=":
			m.scene.Camera.ZoomIn()
		case "-", "_":
			m.scene.Camera.ZoomOut()
		}
	case TickMsg:
		if m.playing && len(m.frames) > 0 {
			m.seek(1)
		}
		if m.recorder != nil && len(m.frames) > 0 {
			f := m.frames[m.idx]
			labels := m.draw(f)
			m.recorder.Capture(m.canvas, PaletteColor(f.Color), m.opts.Name, f.Description, labels)
		}
		return m, m.tick()
	}
	return m, nil
}

// seek moves by d frames, wrapping around the timeline.
func (m *Player) seek(d int) {
	n := len(m.frames)
	if n == 0 {
		return
	}
	m.idx = ((m.idx+d)%n + n) % n
}

func (m *Player) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder(m.theme, m.opts.FPS, m.opts.Palette)
		m.status = "recording"
		return
	}
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.status = "record failed: " + err.Error()
	} else {
		m.status = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), m.opts.GIFPath)
	}
	m.recorder = nil
}

func (m Player) draw(f timeline.Frame[timeline.Snapshot]) []Label {
	return m.scene.Draw(m.canvas, timeline.Frame[bloch.Vec3]{
		Index:       f.Index,
		Step:        f.Step,
		Payload:     f.Payload.Vector,
		Description: f.Description,
		Color:       f.Color,
		Hold:        f.Hold,
	})
}

func (m Player) View() string {
	if m.quitting {
		return ""
	}
	if len(m.frames) == 0 {
		return "no frames\n"
	}
	f := m.frames[m.idx]
	m.draw(f)
	vector := PaletteColor(f.Color)
	canvasView := canvasStyle.Render(m.canvas.Styled(m.theme.Pens(vector)))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.opts.Name)) + "\n")
	state := "PLAYING"
	if !m.playing {
		state = "PAUSED"
	}
	if m.recorder != nil {
		state += " ● REC"
	}
	s.WriteString(lipgloss.NewStyle().Foreground(vector).Bold(true).Render(f.Description) + "\n")
	s.WriteString(state + "\n\n")

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", f.Index+1, len(m.frames))) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", float64(f.Index)/float64(m.opts.FPS))) + "\n")
	s.WriteString(labelStyle.Render("P(|1⟩)") + valueStyle.Render(fmt.Sprintf("%.3f", bloch.Probability(f.Payload.Vector))) + "\n")

	if p := f.Payload.Pair; p != nil {
		s.WriteString(labelStyle.Render("Entanglement") + ProgressBar(p.Entanglement, 16, 0.1, m.opts.Highlight) + valueStyle.Render(fmt.Sprintf(" %.2f", p.Entanglement)) + "\n")
		if hist := m.entangled[:m.idx+1]; len(hist) > 1 {
			chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.LowerBound(0), asciigraph.UpperBound(1), asciigraph.Caption("Entanglement"))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	s.WriteString("\n" + Bars(f.Payload.Distribution, m.opts.Labels, 16, vector))
	if m.status != "" {
		s.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Restart Q:Quit\n[ ]:Step G:Record T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from frame 0     ║
║  [ / ]    - Step back / forward      ║
║  x/X y/Y  - Rotate the sphere        ║
║  + / -    - Zoom                     ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Play runs the player full screen until the user quits.
func Play(frames []timeline.Frame[timeline.Snapshot], opts PlayerOptions) error {
	_, err := tea.NewProgram(NewPlayer(frames, opts), tea.WithAltScreen()).Run()
	return err
}
