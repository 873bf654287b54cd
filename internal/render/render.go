package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/san-kum/qcviz/internal/circuit"
	"github.com/san-kum/qcviz/internal/config"
	"github.com/san-kum/qcviz/internal/metrics"
	"github.com/san-kum/qcviz/internal/storage"
	"github.com/san-kum/qcviz/internal/timeline"
)

var ErrUnknownView = errors.New("render: unknown view")

// FinalStep selects the last step in Job.Step.
const FinalStep = -1

type Job struct {
	Input string
	// Result, when set, is used instead of loading Input.
	Result *circuit.Result
	View   string
	// Step picks the step for the static view.
	Step int
	Save bool
}

// Output is what a view wrote.
type Output struct {
	Files    []string
	Frames   int
	Duration float64
}

type Report struct {
	Circuit  string
	View     string
	Chain    string
	Steps    int
	Output
	FrameRate int
	Metrics   map[string]float64
	RunID     string
}

// View renders one kind of artifact for a validated result into dir.
type View func(ctx context.Context, r *Renderer, res *circuit.Result, job Job, dir string) (Output, error)

type Renderer struct {
	cfg   *config.Config
	log   *zap.Logger
	store *storage.Store
	views map[string]View
}

// New returns a renderer with the built-in views registered.
func New(cfg *config.Config, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{cfg: cfg, log: log, views: make(map[string]View)}
	r.Register("bloch", renderBloch)
	r.Register("histogram", renderHistogram)
	r.Register("entanglement", renderEntanglement)
	r.Register("static", renderStatic)
	r.Register("steps", renderSteps)
	return r
}

// WithStore enables persisting runs for jobs with Save set.
func (r *Renderer) WithStore(s *storage.Store) *Renderer {
	r.store = s
	return r
}

func (r *Renderer) Config() *config.Config { return r.cfg }

func (r *Renderer) Register(name string, v View) { r.views[name] = v }

func (r *Renderer) Views() []string {
	names := make([]string, 0, len(r.views))
	for name := range r.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads and validates the job's circuit result.
func (r *Renderer) Load(job Job) (*circuit.Result, error) {
	if job.Result != nil {
		if err := job.Result.Validate(); err != nil {
			return nil, err
		}
		return job.Result, nil
	}
	return circuit.Load(job.Input)
}

// Timeline assembles the combined timeline used for playback, metrics
// and storage.
func (r *Renderer) Timeline(res *circuit.Result) ([]timeline.Frame[timeline.Snapshot], error) {
	tl, err := r.cfg.Timeline()
	if err != nil {
		return nil, err
	}
	return timeline.Assemble(res.Timeline(), tl, r.cfg.Projector(res.QubitCount))
}

func (r *Renderer) Render(ctx context.Context, job Job) (*Report, error) {
	view, ok := r.views[job.View]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownView, job.View, strings.Join(r.Views(), ", "))
	}
	res, err := r.Load(job)
	if err != nil {
		return nil, err
	}
	steps := res.Timeline()
	r.log.Debug("loaded circuit",
		zap.String("circuit", res.Name()),
		zap.Int("qubits", res.QubitCount),
		zap.Int("steps", len(steps)))

	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return nil, err
	}
	out, err := view(ctx, r, res, job, r.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", job.View, err)
	}

	rep := &Report{
		Circuit:   res.Name(),
		View:      job.View,
		Chain:     circuit.Chain(steps),
		Steps:     len(steps),
		Output:    out,
		FrameRate: r.cfg.FrameRate,
	}

	frames, err := r.Timeline(res)
	if err != nil {
		return nil, err
	}
	rep.Metrics = metrics.Collect(frames, r.cfg.FrameRate, metrics.Standard()...)

	if job.Save && r.store != nil {
		rep.RunID, err = r.store.Save(storage.RunMetadata{
			Circuit:    res.Name(),
			Source:     job.Input,
			QubitCount: res.QubitCount,
			Steps:      len(steps),
			FrameRate:  r.cfg.FrameRate,
			Easing:     r.cfg.Easing,
			Duration:   float64(len(frames)) / float64(r.cfg.FrameRate),
			Chain:      rep.Chain,
			Labels:     res.Labels(),
			Metrics:    rep.Metrics,
		}, frames)
		if err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		r.log.Debug("saved run", zap.String("run", rep.RunID))
	}

	for _, f := range out.Files {
		r.log.Info("rendered",
			zap.String("circuit", rep.Circuit),
			zap.String("view", rep.View),
			zap.Int("frames", out.Frames),
			zap.Float64("duration", out.Duration),
			zap.String("output", f))
	}
	return rep, nil
}

// String formats the report the way the progress summary is printed.
func (rep *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Circuit: %s\n", rep.Circuit)
	fmt.Fprintf(&b, "Steps:   %s\n", rep.Chain)
	if rep.Frames > 0 {
		fmt.Fprintf(&b, "Frames:  %d (%.1fs @ %d fps)\n", rep.Frames, rep.Duration, rep.FrameRate)
	}
	for _, f := range rep.Files {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	if rep.RunID != "" {
		fmt.Fprintf(&b, "Saved run %s\n", rep.RunID)
	}
	return b.String()
}
