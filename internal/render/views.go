package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/circuit"
	"github.com/san-kum/qcviz/internal/export"
	"github.com/san-kum/qcviz/internal/timeline"
	"github.com/san-kum/qcviz/internal/viz"
)

// animate assembles steps with proj, draws every frame and writes a GIF.
// An empty timeline writes nothing.
func animate[P any](ctx context.Context, r *Renderer, steps []circuit.Step, proj timeline.Projector[P],
	draw func(*viz.Canvas, timeline.Frame[P]) []viz.Label, title, path string) (Output, error) {
	tl, err := r.cfg.Timeline()
	if err != nil {
		return Output{}, err
	}
	frames, err := timeline.Assemble(steps, tl, proj)
	if err != nil {
		return Output{}, err
	}
	if len(frames) == 0 {
		return Output{}, nil
	}

	canvas := viz.NewCanvas(r.cfg.Render.Width, r.cfg.Render.Height)
	rec := viz.NewRecorder(viz.GetTheme(r.cfg.Render.Theme), tl.FrameRate, tl.Palette)
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return Output{}, err
		}
		labels := draw(canvas, f)
		rec.Capture(canvas, viz.PaletteColor(f.Color), title, f.Description, labels)
	}
	if err := rec.Save(path); err != nil {
		return Output{}, err
	}
	return Output{Files: []string{path}, Frames: len(frames), Duration: tl.Duration(len(frames))}, nil
}

func renderBloch(ctx context.Context, r *Renderer, res *circuit.Result, _ Job, dir string) (Output, error) {
	sphere := timeline.NewSphere(r.cfg.Qubit)
	sphere.Interp = r.cfg.Interpolator()
	scene := viz.NewBlochScene()
	title := fmt.Sprintf("%s | Qubit %d", res.Name(), r.cfg.Qubit)
	return animate(ctx, r, res.Timeline(), sphere, scene.Draw, title, filepath.Join(dir, "bloch_evolution.gif"))
}

func renderHistogram(ctx context.Context, r *Renderer, res *circuit.Result, _ Job, dir string) (Output, error) {
	labels := res.Labels()
	proj := timeline.Histogram{Labels: labels}
	scene := &viz.HistogramScene{Labels: labels}
	return animate(ctx, r, res.Timeline(), proj, scene.Draw, res.Name(), filepath.Join(dir, "histogram_evolution.gif"))
}

func renderEntanglement(ctx context.Context, r *Renderer, res *circuit.Result, _ Job, dir string) (Output, error) {
	if err := timeline.ForQubits(res.QubitCount); err != nil {
		return Output{}, err
	}
	pair := r.cfg.Projector(res.QubitCount).Pair
	scene := viz.NewPairScene(r.cfg.Entanglement.Highlight, r.cfg.Entanglement.Label)
	title := res.Name() + " | Entanglement"
	return animate(ctx, r, res.Timeline(), pair, scene.Draw, title, filepath.Join(dir, "entanglement_evolution.gif"))
}

// renderStatic writes the chosen step as a histogram PNG and SVG and a
// single-vector sphere SVG.
func renderStatic(_ context.Context, r *Renderer, res *circuit.Result, job Job, dir string) (Output, error) {
	steps := res.Timeline()
	idx := job.Step
	if idx == FinalStep {
		idx = len(steps) - 1
	}
	if idx < 0 || idx >= len(steps) {
		return Output{}, fmt.Errorf("step %d out of range [0, %d)", job.Step, len(steps))
	}
	step := steps[idx]
	labels := res.Labels()
	fill := string(viz.PaletteColor(r.cfg.Palette[idx%len(r.cfg.Palette)]))

	d, err := timeline.Static(step, timeline.Histogram{Labels: labels})
	if err != nil {
		return Output{}, err
	}
	v, err := timeline.Static(step, timeline.NewSphere(r.cfg.Qubit))
	if err != nil {
		return Output{}, err
	}

	var png bytes.Buffer
	title := fmt.Sprintf("%s | %s", res.Name(), step.Description)
	if err := export.HistogramPNG(&png, d, labels, title, fill); err != nil {
		return Output{}, err
	}
	files := map[string][]byte{
		"histogram.png":    png.Bytes(),
		"histogram.svg":    []byte(export.HistogramSVG(d, labels, 480, 320, fill)),
		"bloch_sphere.svg": []byte(export.TrajectorySVG([]bloch.Vec3{v}, []string{step.Description}, 320, fill)),
	}
	return writeFiles(dir, files, "histogram.png", "histogram.svg", "bloch_sphere.svg")
}

// renderSteps writes every step vector on one sphere and, for two or more
// qubits, the per-step entanglement curve.
func renderSteps(_ context.Context, r *Renderer, res *circuit.Result, _ Job, dir string) (Output, error) {
	steps := res.Timeline()
	sphere := timeline.NewSphere(r.cfg.Qubit)
	vs := make([]bloch.Vec3, len(steps))
	descs := make([]string, len(steps))
	for i, s := range steps {
		v, err := timeline.Static(s, sphere)
		if err != nil {
			return Output{}, fmt.Errorf("step %d: %w", i, err)
		}
		vs[i], descs[i] = v, s.Description
	}

	stroke := string(viz.PaletteColor(r.cfg.Palette[0]))
	files := map[string][]byte{
		"bloch_steps.svg": []byte(export.TrajectorySVG(vs, descs, 480, stroke)),
	}
	order := []string{"bloch_steps.svg"}

	if res.QubitCount >= 2 && len(steps) >= 2 {
		pair := r.cfg.Projector(res.QubitCount).Pair
		times := make([]float64, len(steps))
		scores := make([]float64, len(steps))
		for i, s := range steps {
			ps, err := timeline.Static(s, pair)
			if err != nil {
				return Output{}, fmt.Errorf("step %d: %w", i, err)
			}
			times[i], scores[i] = float64(i), ps.Entanglement
		}
		var png bytes.Buffer
		if err := export.EntanglementPNG(&png, times, scores, res.Name()+" | Entanglement by step"); err != nil {
			return Output{}, err
		}
		files["entanglement_steps.png"] = png.Bytes()
		order = append(order, "entanglement_steps.png")
	}
	return writeFiles(dir, files, order...)
}

func writeFiles(dir string, files map[string][]byte, order ...string) (Output, error) {
	out := Output{Files: make([]string, 0, len(order))}
	for _, name := range order {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			return Output{}, err
		}
		out.Files = append(out.Files, path)
	}
	return out, nil
}
