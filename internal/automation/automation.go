package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/qcviz/internal/circuit"
	"github.com/san-kum/qcviz/internal/config"
	"github.com/san-kum/qcviz/internal/metrics"
	"github.com/san-kum/qcviz/internal/render"
	"github.com/san-kum/qcviz/internal/storage"
)

// Scenario is a scripted batch of render jobs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	OutputDir   string `yaml:"output_dir"`
	Jobs        []Job  `yaml:"jobs"`

	dir string
}

// Job overrides the base configuration for one render.
type Job struct {
	Input     string `yaml:"input"`
	View      string `yaml:"view"`
	Preset    string `yaml:"preset"`
	FrameRate int    `yaml:"frame_rate"`
	Easing    string `yaml:"easing"`
	Step      *int   `yaml:"step"`
	OutputDir string `yaml:"output_dir"`
	Save      bool   `yaml:"save"`
}

// LoadScenario loads a scenario from a YAML file. Relative paths inside it
// are resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Jobs) == 0 {
		return nil, fmt.Errorf("scenario %s: no jobs", path)
	}
	scenario.dir = filepath.Dir(path)
	return &scenario, nil
}

func (s *Scenario) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || s.dir == "" {
		return p
	}
	return filepath.Join(s.dir, p)
}

// jobConfig layers the job's preset and overrides over base.
func (s *Scenario) jobConfig(base *config.Config, job Job, i int) (*config.Config, error) {
	cfg := *base
	if job.Preset != "" {
		p, err := config.GetPreset(job.Preset)
		if err != nil {
			return nil, err
		}
		cfg = *p
		cfg.OutputDir = base.OutputDir
	}
	if job.FrameRate != 0 {
		cfg.FrameRate = job.FrameRate
	}
	if job.Easing != "" {
		cfg.Easing = job.Easing
	}
	switch {
	case job.OutputDir != "":
		cfg.OutputDir = s.resolve(job.OutputDir)
	case s.OutputDir != "":
		cfg.OutputDir = filepath.Join(s.resolve(s.OutputDir), fmt.Sprintf("%02d_%s", i+1, job.View))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RunScenario renders every job in order and stops at the first failure,
// returning the reports completed so far.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, store *storage.Store, log *zap.Logger) ([]*render.Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	reports := make([]*render.Report, 0, len(scenario.Jobs))

	for i, job := range scenario.Jobs {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		log.Info("running job",
			zap.Int("job", i+1),
			zap.Int("of", len(scenario.Jobs)),
			zap.String("view", job.View),
			zap.String("input", job.Input))

		cfg, err := scenario.jobConfig(base, job, i)
		if err != nil {
			return reports, fmt.Errorf("job %d: %w", i+1, err)
		}
		r := render.New(cfg, log)
		if store != nil {
			r.WithStore(store)
		}
		step := render.FinalStep
		if job.Step != nil {
			step = *job.Step
		}

		rep, err := r.Render(ctx, render.Job{
			Input: scenario.resolve(job.Input),
			View:  job.View,
			Step:  step,
			Save:  job.Save,
		})
		if err != nil {
			return reports, fmt.Errorf("job %d: %w", i+1, err)
		}
		reports = append(reports, rep)
	}

	return reports, nil
}

// PenaltySweep scores one circuit across a range of penalty weights.
type PenaltySweep struct {
	Input    string
	Min, Max float64
	NumSteps int
}

type SweepResult struct {
	Penalty float64
	Peak    float64
	Mean    float64
}

// RunSweep rebuilds the combined timeline once per penalty weight, each
// in its own goroutine, and reports the entanglement metrics of each in
// weight order.
func RunSweep(ctx context.Context, sweep *PenaltySweep, base *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	res, err := circuit.Load(sweep.Input)
	if err != nil {
		return nil, err
	}
	if res.QubitCount < 2 {
		return nil, fmt.Errorf("sweep %s: circuit has %d qubit", sweep.Input, res.QubitCount)
	}

	results := make([]SweepResult, sweep.NumSteps)
	errs := make([]error, sweep.NumSteps)
	delta := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	var wg sync.WaitGroup
	for i := 0; i < sweep.NumSteps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if errs[idx] = ctx.Err(); errs[idx] != nil {
				return
			}

			cfg := *base
			cfg.Entanglement.Penalty = sweep.Min + float64(idx)*delta
			frames, err := render.New(&cfg, nil).Timeline(res)
			if err != nil {
				errs[idx] = err
				return
			}
			peak, mean := metrics.NewPeakEntanglement(), metrics.NewMeanEntanglement()
			metrics.Collect(frames, cfg.FrameRate, peak, mean)
			results[idx] = SweepResult{
				Penalty: cfg.Entanglement.Penalty,
				Peak:    peak.Value(),
				Mean:    mean.Value(),
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
