package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/qcviz/internal/automation"
	"github.com/san-kum/qcviz/internal/circuit"
	"github.com/san-kum/qcviz/internal/config"
	"github.com/san-kum/qcviz/internal/logging"
	"github.com/san-kum/qcviz/internal/metrics"
	"github.com/san-kum/qcviz/internal/render"
	"github.com/san-kum/qcviz/internal/storage"
	"github.com/san-kum/qcviz/internal/viz"
	"github.com/san-kum/qcviz/internal/watch"
)

var (
	dataDir    string
	configFile string
	preset     string
	frameRate  int
	easing     string
	qubit      int
	outputDir  string
	theme      string
	verbose    bool
	// render options
	save bool
	step int
	// sweep range
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	log *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "qcviz",
		Short:         "animate quantum circuit simulation results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logging.New(verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".qcviz", "data directory for saved runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&frameRate, "fps", 0, "frames per transition")
	pf.StringVar(&easing, "easing", "", "easing curve (linear, smoothstep, sine)")
	pf.IntVar(&qubit, "qubit", 0, "qubit shown on the Bloch sphere")
	pf.StringVar(&outputDir, "out", "", "output directory")
	pf.StringVar(&theme, "theme", "", "color theme")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	renderCmd := &cobra.Command{
		Use:   "render [view] [file]",
		Short: "render an animation or figure (bloch, histogram, entanglement, static, steps)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], args[1])
		},
	}
	renderCmd.Flags().BoolVar(&save, "save", false, "save the timeline as a run")
	renderCmd.Flags().IntVar(&step, "step", render.FinalStep, "step for the static view (-1 for last)")

	staticCmd := &cobra.Command{
		Use:   "static [file]",
		Short: "render histogram and Bloch figures for one step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, "static", args[0])
		},
	}
	staticCmd.Flags().IntVar(&step, "step", render.FinalStep, "step to draw (-1 for last)")

	playCmd := &cobra.Command{
		Use:   "play [file]",
		Short: "play the timeline in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  playCircuit,
	}

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "summarize a circuit result",
		Args:  cobra.ExactArgs(1),
		RunE:  circuitInfo,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [view] [file]",
		Short: "re-render whenever the result file changes",
		Args:  cobra.ExactArgs(2),
		RunE:  watchCircuit,
	}
	watchCmd.Flags().IntVar(&step, "step", render.FinalStep, "step for the static view")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario]",
		Short: "run a yaml batch of render jobs",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [file]",
		Short: "score entanglement over a range of penalty weights",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "lowest penalty weight")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "highest penalty weight")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of weights")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "play a saved run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(renderCmd, staticCmd, playCmd, infoCmd, watchCmd, batchCmd, sweepCmd,
		runsCmd, exportCmd, plotCmd, replayCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers preset, config file and changed flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("easing") {
		cfg.Easing = easing
	}
	if flags.Changed("qubit") {
		cfg.Qubit = qubit
	}
	if flags.Changed("out") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRenderer(cfg *config.Config) *render.Renderer {
	return render.New(cfg, log).WithStore(storage.New(dataDir))
}

func runRender(cmd *cobra.Command, view, file string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := newRenderer(cfg).Render(ctx, render.Job{Input: file, View: view, Step: step, Save: save})
	if err != nil {
		return err
	}
	fmt.Print(rep)
	return nil
}

func playCircuit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := newRenderer(cfg)
	res, err := r.Load(render.Job{Input: args[0]})
	if err != nil {
		return err
	}
	frames, err := r.Timeline(res)
	if err != nil {
		return err
	}
	return viz.Play(frames, playerOptions(cfg, res.Name(), res.Labels()))
}

func playerOptions(cfg *config.Config, name string, labels []string) viz.PlayerOptions {
	return viz.PlayerOptions{
		Name:      name,
		FPS:       cfg.FrameRate,
		Labels:    labels,
		Palette:   cfg.Palette,
		Theme:     viz.GetTheme(cfg.Render.Theme),
		Highlight: cfg.Entanglement.Highlight,
		Width:     cfg.Render.Width,
		Height:    cfg.Render.Height,
		GIFPath:   filepath.Join(cfg.OutputDir, "recording.gif"),
	}
}

func circuitInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := newRenderer(cfg)
	res, err := r.Load(render.Job{Input: args[0]})
	if err != nil {
		return err
	}
	frames, err := r.Timeline(res)
	if err != nil {
		return err
	}

	steps := res.Timeline()
	fmt.Printf("circuit: %s\n", res.Name())
	fmt.Printf("qubits:  %d\n", res.QubitCount)
	fmt.Printf("steps:   %s\n", circuit.Chain(steps))
	fmt.Printf("frames:  %d (%.1fs @ %d fps)\n\n", len(frames), float64(len(frames))/float64(cfg.FrameRate), cfg.FrameRate)

	if final, ok := res.Final(); ok && final.SystemState != nil {
		fmt.Println("final state:")
		fmt.Println(viz.Bars(final.SystemState, res.Labels(), 30, viz.PaletteColor(cfg.Palette[0])))
	}

	values := metrics.Collect(frames, cfg.FrameRate, metrics.Standard()...)
	fmt.Println("metrics:")
	for _, name := range sortedKeys(values) {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
	return nil
}

func watchCircuit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	view, file := args[0], args[1]
	r := newRenderer(cfg)

	rebuild := func(ctx context.Context) error {
		rep, err := r.Render(ctx, render.Job{Input: file, View: view, Step: step})
		if err != nil {
			return err
		}
		fmt.Print(rep)
		return nil
	}

	w, err := watch.New(file, watch.DefaultDebounce, log)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rebuild(ctx); err != nil {
		log.Error("initial render failed", zap.Error(err))
	}
	log.Info("watching", zap.String("file", w.Path()))
	return w.Run(ctx, rebuild)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario: %s (%d jobs)\n", sc.Name, len(sc.Jobs))
	reports, err := automation.RunScenario(ctx, sc, cfg, storage.New(dataDir), log)
	for _, rep := range reports {
		fmt.Println()
		fmt.Print(rep)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(context.Background(), &automation.PenaltySweep{
		Input:    args[0],
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	}, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PENALTY\tPEAK\tMEAN")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\n", r.Penalty, r.Peak, r.Mean)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCIRCUIT\tTIME\tQUBITS\tFRAMES\tFPS\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.2fs\n",
			run.ID,
			run.Circuit,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.QubitCount,
			run.Frames,
			run.FrameRate,
			run.Duration,
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("circuit: %s\n", meta.Circuit)
	fmt.Printf("frames: %d\n\n", len(frames))

	z := make([]float64, len(frames))
	ent := make([]float64, len(frames))
	hasPair := false
	for i, f := range frames {
		z[i] = f.Payload.Vector.Z
		if f.Payload.Pair != nil {
			ent[i] = f.Payload.Pair.Entanglement
			hasPair = true
		}
	}

	fmt.Println(asciigraph.Plot(z,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("bloch z"),
	))
	fmt.Println()
	if hasPair {
		fmt.Println(asciigraph.Plot(ent,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("entanglement"),
		))
		fmt.Println()
	}

	last := frames[len(frames)-1]
	fmt.Println(viz.Bars(last.Payload.Distribution, meta.Labels, 30, viz.PaletteColor(last.Color)))
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	cfg.FrameRate = meta.FrameRate
	return viz.Play(frames, playerOptions(cfg, meta.Circuit, meta.Labels))
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
