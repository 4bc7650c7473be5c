package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/orbitgrid/internal/analysis"
	"github.com/san-kum/orbitgrid/internal/catalog"
	"github.com/san-kum/orbitgrid/internal/config"
	"github.com/san-kum/orbitgrid/internal/dataset"
	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/export"
	"github.com/san-kum/orbitgrid/internal/external"
	"github.com/san-kum/orbitgrid/internal/grid"
	"github.com/san-kum/orbitgrid/internal/maps"
	"github.com/san-kum/orbitgrid/internal/storage"
	"github.com/san-kum/orbitgrid/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	verbose    bool
	parallel   bool
	tolerant   bool
	// simulate
	kParam     float64
	x0, y0     float64
	symmetry   int
	points     int
	showGrid   bool
	showSeries bool
	svgFile    string
	// split / ingest / export
	fraction    float64
	independent bool
	save        bool
	label       int
	inputDir    string
	pattern     string
	outFile     string
	format      string
	// check / scan
	lyapIters int
	scanK     []float64
	scanX0    []float64
	scanY0    []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orbitgrid",
		Short:         "orbit datasets for order/chaos classification",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitgrid", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "shuffle seed (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging")
	rootCmd.PersistentFlags().BoolVar(&parallel, "parallel", false, "simulate entries concurrently")

	simulateCmd := &cobra.Command{
		Use:   "simulate [family]",
		Short: "simulate one orbit and plot it",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulate,
	}
	simulateCmd.Flags().Float64Var(&kParam, "k", 0.1, "perturbation constant")
	simulateCmd.Flags().Float64Var(&x0, "x0", 0.01, "initial x")
	simulateCmd.Flags().Float64Var(&y0, "y0", 0.0, "initial y")
	simulateCmd.Flags().IntVar(&symmetry, "q", 0, "symmetry order (web)")
	simulateCmd.Flags().IntVar(&points, "points", 0, "points to keep (default from config)")
	simulateCmd.Flags().BoolVar(&showGrid, "grid", false, "show the discretized grid")
	simulateCmd.Flags().BoolVar(&showSeries, "series", false, "plot x and y against iteration")
	simulateCmd.Flags().StringVar(&svgFile, "svg", "", "also write the orbit as svg")

	assembleCmd := &cobra.Command{
		Use:   "assemble [family...]",
		Short: "build datasets from the curated tables",
		RunE:  runAssemble,
	}
	assembleCmd.Flags().BoolVar(&save, "save", false, "store the datasets")

	splitCmd := &cobra.Command{
		Use:   "split [family]",
		Short: "assemble a family and split it into train and validation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSplit,
	}
	splitCmd.Flags().Float64Var(&fraction, "fraction", 0, "training fraction (default from config)")
	splitCmd.Flags().BoolVar(&independent, "independent", false, "size validation independently (subsets may overlap)")
	splitCmd.Flags().BoolVar(&save, "save", false, "store both subsets")

	ingestCmd := &cobra.Command{
		Use:   "ingest [file...]",
		Short: "ingest externally computed trajectories",
		RunE:  runIngest,
	}
	ingestCmd.Flags().IntVar(&label, "label", dynamo.LabelChaos, "label for the given files (0 chaos, 1 order)")
	ingestCmd.Flags().StringVar(&inputDir, "dir", "", "ingest every matching file in a directory")
	ingestCmd.Flags().StringVar(&pattern, "pattern", "*.dat", "file pattern for --dir")
	ingestCmd.Flags().BoolVar(&tolerant, "tolerant", false, "skip malformed files")
	ingestCmd.Flags().BoolVar(&save, "save", false, "store the dataset")

	checkCmd := &cobra.Command{
		Use:   "check [family...]",
		Short: "audit curated labels against Lyapunov estimates",
		RunE:  runCheck,
	}
	checkCmd.Flags().IntVar(&lyapIters, "iterations", 5000, "iterations per estimate")

	scanCmd := &cobra.Command{
		Use:   "scan [family]",
		Short: "propose table entries from a Lyapunov sweep (yaml on stdout)",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().Float64SliceVar(&scanK, "k", []float64{0.5, 0.9}, "perturbation constants")
	scanCmd.Flags().Float64SliceVar(&scanX0, "x0", []float64{0.01, 0.5, 1.5, 2.5}, "initial x values")
	scanCmd.Flags().Float64SliceVar(&scanY0, "y0", []float64{0, 1}, "initial y values")
	scanCmd.Flags().IntVar(&symmetry, "q", 0, "symmetry order (web)")
	scanCmd.Flags().IntVar(&lyapIters, "iterations", 5000, "iterations per estimate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored datasets",
		RunE:  runList,
	}

	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "export a stored dataset as json or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file for json, directory for svg")
	exportCmd.Flags().StringVar(&format, "format", "json", "json or svg")

	browseCmd := &cobra.Command{
		Use:   "browse [family|id]",
		Short: "page through a dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runBrowse,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(simulateCmd, assembleCmd, splitCmd, ingestCmd, checkCmd, scanCmd, listCmd, exportCmd, browseCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("seed") {
		cfg = cfg.WithSeed(seed)
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = parallel
	}
	if cmd.Flags().Changed("tolerant") {
		cfg.Tolerant = tolerant
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, dynamo.Configf("log_level", "%v", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

// setup is the common prologue of every command.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func parseFamilies(args []string) ([]maps.Kind, error) {
	if len(args) == 0 {
		return catalog.Families(), nil
	}
	kinds := make([]maps.Kind, 0, len(args))
	for _, a := range args {
		k, err := maps.ParseKind(a)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	kind, err := maps.ParseKind(args[0])
	if err != nil {
		return err
	}

	n := cfg.Points
	if points > 0 {
		n = points
	}
	m := cfg.Multiplier(kind)

	entry := catalog.Entry{K: kParam, X0: x0, Y0: y0, Q: symmetry}
	spec, err := entry.Spec(kind, n*m)
	if err != nil {
		return err
	}

	tr, err := maps.Simulate(spec)
	if err != nil {
		return err
	}
	tr = tr.Stride(m)
	log.Debug("simulated", zap.Stringer("spec", spec), zap.Int("points", len(tr)))

	fmt.Println(viz.Title.Render(spec.String()))
	fmt.Print(viz.PhasePortrait(tr, 60, 20))

	sum := analysis.Describe(tr)
	fmt.Printf("\n%s %d\n", viz.MetricLabel.Render("points"), sum.Points)
	fmt.Printf("%s mean %.4f  var %.4f  [%.3f, %.3f]\n", viz.MetricLabel.Render("x"), sum.X.Mean, sum.X.Variance, sum.X.Min, sum.X.Max)
	fmt.Printf("%s mean %.4f  var %.4f  [%.3f, %.3f]\n", viz.MetricLabel.Render("y"), sum.Y.Mean, sum.Y.Variance, sum.Y.Min, sum.Y.Max)

	if step, err := maps.StepperFor(spec.Params); err == nil {
		lambda, err := analysis.Lyapunov(step, spec.X0, spec.Y0, 5000, 1e-8)
		if err != nil {
			log.Warn("lyapunov estimate failed", zap.Error(err))
		} else {
			fmt.Printf("%s %.4f (%s)\n", viz.MetricLabel.Render("lyapunov"), lambda,
				viz.LabelBadge(analysis.Classify(lambda, analysis.DefaultThreshold)))
		}
	}

	if showSeries {
		fmt.Println()
		fmt.Println(viz.AxisSeries(tr, 60, 8, "x (cyan), y (magenta)"))
	}

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.OrbitSVG(tr, 600, 600, "#00ff88")), 0644); err != nil {
			return err
		}
	}

	if showGrid {
		res := grid.ResolutionFor(len(tr))
		if grid.PointsFor(cfg.Resolution) == len(tr) {
			res = cfg.Resolution
		}
		g, err := grid.Discretize(tr, res)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(viz.Heatmap(g, true))
	}
	return nil
}

func runAssemble(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	kinds, err := parseFamilies(args)
	if err != nil {
		return err
	}
	asm, err := dataset.NewAssembler(cfg, log)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tGRIDS\tORDER\tCHAOS\tSHAPE\tID")
	for _, kind := range kinds {
		ds, err := asm.Assemble(kind)
		if err != nil {
			return err
		}

		id := "-"
		if save {
			if err := st.Init(); err != nil {
				return err
			}
			if id, err = st.Save(ds, storage.Manifest{Family: kind.String(), Seed: cfg.Seed}); err != nil {
				return err
			}
		}
		counts := ds.Counts()
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%v\t%s\n", kind, ds.Len(),
			counts[dynamo.LabelOrder], counts[dynamo.LabelChaos], ds.GridShape(), id)
	}
	return w.Flush()
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	kind, err := maps.ParseKind(args[0])
	if err != nil {
		return err
	}
	asm, err := dataset.NewAssembler(cfg, log)
	if err != nil {
		return err
	}
	ds, err := asm.Assemble(kind)
	if err != nil {
		return err
	}

	f := cfg.TrainFraction
	if fraction != 0 {
		f = fraction
	}
	train, val, err := dataset.Split(ds, f, dataset.SplitOptions{
		Seed:        cfg.Seed,
		Independent: cfg.Independent || independent,
	})
	if err != nil {
		return err
	}
	log.Info("split", zap.Stringer("family", kind), zap.Int("train", train.Len()), zap.Int("validation", val.Len()))

	fmt.Printf("%s train %d  validation %d\n", viz.Title.Render(kind.String()), train.Len(), val.Len())

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for name, part := range map[string]dataset.Dataset{"train": train, "validation": val} {
			id, err := st.Save(part, storage.Manifest{Family: kind.String(), Subset: name, Seed: cfg.Seed})
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", viz.MetricLabel.Render(name), id)
		}
	}
	return nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := external.Options{
		Points:     cfg.Points,
		Resolution: cfg.Resolution,
		Tolerant:   cfg.Tolerant,
		Logger:     log,
	}

	var ds dataset.Dataset
	switch {
	case inputDir != "":
		ds, err = external.IngestDir(inputDir, pattern, external.FixedLabel(label), opts)
	case len(args) > 0:
		sources := make([]external.Source, len(args))
		for i, a := range args {
			sources[i] = external.Source{Path: a, Label: label}
		}
		ds, err = external.IngestFiles(sources, opts)
	case len(cfg.External) > 0:
		sources := make([]external.Source, len(cfg.External))
		for i, s := range cfg.External {
			sources[i] = external.Source{Path: s.Path, Label: s.Label}
		}
		ds, err = external.IngestFiles(sources, opts)
	default:
		return fmt.Errorf("nothing to ingest: pass files, --dir, or list sources under 'external' in the config")
	}
	if err != nil {
		return err
	}

	counts := ds.Counts()
	fmt.Printf("ingested %d grids (%d order, %d chaos)\n", ds.Len(), counts[dynamo.LabelOrder], counts[dynamo.LabelChaos])

	if save && ds.Len() > 0 {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(ds, storage.Manifest{Family: maps.External.String()})
		if err != nil {
			return err
		}
		fmt.Println(id)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	kinds, err := parseFamilies(args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\t#\tK\tQ\tX0\tY0\tLABEL\tLYAPUNOV\tSTATUS")
	mismatches := 0
	for _, kind := range kinds {
		entries, err := catalog.Entries(kind)
		if err != nil {
			return err
		}
		for i, e := range entries {
			p, err := e.Params(kind)
			if err != nil {
				return err
			}
			step, err := maps.StepperFor(p)
			if err != nil {
				return fmt.Errorf("%v entry %d: %w", kind, i, err)
			}
			lambda, err := analysis.Lyapunov(step, e.X0, e.Y0, lyapIters, 1e-8)
			if err != nil {
				return fmt.Errorf("%v entry %d: %w", kind, i, err)
			}

			status := "ok"
			if analysis.Classify(lambda, analysis.DefaultThreshold) != e.Label {
				status = "MISMATCH"
				mismatches++
			}
			fmt.Fprintf(w, "%s\t%d\t%.3f\t%d\t%.3f\t%.3f\t%s\t%.4f\t%s\n",
				kind, i, e.K, e.Q, e.X0, e.Y0, dynamo.LabelName(e.Label), lambda, status)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if mismatches > 0 {
		return fmt.Errorf("%d curated entries disagree with their Lyapunov estimate", mismatches)
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	_, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	kind, err := maps.ParseKind(args[0])
	if err != nil {
		return err
	}
	build := func(k float64) maps.Params {
		p, err := catalog.Entry{K: k, Q: symmetry}.Params(kind)
		if err != nil {
			return nil
		}
		return p
	}

	sweep := analysis.Sweep{K: scanK, X0: scanX0, Y0: scanY0}
	found, err := analysis.Scan(context.Background(), build, sweep, lyapIters, analysis.DefaultThreshold)
	if err != nil {
		return err
	}
	log.Info("scan finished", zap.Stringer("family", kind), zap.Int("candidates", len(found)))

	tbl := catalog.Table{Family: kind.String()}
	for _, c := range found {
		tbl.Entries = append(tbl.Entries, catalog.Entry{K: c.K, X0: c.X0, Y0: c.Y0, Label: c.Label, Q: symmetry})
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(tbl); err != nil {
		return err
	}
	return enc.Close()
}

func runList(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no datasets found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFAMILY\tSUBSET\tTIME\tRES\tCOUNT\tORDER\tCHAOS")
	for _, m := range runs {
		subset := m.Subset
		if subset == "" {
			subset = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			m.ID, m.Family, subset,
			m.Timestamp.Format("2006-01-02 15:04:05"),
			m.Resolution, m.Count, m.Labels["order"], m.Labels["chaos"],
		)
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	id := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	ds, err := st.LoadDataset(id)
	if err != nil {
		return err
	}

	if format == "svg" {
		return exportSVG(ds, outFile)
	}
	if format != "json" {
		return fmt.Errorf("unknown format: %s (available: json, svg)", format)
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return storage.ExportJSON(out, ds, *meta)
}

// exportSVG writes one <index>_<label>.svg per grid into dir.
func exportSVG(ds dataset.Dataset, dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i := 0; i < ds.Len(); i++ {
		g, l := ds.Item(i)
		name := fmt.Sprintf("%04d_%s.svg", i, dynamo.LabelName(l))
		if err := os.WriteFile(filepath.Join(dir, name), []byte(export.GridSVG(g, 12)), 0644); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %d grids to %s\n", ds.Len(), dir)
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	var items []viz.Item
	title := args[0]

	if kind, perr := maps.ParseKind(args[0]); perr == nil {
		items, err = familyItems(cfg, log, kind)
	} else {
		items, title, err = storedItems(args[0])
	}
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewBrowser(title, items), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// familyItems rebuilds a curated family, keeping the orbits for display.
func familyItems(cfg *config.Config, log *zap.Logger, kind maps.Kind) ([]viz.Item, error) {
	entries, err := catalog.Entries(kind)
	if err != nil {
		return nil, err
	}
	asm, err := dataset.NewAssembler(cfg, log)
	if err != nil {
		return nil, err
	}

	items := make([]viz.Item, len(entries))
	for i, e := range entries {
		tr, err := asm.Orbit(kind, e)
		if err != nil {
			return nil, fmt.Errorf("%v entry %d: %w", kind, i, err)
		}
		g, err := grid.Discretize(tr, cfg.Resolution)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("K=%g x0=%g y0=%g", e.K, e.X0, e.Y0)
		if e.Q > 0 {
			name += fmt.Sprintf(" q=%d", e.Q)
		}
		items[i] = viz.Item{Name: name, Grid: g, Label: e.Label, Orbit: tr}
	}
	return items, nil
}

func storedItems(id string) ([]viz.Item, string, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return nil, "", err
	}
	ds, err := st.LoadDataset(id)
	if err != nil {
		return nil, "", err
	}

	items := make([]viz.Item, ds.Len())
	for i := range items {
		g, l := ds.Item(i)
		items[i] = viz.Item{Name: fmt.Sprintf("#%d", i), Grid: g, Label: l}
	}
	title := strings.TrimSpace(meta.Family + " " + meta.Subset)
	return items, title, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRES\tPOINTS\tTRAIN\tSEED\tPARALLEL")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		s := "-"
		if p.Seed != nil {
			s = fmt.Sprint(*p.Seed)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%s\t%v\n", name, p.Resolution, p.Points, p.TrainFraction, s, p.Parallel)
	}
	return w.Flush()
}
