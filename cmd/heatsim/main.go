package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	logger    = slog.Default()

	// run configuration
	configFile string
	preset     string
	scheme     string
	solver     string
	length     float64
	duration   float64
	nx         int
	nt         int
	alpha      float64
	profile    string
	bcKind     string
	bcLeft     float64
	bcRight    float64

	// sweep and convergence
	nts        []int
	nxs        []int
	profiles   []string
	schemes    []string
	boundaries bool
	workers    int
	axis       string
	levels     []int

	// output
	noSave     bool
	saveFields bool
	asJSON     bool
	layers     int
	svgLayers  int
	heatmap    bool
	modes      int
	outFile    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "heatsim",
		Short:        "1D heat equation solver lab",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(logLevel, logFormat, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heatsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "solve once and store the field",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().IntVar(&layers, "layers", 4, "layers to plot (0 disables the plot)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a parameter sweep in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().IntSliceVar(&nts, "nts", nil, "time step counts")
	sweepCmd.Flags().IntSliceVar(&nxs, "nxs", nil, "node counts")
	sweepCmd.Flags().StringSliceVar(&profiles, "profiles", nil, "initial profiles")
	sweepCmd.Flags().StringSliceVar(&schemes, "schemes", nil, "schemes")
	sweepCmd.Flags().BoolVar(&boundaries, "boundaries", false, "add the dirichlet/neumann/mixed boundary study")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all CPUs)")
	sweepCmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	sweepCmd.Flags().BoolVar(&saveFields, "save", false, "store the field of every case")

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "error against the exact solution under refinement",
		Args:  cobra.NoArgs,
		RunE:  runConverge,
	}
	addConfigFlags(convergeCmd)
	convergeCmd.Flags().StringVar(&axis, "axis", "time", "refine time (nt) or space (nx)")
	convergeCmd.Flags().IntSliceVar(&levels, "levels", []int{50, 100, 200, 400}, "nt or nx per level")
	convergeCmd.Flags().BoolVar(&asJSON, "json", false, "print points as JSON")

	compareCmd := &cobra.Command{
		Use:   "compare [scheme...]",
		Short: "compare schemes on the same grid",
		RunE:  runCompare,
	}
	addConfigFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run layers",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&layers, "layers", 4, "number of layers to overlay")
	plotCmd.Flags().BoolVar(&heatmap, "heatmap", false, "also print the space-time heatmap")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "sine mode decay analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&modes, "modes", 5, "number of modes")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export layer profiles or the heatmap as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgLayers, "layers", 6, "number of layers to draw")
	exportSVGCmd.Flags().BoolVar(&heatmap, "heatmap", false, "draw the space-time heatmap instead")

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "replay a stored run, or solve and replay",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets or print one as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}
	presetsCmd.Flags().StringVar(&outFile, "out", "", "write the preset to a config file")

	rootCmd.AddCommand(runCmd, sweepCmd, convergeCmd, compareCmd, listCmd, plotCmd, analyzeCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, liveCmd, presetsCmd)
	return rootCmd
}

func addConfigFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&scheme, "scheme", d.Scheme, "scheme (explicit, implicit)")
	f.StringVar(&solver, "solver", d.Solver, "implicit solver (thomas, dense)")
	f.Float64Var(&length, "length", d.Length, "rod length L")
	f.Float64Var(&duration, "time", d.Time, "simulated time T")
	f.IntVar(&nx, "nx", d.Nx, "spatial nodes")
	f.IntVar(&nt, "nt", d.Nt, "time layers")
	f.Float64Var(&alpha, "alpha", d.Alpha, "diffusivity")
	f.StringVar(&profile, "profile", d.Profile, "initial profile")
	f.StringVar(&bcKind, "bc", d.Boundary.Kind, "boundary kind (dirichlet, neumann, mixed)")
	f.Float64Var(&bcLeft, "left", d.Boundary.Left, "left boundary value")
	f.Float64Var(&bcRight, "right", d.Boundary.Right, "right boundary value")
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("scheme") {
		cfg.Scheme = scheme
	}
	if flags.Changed("solver") {
		cfg.Solver = solver
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("time") {
		cfg.Time = duration
	}
	if flags.Changed("nx") {
		cfg.Nx = nx
	}
	if flags.Changed("nt") {
		cfg.Nt = nt
	}
	if flags.Changed("alpha") {
		cfg.Alpha = alpha
	}
	if flags.Changed("profile") {
		cfg.Profile = profile
	}
	if flags.Changed("bc") {
		cfg.Boundary.Kind = bcKind
	}
	if flags.Changed("left") {
		cfg.Boundary.Left = bcLeft
	}
	if flags.Changed("right") {
		cfg.Boundary.Right = bcRight
	}
	if flags.Changed("nts") {
		cfg.Sweep.Nt = nts
	}
	if flags.Changed("nxs") {
		cfg.Sweep.Nx = nxs
	}
	if flags.Changed("profiles") {
		cfg.Sweep.Profiles = profiles
	}
	if flags.Changed("schemes") {
		cfg.Sweep.Schemes = schemes
	}
	if flags.Changed("workers") {
		cfg.Sweep.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
