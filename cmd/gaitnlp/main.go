package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r3"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/export"
	"github.com/san-kum/gaitnlp/internal/formulation"
	"github.com/san-kum/gaitnlp/internal/problem"
	"github.com/san-kum/gaitnlp/internal/registry"
	"github.com/san-kum/gaitnlp/internal/scenario"
	"github.com/san-kum/gaitnlp/internal/storage"
	"github.com/san-kum/gaitnlp/internal/variables"
)

var (
	dataDir    string
	verbose    bool
	showBanner bool

	// build
	preset            string
	configFile        string
	taskFile          string
	terrainName       string
	goalX             float64
	goalY             float64
	yaw               float64
	optimizeTimings   bool
	enforceFinalBound bool
	basePolyDuration  float64
	forceLimit        float64
	noSave            bool
	jsonFile          string

	// export
	outFile string
	width   int
	height  int

	// sweep
	sweepAxis  string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	// montecarlo
	trials       int
	perturbation float64
	seed         int64

	parallel int
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gaitnlp",
		Short: "trajectory optimization problems for legged robots",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showBanner {
				return formulation.Banner(os.Stdout)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gaitnlp", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&showBanner, "banner", false, "print the banner before running")

	buildCmd := &cobra.Command{
		Use:   "build [robot]",
		Short: "build a problem and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  buildProblem,
	}
	buildCmd.Flags().StringVar(&preset, "preset", "", "gait preset (default: first preset of the robot)")
	buildCmd.Flags().StringVar(&configFile, "config", "", "parameters file (yaml)")
	buildCmd.Flags().StringVar(&taskFile, "task", "", "task file (yaml)")
	buildCmd.Flags().StringVar(&terrainName, "terrain", "flat", "terrain")
	buildCmd.Flags().Float64Var(&goalX, "goal-x", 1.0, "goal x")
	buildCmd.Flags().Float64Var(&goalY, "goal-y", 0.0, "goal y")
	buildCmd.Flags().Float64Var(&yaw, "yaw", 0.0, "goal yaw")
	buildCmd.Flags().BoolVar(&optimizeTimings, "optimize-timings", false, "make phase durations decision variables")
	buildCmd.Flags().BoolVar(&enforceFinalBound, "enforce-final-bound", false, "bound the final base state")
	buildCmd.Flags().Float64Var(&basePolyDuration, "base-poly", config.DefaultDurationBasePolynomial, "base polynomial duration")
	buildCmd.Flags().Float64Var(&forceLimit, "force-limit", config.DefaultForceLimit, "force limit in normal direction")
	buildCmd.Flags().BoolVar(&noSave, "dry-run", false, "print the summary without saving")
	buildCmd.Flags().StringVar(&jsonFile, "json", "", "also write the problem to a JSON file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved problems",
		RunE:  listProblems,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "show a saved problem",
		Args:  cobra.ExactArgs(1),
		RunE:  showProblem,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [id]",
		Short: "plot the initial guess",
		Args:  cobra.ExactArgs(1),
		RunE:  plotProblem,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [id]",
		Short: "export a saved problem to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [id]",
		Short: "export the nodes of a saved problem to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [id]",
		Short: "export a top view of a saved problem to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&width, "width", 600, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 400, "image height")

	for _, c := range []*cobra.Command{exportJSONCmd, exportCSVCmd, exportSVGCmd} {
		c.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [robot]",
		Short: "list available presets for a robot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for robot: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	robotsCmd := &cobra.Command{
		Use:   "robots",
		Short: "list robots",
		Run: func(cmd *cobra.Command, args []string) {
			reg := registry.NewRegistry()
			for _, name := range reg.ListRobots() {
				m, _ := reg.GetRobot(name)
				fmt.Printf("  %-8s %d feet, %.1f kg\n", name, m.EECount(), m.Dynamic.M())
			}
		},
	}

	terrainsCmd := &cobra.Command{
		Use:   "terrains",
		Short: "list terrains",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range registry.NewRegistry().ListTerrains() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "build every step of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().IntVar(&parallel, "parallel", 4, "concurrent builds")

	sweepCmd := &cobra.Command{
		Use:   "sweep [robot]",
		Short: "build problems for goals along one axis",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&preset, "preset", "", "gait preset")
	sweepCmd.Flags().StringVar(&terrainName, "terrain", "flat", "terrain")
	sweepCmd.Flags().StringVar(&sweepAxis, "axis", "x", "goal axis (x or y)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.0, "first goal")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2.0, "last goal")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of goals")
	sweepCmd.Flags().Float64Var(&yaw, "yaw", 0.0, "goal yaw")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [robot]",
		Short: "build problems for randomly perturbed goals",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().StringVar(&preset, "preset", "", "gait preset")
	monteCarloCmd.Flags().StringVar(&terrainName, "terrain", "flat", "terrain")
	monteCarloCmd.Flags().Float64Var(&goalX, "goal-x", 1.0, "nominal goal x")
	monteCarloCmd.Flags().Float64Var(&goalY, "goal-y", 0.0, "nominal goal y")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.2, "max goal offset per axis")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: time based)")

	rootCmd.AddCommand(buildCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		presetsCmd, robotsCmd, terrainsCmd, scenarioCmd, sweepCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func resolvePreset(robot string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	presets := config.ListPresets(robot)
	if len(presets) == 0 {
		return "", fmt.Errorf("no presets for robot: %s", robot)
	}
	return presets[0], nil
}

func loadParameters(cmd *cobra.Command, robot string) (*config.Parameters, string, error) {
	var params *config.Parameters
	name := ""
	if configFile != "" {
		p, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		params = p
	} else {
		var err error
		if name, err = resolvePreset(robot); err != nil {
			return nil, "", err
		}
		params = config.GetPreset(robot, name)
		if params == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(robot))
		}
	}

	// CLI flags override file and preset values
	if cmd.Flags().Changed("base-poly") {
		params.DurationBasePolynomial = basePolyDuration
		params.DtConstraintBaseMotion = basePolyDuration / 4
	}
	if cmd.Flags().Changed("force-limit") {
		params.ForceLimitInNormalDirection = forceLimit
	}
	if cmd.Flags().Changed("enforce-final-bound") {
		params.EnforceFinalBaseBound = enforceFinalBound
	}
	if optimizeTimings {
		params.OptimizePhaseDurations()
	}
	return params, name, nil
}

func buildProblem(cmd *cobra.Command, args []string) error {
	robotName := args[0]
	logger := newLogger()
	defer logger.Sync()

	params, presetName, err := loadParameters(cmd, robotName)
	if err != nil {
		return err
	}

	reg := registry.NewRegistry()
	var spec problem.Spec
	if taskFile != "" {
		task, err := config.LoadTask(taskFile)
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}
		if task.Robot == "" {
			task.Robot = robotName
		}
		if cmd.Flags().Changed("terrain") || task.Terrain == "" {
			task.Terrain = terrainName
		}
		if spec, err = reg.Spec(robotName, params, task); err != nil {
			return err
		}
	} else {
		model, err := reg.GetRobot(robotName)
		if err != nil {
			return err
		}
		hm, err := reg.GetTerrain(terrainName)
		if err != nil {
			return err
		}
		spec = problem.Spec{
			Name:        fmt.Sprintf("%s-%s", robotName, presetName),
			RobotName:   robotName,
			TerrainName: terrainName,
			Params:      params,
			Model:       model,
			Terrain:     hm,
			Task:        problem.NominalTask(model, hm, r3.Vector{X: goalX, Y: goalY}, yaw),
		}
	}

	start := time.Now()
	p, err := problem.Build(context.Background(), spec, logger)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printSummary(os.Stdout, p.Summary())
	fmt.Printf("built in %v\n", elapsed)

	if jsonFile != "" {
		if err := storage.ExportJSONFile(jsonFile, p); err != nil {
			return err
		}
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(p, presetName)
	if err != nil {
		return err
	}
	fmt.Printf("problem id: %s\n", id)
	return nil
}

func printSummary(w io.Writer, s problem.Summary) {
	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(value))
	}

	fmt.Fprintln(w, titleStyle.Render(s.Name))
	row("id", s.ID)
	row("robot", s.Robot)
	row("terrain", s.Terrain)
	row("total time", fmt.Sprintf("%.3fs", s.TotalTime))
	row("optimize timings", fmt.Sprintf("%t", s.OptimizeTimings))
	row("variables", fmt.Sprintf("%d in %d sets", s.Rows, len(s.Variables)))
	for _, v := range s.Variables {
		row("  "+v.Name, fmt.Sprintf("%d (%d fixed)", v.Rows, v.Bounded))
	}
	row("constraints", fmt.Sprintf("%d", len(s.Constraints)))
	row("  kinds", strings.Join(uniqueKinds(s.Constraints), ", "))
	row("costs", fmt.Sprintf("%d, total weight %.1f", len(s.Costs), s.TotalWeight))
}

func uniqueKinds(names []string) []string {
	seen := map[string]bool{}
	var kinds []string
	for _, n := range names {
		kind, _, _ := strings.Cut(n, "-")
		if !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func listProblems(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, nil)
	problems, err := st.List()
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		fmt.Println("no problems found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tROBOT\tTERRAIN\tTIME\tVARS\tCONSTR\tCOSTS")

	for _, p := range problems {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			p.ID,
			p.Name,
			p.Robot,
			p.Terrain,
			p.Timestamp.Format("2006-01-02 15:04:05"),
			p.Rows,
			len(p.Constraints),
			len(p.Costs),
		)
	}

	return w.Flush()
}

func showProblem(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir, nil).Load(args[0])
	if err != nil {
		return err
	}
	printSummary(os.Stdout, meta.Summary)
	if meta.Preset != "" {
		fmt.Println(labelStyle.Render("preset") + valueStyle.Render(meta.Preset))
	}
	return nil
}

func plotProblem(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, nil)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	nodes, err := st.LoadNodes(args[0])
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("problem: %s (%s)\n\n", meta.Name, meta.ID)

	series := storage.GroupNodes(nodes)
	plots := []struct {
		set     string
		caption string
		value   func(storage.NodeRecord) float64
	}{
		{variables.BaseLinNodes, "base x", func(n storage.NodeRecord) float64 { return n.Pos.X }},
		{variables.BaseLinNodes, "base z", func(n storage.NodeRecord) float64 { return n.Pos.Z }},
		{variables.BaseAngNodes, "base yaw", func(n storage.NodeRecord) float64 { return n.Pos.Z }},
		{variables.EEMotionLinNodes(0), "foot 0 x", func(n storage.NodeRecord) float64 { return n.Pos.X }},
		{variables.EEWrenchLinNodes(0), "foot 0 force z", func(n storage.NodeRecord) float64 { return n.Pos.Z }},
	}

	for _, pl := range plots {
		records := series[pl.set]
		if len(records) < 2 {
			continue
		}
		data := make([]float64, len(records))
		for i, r := range records {
			data[i] = pl.value(r)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(pl.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	defer closeFn()

	return storage.New(dataDir, nil).ExportStored(w, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	defer closeFn()

	return storage.New(dataDir, nil).CopyNodesCSV(w, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	nodes, err := storage.New(dataDir, nil).LoadNodes(args[0])
	if err != nil {
		return err
	}

	svg := export.SeriesToSVG(export.TopViewFromRecords(nodes), width, height)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	defer closeFn()

	_, err = fmt.Fprintln(w, svg)
	return err
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	s, err := scenario.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", s.Name, len(s.Steps))
	problems, err := scenario.RunScenario(context.Background(), s, registry.NewRegistry(), logger, parallel)
	if err != nil {
		return err
	}

	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}
	for i, p := range problems {
		id, err := st.Save(p, s.Steps[i].Preset)
		if err != nil {
			return err
		}
		fmt.Printf("  %-20s %s  %d variables\n", p.Name, id, p.Variables.Rows())
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	var axis variables.Dim
	if err := axis.UnmarshalText([]byte(sweepAxis)); err != nil {
		return err
	}
	presetName, err := resolvePreset(args[0])
	if err != nil {
		return err
	}

	results, err := scenario.RunSweep(context.Background(), &scenario.GoalSweep{
		Robot:    args[0],
		Terrain:  terrainName,
		Preset:   presetName,
		Axis:     axis,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Yaw:      yaw,
	}, registry.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "GOAL %s\tBASE Z\tVARS\tCONSTR\tCOSTS\n", strings.ToUpper(axis.String()))
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%.3f\t%d\t%d\t%d\n", r.Goal, r.BaseTarget.Z, r.Rows, r.Constraints, r.Costs)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	presetName, err := resolvePreset(args[0])
	if err != nil {
		return err
	}

	results, err := scenario.RunMonteCarlo(context.Background(), &scenario.MonteCarloConfig{
		Robot:        args[0],
		Terrain:      terrainName,
		Preset:       presetName,
		Goal:         r3.Vector{X: goalX, Y: goalY},
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
	}, registry.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tGOAL X\tGOAL Y\tVARS\tFOOT 0")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%d\t%.3f\t%.3f\t-\terror: %v\n", r.TrialID, r.Goal.X, r.Goal.Y, r.Err)
			continue
		}
		f := r.Footholds[0]
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%d\t(%.3f, %.3f, %.3f)\n", r.TrialID, r.Goal.X, r.Goal.Y, r.Rows, f.X, f.Y, f.Z)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	ok, failed := scenario.MonteCarloStats(results)
	fmt.Printf("\n%d ok, %d failed\n", ok, failed)
	return nil
}
