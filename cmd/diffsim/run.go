package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/experiment"
	"github.com/san-kum/diffsim/internal/export"
	"github.com/san-kum/diffsim/internal/viz"
)

func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "diffsim: ", log.LstdFlags)
}

// loadConfig layers the configuration: defaults, then the preset, then
// the config file, then any flag given on the command line.
func loadConfig(changed func(string) bool) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "run"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	if err := applyFlags(cfg, changed); err != nil {
		return nil, "", err
	}
	if runName != "" {
		name = runName
	}
	return cfg, name, nil
}

func applyFlags(cfg *config.Config, changed func(string) bool) error {
	if changed("equation") {
		cfg.Equation = equation
	}
	if changed("dim") {
		cfg.Dimension = dimension
	}
	if changed("count") {
		cfg.Space.X.Count = count
		cfg.Space.Y.Count = count
		cfg.Space.Z.Count = count
	}
	if changed("steps") {
		cfg.Time.Steps = steps
	}
	if changed("dt") {
		cfg.Time.Dt = dt
	}
	if changed("step-constant") {
		cfg.Solver.StepConstant = stepConstant
	}
	if changed("general") {
		cfg.Initial.General = general
	}
	if changed("specific") {
		cfg.Initial.Specific = specific
	}
	if changed("region") {
		r, err := parseRegion(region)
		if err != nil {
			return err
		}
		cfg.Initial.Region = r
	}
	if changed("boundary") {
		cfg.Boundary.Value = boundary
	}
	if changed("thickness") {
		cfg.Boundary.Thickness = thickness
	}
	if changed("workers") {
		cfg.Solver.Workers = workers
	}
	if changed("allow-unstable") {
		cfg.Solver.AllowUnstable = allowUnstable
	}
	return nil
}

// parseRegion reads "x=44:46,y=10:15" into half-open index ranges.
func parseRegion(s string) (map[string][]int, error) {
	region := make(map[string][]int)
	if strings.TrimSpace(s) == "" {
		return region, nil
	}
	for _, part := range strings.Split(s, ",") {
		axis, bounds, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("bad region %q: want axis=start:end", part)
		}
		lo, hi, ok := strings.Cut(bounds, ":")
		if !ok {
			return nil, fmt.Errorf("bad region %q: want axis=start:end", part)
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("bad region start in %q: %w", part, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("bad region end in %q: %w", part, err)
		}
		axis = strings.TrimSpace(axis)
		if _, dup := region[axis]; dup {
			return nil, fmt.Errorf("axis %q given twice in region", axis)
		}
		region[axis] = []int{start, end}
	}
	return region, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd.Flags().Changed)
	if err != nil {
		return err
	}

	ec, err := cfg.Experiment()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	exp := experiment.New(ec)
	exp.SetLogger(newLogger())
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s: %s\n", name, cfg.Summary())

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	runID, err := st.Save(name, cfg, result)
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := export.Write(result.Field, result.Time, result.Space, outPath); err != nil {
			return err
		}
		fmt.Printf("artifact: %s\n", outPath)
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("shape: %v dt: %g\n", result.Field.Shape(), result.Time.Dt())
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Println("  " + viz.MetricLabel.Render(name) + viz.MetricValue.Render(fmt.Sprintf("%.6g", m[name])))
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	var saveErr error
	err = viz.RunInteractive(func(name string, cfg *config.Config, res *experiment.Result) {
		if _, err := st.Save(name, cfg, res); err != nil && saveErr == nil {
			saveErr = err
		}
	})
	if err != nil {
		return err
	}
	return saveErr
}
