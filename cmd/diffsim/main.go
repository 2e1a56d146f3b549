package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/storage"
	"github.com/san-kum/diffsim/internal/viz"
)

var (
	dataDir string
	verbose bool

	// run
	configFile    string
	preset        string
	runName       string
	outPath       string
	equation      string
	dimension     int
	count         int
	steps         int
	dt            float64
	stepConstant  float64
	general       float64
	specific      float64
	region        string
	boundary      float64
	thickness     int
	workers       int
	allowUnstable bool

	// plot, gif, view
	frame    int
	width    int
	height   int
	svgPath  string
	gifPath  string
	stride   int
	scale    int
	delay    int
	rowLimit int

	// serve
	addr        string
	openBrowser bool
)

func defaultDataDir() string {
	if dir := os.Getenv("DIFFSIM_DATA"); dir != "" {
		return dir
	}
	return ".diffsim"
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	atexit.Register(func() { st.Close() })
	return st, nil
}

func main() {
	// .env is optional.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "diffsim",
		Short:         "explicit finite-difference diffusion solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory (env DIFFSIM_DATA)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solver progress to stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "solve a configuration and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "start from a preset configuration")
	runCmd.Flags().StringVar(&runName, "name", "", "label for the stored run")
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the artifact to this path")
	runCmd.Flags().StringVar(&equation, "equation", config.DefaultEquation, "equation")
	runCmd.Flags().IntVar(&dimension, "dim", config.DefaultDimension, "number of spatial axes (1-3)")
	runCmd.Flags().IntVar(&count, "count", config.DefaultCount, "samples per spatial axis on [0, 1]")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
	runCmd.Flags().Float64VarP(&stepConstant, "step-constant", "c", config.DefaultStepConstant, "step constant")
	runCmd.Flags().Float64Var(&general, "general", 0, "initial value everywhere")
	runCmd.Flags().Float64Var(&specific, "specific", 0, "initial value inside the region")
	runCmd.Flags().StringVar(&region, "region", "", "initial region, e.g. x=44:46,y=10:15")
	runCmd.Flags().Float64Var(&boundary, "boundary", 0, "boundary value")
	runCmd.Flags().IntVar(&thickness, "thickness", config.DefaultThickness, "boundary thickness in cells")
	runCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers per sweep (0 = all CPUs)")
	runCmd.Flags().BoolVar(&allowUnstable, "allow-unstable", false, "skip the stability check on the step constant")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "remove a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one frame of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&frame, "frame", -1, "frame index, negative counts from the end")
	plotCmd.Flags().IntVar(&width, "width", 70, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 20, "plot height")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the frame as SVG")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "step through the frames of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}
	viewCmd.Flags().StringVar(&gifPath, "gif", "", "path used by the G key")

	gifCmd := &cobra.Command{
		Use:   "gif [run_id]",
		Short: "animate a run as a GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  gifRun,
	}
	gifCmd.Flags().StringVarP(&gifPath, "out", "o", "", "output path (default <run dir>/field.gif)")
	gifCmd.Flags().IntVar(&stride, "stride", 1, "keep every n-th frame")
	gifCmd.Flags().IntVar(&scale, "scale", 4, "pixels per cell")
	gifCmd.Flags().IntVar(&delay, "delay", 10, "frame delay in 1/100 s")

	inspectCmd := &cobra.Command{
		Use:   "inspect [path]",
		Short: "print the shape and a preview of an artifact file",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectArtifact,
	}
	inspectCmd.Flags().IntVar(&rowLimit, "rows", 5, "rows to preview")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick a preset, tune it and watch it diffuse",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve stored runs over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serveRuns,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "localhost:0", "listen address")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false, "open the run list in a browser")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, deleteCmd, plotCmd, viewCmd, gifCmd, inspectCmd, presetsCmd, tuiCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.StatusError.Render("error: ")+err.Error())
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
