package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/export"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/server"
	"github.com/san-kum/diffsim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tEQUATION\tSHAPE\tDT\tC\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%g\t%g\t%.2fs\n",
			run.ID,
			run.Name,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Equation,
			run.Shape,
			run.Dt,
			run.StepConstant,
			run.Elapsed,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	id, err := st.Resolve(args[0])
	if err != nil {
		return err
	}
	if err := st.Delete(id); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", id)
	return nil
}

// frameIndex resolves a possibly negative frame index against n frames.
func frameIndex(i, n int) (int, error) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("frame %d out of range [0, %d)", i, n)
	}
	return i, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, d, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	n, err := frameIndex(frame, d.Field.Steps())
	if err != nil {
		return err
	}

	out, err := viz.Render(d.Field, d.Time, n, width, height)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s  frame %d/%d\n\n", meta.ID, meta.Name, n, d.Field.Steps()-1)
	fmt.Println(out)

	if svgPath != "" {
		if err := export.WriteSVG(d.Field, d.Space, n, svgPath); err != nil {
			return err
		}
		fmt.Printf("\nsvg: %s\n", svgPath)
	}
	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, d, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	path := gifPath
	if path == "" {
		path = filepath.Join(st.BaseDir(), meta.ID, "field.gif")
	}
	return viz.RunViewer(meta.Name+" "+meta.ID, d, path)
}

func gifRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, d, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	path := gifPath
	if path == "" {
		path = filepath.Join(st.BaseDir(), meta.ID, "field.gif")
	}

	opts := viz.GIFOptions{Stride: stride, Scale: scale, Delay: delay}
	if err := viz.SaveGIF(d.Field, path, opts); err != nil {
		return err
	}
	fmt.Printf("gif: %s\n", path)
	return nil
}

const previewCols = 8

func inspectArtifact(cmd *cobra.Command, args []string) error {
	path := args[0]
	d, err := export.Read(path)
	if err != nil {
		return err
	}

	f := d.Field
	fmt.Printf("file:  %s\n", path)
	fmt.Printf("shape: %v (time, %s)\n", f.Shape(), strings.Join(grid.AxisNames[:f.Dim()], ", "))
	fmt.Printf("time:  %g .. %g, dt %g\n", d.Time.Start(), d.Time.End(), d.Time.Dt())
	for i := 0; i < d.Space.Dim(); i++ {
		axis := d.Space.Axis(i)
		fmt.Printf("%-6s %g .. %g, %d samples\n", grid.AxisNames[i]+":", axis[0], axis[len(axis)-1], len(axis))
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "n\tt\t")
	cols := min(previewCols, f.SliceLen())
	for j := 0; j < cols; j++ {
		fmt.Fprintf(w, "[%d]\t", j)
	}
	fmt.Fprintln(w)

	rows := min(rowLimit, f.Steps())
	for n := 0; n < rows; n++ {
		slice := f.Slice(n)
		fmt.Fprintf(w, "%d\t%g\t", n, d.Time.At(n))
		for j := 0; j < cols; j++ {
			fmt.Fprintf(w, "%.4g\t", slice[j])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if rows < f.Steps() || cols < f.SliceLen() {
		fmt.Printf("... %d of %d rows, %d of %d values per row\n", rows, f.Steps(), cols, f.SliceLen())
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Summary())
	}
	return w.Flush()
}

func serveRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	srv := server.New(st)
	srv.SetLogger(log.New(os.Stderr, "diffsim: ", log.LstdFlags))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return srv.Serve(ctx, addr, func(url string) {
		fmt.Printf("serving runs at %s/api/runs\n", url)
		if openBrowser {
			if err := browser.OpenURL(url + "/api/runs"); err != nil {
				fmt.Fprintf(os.Stderr, "could not open browser: %v\n", err)
			}
		}
	})
}
