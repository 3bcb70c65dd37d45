package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/san-kum/heatsim/internal/analysis"
	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/export"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEME\tPROFILE\tTIME\tNX\tNT\tR\tDECAY\tMAX ERR")

	for _, run := range runs {
		decay, maxErr := "diverged", "-"
		if run.Summary.Finite {
			decay = fmt.Sprintf("%.4g", run.Summary.Decay)
		}
		if run.MaxErr > 0 {
			maxErr = fmt.Sprintf("%.3e", run.MaxErr)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.4g\t%s\t%s\n",
			run.ID,
			run.Scheme,
			run.Profile,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Grid.Nx,
			run.Grid.Nt,
			run.R,
			decay,
			maxErr,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Store, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, st, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	field, _, err := st.LoadField(meta.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "scheme: %s, profile: %s, boundary: %s\n", meta.Scheme, meta.Profile, meta.Boundary)
	fmt.Fprintf(out, "layers: %d, nodes: %d, r: %.4g\n\n", field.Nt(), field.Nx(), meta.R)

	graph, err := viz.PlotLayers(field, meta.Grid, viz.EvenLayers(field.Nt(), layers), viz.PlotOptions{
		Height:  15,
		Caption: "u(x) at selected times",
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, graph)

	if heatmap {
		rows := field.Rows()
		lo, hi := viz.Range(rows)
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.Subtle.Render(fmt.Sprintf("space-time, t=0 on top, range [%.3g, %.3g]", lo, hi)))
		fmt.Fprint(out, viz.Heatmap(rows, lo, hi, 80, 20))
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	field, _, err := st.LoadField(meta.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "mode analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "scheme: %s, r: %.4g, span: %.4g\n\n", meta.Scheme, meta.R, meta.Grid.FinalTime())

	steps := field.Nt() - 1
	rows := make([][]string, 0, modes)
	for _, d := range analysis.Decays(field, meta.Grid, modes) {
		g := analysis.Amplification(meta.Scheme, meta.R, d.Mode, field.Nx())
		observed := "-"
		if d.Initial != 0 {
			observed = fmt.Sprintf("%.6g", d.Observed)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.Mode),
			fmt.Sprintf("%.4g", d.Initial),
			fmt.Sprintf("%.4g", d.Final),
			observed,
			fmt.Sprintf("%.6g", math.Pow(g, float64(steps))),
			fmt.Sprintf("%.6g", d.Exact),
			fmt.Sprintf("%.4g", g),
		})
	}
	fmt.Fprint(out, viz.Table([]string{"MODE", "INITIAL", "FINAL", "OBSERVED", "SCHEME", "EXACT", "GAIN/STEP"}, rows))

	spectrum := analysis.SineModes(field.Final())
	amps := make([]float64, len(spectrum)-1)
	for k := 1; k < len(spectrum); k++ {
		amps[k-1] = math.Abs(spectrum[k])
	}
	graph, err := viz.PlotSeries(amps, viz.PlotOptions{Height: 10, Caption: "|b_k| of the final layer"})
	if err != nil {
		logger.Warn("spectrum plot skipped", "error", err)
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, graph)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	field, times, err := st.LoadField(meta.ID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, field, times)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	field, times, err := st.LoadField(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(cmd.OutOrStdout(), field, times)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	field, _, err := st.LoadField(meta.ID)
	if err != nil {
		return err
	}
	if heatmap {
		return export.WriteHeatmap(cmd.OutOrStdout(), field, 800, 400, 200)
	}
	return export.WriteProfiles(cmd.OutOrStdout(), field, meta.Grid, viz.EvenLayers(field.Nt(), svgLayers), 800, 400)
}

func showPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSCHEME\tPROFILE\tNX\tNT\tR")
		for _, name := range config.ListPresets() {
			p := config.GetPreset(name)
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4g\n", name, p.SchemeName(), p.Profile, p.Nx, p.Nt, p.Grid().R())
		}
		return w.Flush()
	}

	p := config.GetPreset(args[0])
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	if outFile != "" {
		if err := config.Save(outFile, p); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", outFile)
		return nil
	}

	enc := yaml.NewEncoder(out)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
