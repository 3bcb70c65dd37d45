package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/heatsim/internal/analysis"
	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/sweep"
	"github.com/san-kum/heatsim/internal/viz"
	"github.com/spf13/cobra"
)

func caseFromConfig(cfg *config.Config) (sweep.Case, error) {
	bc, err := cfg.GetBoundary()
	if err != nil {
		return sweep.Case{}, err
	}
	name := cfg.SchemeName()
	return sweep.Case{
		Name:     name,
		Scheme:   name,
		Grid:     cfg.Grid(),
		Profile:  cfg.Profile,
		Boundary: bc,
	}, nil
}

func warnUnstable(c sweep.Case) {
	if c.Scheme == heat.SchemeExplicit && !heat.StableExplicit(c.Grid.R()) {
		logger.Warn("explicit scheme outside stable range, expect divergence",
			"r", c.Grid.R(), "limit", heat.StableR)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	c, err := caseFromConfig(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	warnUnstable(c)
	logger.Info("solving", "scheme", c.Scheme, "nx", c.Grid.Nx, "nt", c.Grid.Nt, "r", c.Grid.R())

	res := sweep.Execute(c)
	if res.Field == nil {
		return res.Err
	}
	if res.Err != nil {
		logger.Warn("solution is not finite", "error", res.Err)
	}

	printSummary(out, res)

	if layers > 0 && res.Summary.FirstDiverged < 0 {
		graph, err := viz.PlotLayers(res.Field, c.Grid, viz.EvenLayers(c.Grid.Nt, layers), viz.PlotOptions{
			Caption: fmt.Sprintf("u(x) for %s, %s profile", c.Scheme, c.Profile),
		})
		if err != nil {
			logger.Warn("plot skipped", "error", err)
		} else {
			fmt.Fprintln(out)
			fmt.Fprintln(out, graph)
		}
	}

	if noSave {
		return nil
	}
	runID, err := saveResult(res)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nrun id: %s\n", runID)
	return nil
}

func saveResult(res sweep.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(storage.Run{
		Scheme:   res.Case.Scheme,
		Profile:  res.Case.Profile,
		Grid:     res.Case.Grid,
		Boundary: res.Case.Boundary,
		Elapsed:  res.Elapsed,
		Field:    res.Field,
		MaxErr:   res.MaxErr,
	})
}

func printSummary(w io.Writer, res sweep.Result) {
	c, s := res.Case, res.Summary
	fmt.Fprintln(w, viz.HeaderStyle.Render(fmt.Sprintf("%s · %s · %s", c.Scheme, c.Profile, c.Boundary)))
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		viz.Metric("dx", fmt.Sprintf("%.4g", c.Grid.Dx())),
		viz.Metric("dt", fmt.Sprintf("%.4g", c.Grid.Dt())),
		viz.Metric("r", fmt.Sprintf("%.4g", c.Grid.R())),
		viz.Metric("elapsed", res.Elapsed.Round(time.Microsecond)),
	)

	if c.Scheme == heat.SchemeExplicit && !s.ExplicitStable {
		fmt.Fprintln(w, viz.Warning.Render(fmt.Sprintf("r = %.3g > %.1f: explicit scheme is unstable", c.Grid.R(), heat.StableR)))
	}
	if !s.Finite {
		fmt.Fprintln(w, viz.Failure.Render(fmt.Sprintf("field diverged (first layer past bound: %d)", s.FirstDiverged)))
		return
	}
	fmt.Fprintf(w, "%s  %s  %s\n",
		viz.Metric("initial max", fmt.Sprintf("%.6g", s.InitialMax)),
		viz.Metric("final max", fmt.Sprintf("%.6g", s.FinalMax)),
		viz.Metric("decay", fmt.Sprintf("%.6g", s.Decay)),
	)
	if res.HasExact {
		fmt.Fprintln(w, viz.Metric("max error vs exact", fmt.Sprintf("%.3e", res.MaxErr)))
	}
	if s.FirstDiverged >= 0 {
		fmt.Fprintln(w, viz.Warning.Render(fmt.Sprintf("layers exceed %.0e from layer %d", analysis.DefaultBound, s.FirstDiverged)))
	}
}

func buildCases(cfg *config.Config, base sweep.Case) []sweep.Case {
	base.Name = "base"
	cases := []sweep.Case{base}

	sw := cfg.Sweep
	switch {
	case len(sw.Nt) > 0 && len(sw.Nx) > 0:
		cases = sweep.Grid(base, sw.Nt, sw.Nx)
	case len(sw.Nt) > 0:
		cases = sweep.TimeSteps(base, sw.Nt...)
	case len(sw.Nx) > 0:
		cases = sweep.SpaceSteps(base, sw.Nx...)
	}

	if len(sw.Profiles) > 0 {
		cases = sweep.Expand(cases, func(c sweep.Case) []sweep.Case {
			return sweep.Profiles(c, sw.Profiles...)
		})
	}
	if boundaries {
		cases = sweep.Expand(cases, func(c sweep.Case) []sweep.Case {
			return sweep.Boundaries(c, sweep.DefaultBoundaries()...)
		})
	}
	if len(sw.Schemes) > 0 {
		cases = sweep.Schemes(cases, sw.Schemes...)
	}
	return cases
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	base, err := caseFromConfig(cfg)
	if err != nil {
		return err
	}
	cases := buildCases(cfg, base)
	out := cmd.OutOrStdout()

	runner := sweep.NewRunner(cfg.Sweep.Workers, logger)
	runner.KeepFields = saveFields

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("sweep started", "cases", len(cases), "workers", runner.Workers)
	start := time.Now()
	results, runErr := runner.Run(ctx, cases)
	if runErr != nil {
		logger.Warn("sweep interrupted", "error", runErr)
	}
	logger.Info("sweep finished", "elapsed", time.Since(start))

	done := results[:0]
	for _, r := range results {
		if !skipped(r) {
			done = append(done, r)
		}
	}
	if n := len(results) - len(done); n > 0 {
		logger.Warn("cases skipped", "count", n)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(done); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, viz.Table(
			[]string{"CASE", "SCHEME", "NT", "NX", "R", "FINAL MAX", "MAX ERR", "TIME", "STATUS"},
			resultRows(done),
		))
	}

	if saveFields {
		for _, r := range done {
			if r.Field == nil {
				continue
			}
			runID, err := saveResult(r)
			if err != nil {
				return err
			}
			logger.Info("saved", "case", r.Case.Name, "run", runID)
		}
	}
	return runErr
}

func resultRows(results []sweep.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		finalMax, maxErr := "-", "-"
		if r.Summary.Finite {
			finalMax = fmt.Sprintf("%.6g", r.Summary.FinalMax)
		}
		if r.HasExact {
			maxErr = fmt.Sprintf("%.3e", r.MaxErr)
		}
		rows = append(rows, []string{
			r.Case.Name,
			r.Case.Scheme,
			strconv.Itoa(r.Case.Grid.Nt),
			strconv.Itoa(r.Case.Grid.Nx),
			fmt.Sprintf("%.4g", r.Case.Grid.R()),
			finalMax,
			maxErr,
			r.Elapsed.Round(time.Microsecond).String(),
			status(r),
		})
	}
	return rows
}

// skipped reports a case the runner never scheduled before ctx ended.
func skipped(r sweep.Result) bool {
	return errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded)
}

func status(r sweep.Result) string {
	switch {
	case errors.Is(r.Err, heat.ErrNumericalInstability):
		return viz.Failure.Render("diverged")
	case r.Err != nil:
		return viz.Failure.Render("error: " + r.Err.Error())
	case r.Summary.FirstDiverged >= 0:
		return viz.Warning.Render("unbounded")
	case r.Case.Scheme == heat.SchemeExplicit && !r.Summary.ExplicitStable:
		return viz.Warning.Render("unstable r")
	}
	return viz.StatusRunning.Render("ok")
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var refine analysis.Refinement
	switch axis {
	case "time":
		refine = analysis.RefineTime(levels...)
	case "space":
		refine = analysis.RefineSpace(levels...)
	default:
		return fmt.Errorf("unknown axis: %s (available: time, space)", axis)
	}

	if cfg.Profile != "sine" || cfg.Boundary.Left != 0 || cfg.Boundary.Right != 0 {
		logger.Info("convergence is measured from the sine profile with zero ends")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	pts, err := analysis.Convergence(ctx, cfg.SchemeName(), cfg.Grid(), refine)
	if err != nil {
		if len(pts) == 0 {
			return err
		}
		logger.Warn("convergence stopped early", "error", err)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pts); err != nil {
			return err
		}
		return err
	}

	rows := make([][]string, len(pts))
	errs := make([]float64, len(pts))
	for i, p := range pts {
		order := "-"
		if i > 0 {
			order = fmt.Sprintf("%.2f", p.Order)
		}
		rows[i] = []string{
			strconv.Itoa(p.Nt), strconv.Itoa(p.Nx),
			fmt.Sprintf("%.3e", p.Dt), fmt.Sprintf("%.3e", p.Dx), fmt.Sprintf("%.4g", p.R),
			fmt.Sprintf("%.3e", p.MaxErr), order,
		}
		errs[i] = p.MaxErr
	}

	fmt.Fprintln(out, viz.HeaderStyle.Render(fmt.Sprintf("%s convergence in %s", cfg.SchemeName(), axis)))
	fmt.Fprint(out, viz.Table([]string{"NT", "NX", "DT", "DX", "R", "MAX ERR", "ORDER"}, rows))
	fmt.Fprintln(out, viz.Metric("monotone", analysis.Monotone(pts)))

	if len(errs) > 1 {
		graph, perr := viz.PlotSeries(viz.Log10(errs), viz.PlotOptions{Height: 8, Caption: "log10 max error per level"})
		if perr != nil {
			logger.Debug("plot skipped", "error", perr)
		} else {
			fmt.Fprintln(out)
			fmt.Fprintln(out, graph)
		}
	}
	return err
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	base, err := caseFromConfig(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	names := args
	if len(names) == 0 {
		names = heat.SchemeNames()
	}
	for _, n := range names {
		if _, err := heat.LookupScheme(n); err != nil {
			return err
		}
	}

	base.Name = "compare"
	cases := sweep.Schemes([]sweep.Case{base}, names...)
	for _, c := range cases {
		warnUnstable(c)
	}

	runner := sweep.NewRunner(len(cases), logger)
	runner.KeepFields = true
	results, err := runner.Run(cmd.Context(), cases)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "comparing schemes (L=%g, T=%g, nx=%d, nt=%d, r=%.4g)\n\n",
		base.Grid.Length, base.Grid.Time, base.Grid.Nx, base.Grid.Nt, base.Grid.R())

	ref := results[0]
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		finalMax, maxErr, diff := "-", "-", "-"
		if r.Summary.Finite {
			finalMax = fmt.Sprintf("%.6g", r.Summary.FinalMax)
		}
		if r.HasExact {
			maxErr = fmt.Sprintf("%.3e", r.MaxErr)
		}
		if r.Field != nil && ref.Field != nil && r.Summary.Finite && ref.Summary.Finite {
			diff = fmt.Sprintf("%.3e", r.Field.Final().Sub(ref.Field.Final()).MaxAbs())
		}
		rows = append(rows, []string{
			r.Case.Scheme, finalMax, maxErr, diff,
			r.Elapsed.Round(time.Microsecond).String(), status(r),
		})
	}
	fmt.Fprint(out, viz.Table(
		[]string{"SCHEME", "FINAL MAX", "MAX ERR", "DIFF VS " + ref.Case.Scheme, "TIME", "STATUS"},
		rows,
	))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	var (
		field *heat.Field
		grid  heat.Grid
		title string
	)

	if len(args) == 1 {
		st := storage.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		field, _, err = st.LoadField(args[0])
		if err != nil {
			return err
		}
		grid, title = meta.Grid, fmt.Sprintf("%s · %s", meta.ID, meta.Profile)
	} else {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		c, err := caseFromConfig(cfg)
		if err != nil {
			return err
		}
		warnUnstable(c)
		res := sweep.Execute(c)
		if res.Field == nil {
			return res.Err
		}
		field, grid, title = res.Field, c.Grid, fmt.Sprintf("%s · %s · %s", c.Scheme, c.Profile, c.Boundary)
	}

	p := tea.NewProgram(viz.NewPlayer(title, field, grid), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
