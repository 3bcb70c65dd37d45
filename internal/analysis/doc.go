// Package analysis measures solver output against the closed-form solution
// and characterises stability.
//
//   - [Exact]: exp(−α(π/L)²t)·sin(πx/L), the decay of the fundamental mode
//   - [FinalError], [LayerError]: max-abs error of a layer
//   - [Convergence]: error and observed order as nt or nx is refined
//   - [Summarize]: decay ratio, finiteness and stability of a field
//   - [SineModes], [Decays]: per-mode amplitudes and their decay
//
// # Convergence
//
// Error shrinks as the grid is refined:
//
//	pts, _ := analysis.Convergence(ctx, heat.SchemeExplicit, base, analysis.RefineTime(50, 100, 200, 400))
//	for _, p := range pts {
//	    fmt.Println(p.Nt, p.MaxErr, p.Order)
//	}
package analysis
