// Package heat integrates the one-dimensional heat equation u_t = α·u_xx on
// a uniform rod grid.
//
// Two time-marching schemes share the same grid and field types:
//
//   - [Explicit]: forward-time central-space (FTCS) stencil
//   - [Implicit]: Crank–Nicolson style scheme, one tridiagonal solve per step
//
// Both return a [Field] of Nt layers by Nx nodes whose layer 0 is the
// supplied initial condition. Boundary nodes follow a [Boundary], written to
// every layer after the first before any interior value is computed.
//
// # Example
//
//	g := heat.Grid{Length: 1, Time: 0.1, Nx: 50, Nt: 100, Alpha: 1}
//	u0 := heat.ZeroBoundary().Pin(heat.Sample(g, heat.Sine))
//	f, err := heat.Implicit(u0, g.Nt, g.Nx, g.R(), heat.ZeroBoundary())
//
// # Stability
//
// The explicit scheme is stable only for r = α·Δt/Δx² ≤ 0.5. Larger values
// are not rejected; the field diverges and [Explicit] reports
// [ErrNumericalInstability] once the final layer is no longer finite. The
// implicit scheme is unconditionally stable.
//
// All functions are pure: every call allocates its own field and nothing is
// shared between calls, so independent runs may execute concurrently.
package heat
