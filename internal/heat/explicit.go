package heat

// StableR is the largest stability ratio for which the explicit scheme is
// stable in one dimension.
const StableR = 0.5

func StableExplicit(r float64) bool { return r <= StableR }

// Explicit marches initial forward with the FTCS stencil
//
//	u[n+1][i] = u[n][i] + r·(u[n][i−1] − 2·u[n][i] + u[n][i+1])
//
// for nt layers. r above StableR is allowed; if the field stops being
// finite the field is returned together with an *InstabilityError.
func Explicit(initial []float64, nt, nx int, r float64, bc Boundary) (*Field, error) {
	if err := validateRun(initial, nt, nx, r); err != nil {
		return nil, err
	}

	f := newField(initial, nt, nx)
	bc.apply(f)

	for n := 0; n < nt-1; n++ {
		ftcs(f.row(n+1), f.row(n), r)
	}

	if err := f.checkFinite(r); err != nil {
		return f, err
	}
	return f, nil
}

// ExplicitScheme is Explicit with both ends held at zero.
func ExplicitScheme(initial []float64, nt, nx int, r float64) (*Field, error) {
	return Explicit(initial, nt, nx, r, ZeroBoundary())
}

// ftcs fills the interior of next from cur using the shifted neighbour
// slices of cur; the end nodes of next are left alone.
func ftcs(next, cur []float64, r float64) {
	n := len(cur)
	left, mid, right := cur[:n-2], cur[1:n-1], cur[2:]
	out := next[1 : n-1]
	for i := range out {
		out[i] = mid[i] + r*(left[i]-2*mid[i]+right[i])
	}
}
