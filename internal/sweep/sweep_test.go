package sweep_test

import (
	"context"
	"io"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/sweep"
)

var _ = Describe("Sweep", func() {
	var (
		base   sweep.Case
		runner *sweep.Runner
	)

	BeforeEach(func() {
		base = sweep.Case{
			Name:     "base",
			Scheme:   heat.SchemeImplicit,
			Grid:     heat.Grid{Length: 1, Time: 0.01, Nx: 50, Nt: 100, Alpha: 1},
			Profile:  "sine",
			Boundary: heat.ZeroBoundary(),
		}
		runner = sweep.NewRunner(4, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("builders", func() {
		It("varies one parameter per case", func() {
			cases := sweep.TimeSteps(base, 50, 100, 200)
			Expect(cases).To(HaveLen(3))
			Expect(cases[2].Grid.Nt).To(Equal(200))
			Expect(cases[2].Grid.Nx).To(Equal(50))
			Expect(cases[0].Name).To(Equal("nt=50"))

			cases = sweep.SpaceSteps(base, 10, 20)
			Expect(cases[1].Grid.Nx).To(Equal(20))

			cases = sweep.Profiles(base, heat.ProfileNames()...)
			Expect(cases).To(HaveLen(len(heat.ProfileNames())))
		})

		It("builds the cartesian product of nt and nx", func() {
			cases := sweep.Grid(base, []int{10, 20}, []int{5, 6, 7})
			Expect(cases).To(HaveLen(6))
			Expect(cases[4].Grid.Nt).To(Equal(20))
			Expect(cases[4].Grid.Nx).To(Equal(6))
		})

		It("repeats cases per scheme", func() {
			cases := sweep.Schemes(sweep.TimeSteps(base, 50, 100), heat.SchemeExplicit, heat.SchemeImplicit)
			Expect(cases).To(HaveLen(4))
			Expect(cases[0].Scheme).To(Equal(heat.SchemeExplicit))
			Expect(cases[0].Name).To(Equal("explicit/nt=50"))
			Expect(cases[3].Scheme).To(Equal(heat.SchemeImplicit))
		})

		It("labels the boundary study", func() {
			cases := sweep.Boundaries(base, sweep.DefaultBoundaries()...)
			Expect(cases).To(HaveLen(3))
			Expect(cases[1].Boundary.Kind).To(Equal(heat.Neumann))
		})

		It("composes builders with joined names", func() {
			cases := sweep.Expand(sweep.TimeSteps(base, 50, 100), func(c sweep.Case) []sweep.Case {
				return sweep.Profiles(c, "sine", "step")
			})
			Expect(cases).To(HaveLen(4))
			Expect(cases[1].Name).To(Equal("nt=50/profile=step"))
			Expect(cases[1].Grid.Nt).To(Equal(50))
			Expect(cases[3].Profile).To(Equal("step"))
			Expect(cases[3].Grid.Nt).To(Equal(100))
		})
	})

	Describe("Runner", func() {
		It("returns results in case order", func() {
			cases := sweep.TimeSteps(base, 50, 100, 200, 400)
			results, err := runner.Run(context.Background(), cases)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(4))

			for i, res := range results {
				Expect(res.Err).NotTo(HaveOccurred())
				Expect(res.Case.Grid.Nt).To(Equal(cases[i].Grid.Nt))
				Expect(res.HasExact).To(BeTrue())
				Expect(res.Summary.Finite).To(BeTrue())
				Expect(res.Field).To(BeNil())
			}
		})

		It("shows explicit errors shrinking with nt", func() {
			base.Scheme = heat.SchemeExplicit
			results, err := runner.Run(context.Background(), sweep.TimeSteps(base, 50, 100, 200, 400))
			Expect(err).NotTo(HaveOccurred())

			for i := 1; i < len(results); i++ {
				Expect(results[i].MaxErr).To(BeNumerically("<", results[i-1].MaxErr))
			}
		})

		It("keeps fields on request", func() {
			runner.KeepFields = true
			results, err := runner.Run(context.Background(), []sweep.Case{base})
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Field).NotTo(BeNil())
			Expect(results[0].Field.Nt()).To(Equal(100))
		})

		It("keeps boundary values fixed through the boundary study", func() {
			runner.KeepFields = true
			results, err := runner.Run(context.Background(), sweep.Boundaries(base, sweep.DefaultBoundaries()...))
			Expect(err).NotTo(HaveOccurred())

			for _, res := range results {
				Expect(res.Err).NotTo(HaveOccurred())
				f, bc := res.Field, res.Case.Boundary
				for n := 0; n < f.Nt(); n++ {
					Expect(f.At(n, 0)).To(Equal(bc.Left))
					Expect(f.At(n, f.Nx()-1)).To(Equal(bc.Right))
				}
			}
			Expect(results[0].HasExact).To(BeTrue())
			Expect(results[1].HasExact).To(BeFalse())
		})

		It("records per-case failures without stopping the sweep", func() {
			bad := base
			bad.Grid.Nx = 2
			unknown := base
			unknown.Profile = "sawtooth"

			results, err := runner.Run(context.Background(), []sweep.Case{bad, base, unknown})
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Err).To(MatchError(heat.ErrInvalidGrid))
			Expect(results[1].Err).NotTo(HaveOccurred())
			Expect(results[2].Err).To(HaveOccurred())
		})

		It("reports explicit divergence as data", func() {
			base.Scheme = heat.SchemeExplicit
			base.Profile = "step"
			base.Grid = heat.Grid{Length: 1, Time: 10, Nx: 50, Nt: 400, Alpha: 1}

			results, err := runner.Run(context.Background(), []sweep.Case{base})
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Err).To(MatchError(heat.ErrNumericalInstability))
			Expect(results[0].Summary.Finite).To(BeFalse())
			Expect(results[0].Summary.FinalMax).To(Equal(math.MaxFloat64))
		})

		It("stops scheduling when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			cases := sweep.TimeSteps(base, 10, 20, 30)
			results, err := runner.Run(ctx, cases)
			Expect(err).To(MatchError(context.Canceled))
			Expect(results).To(HaveLen(3))
			for i, res := range results {
				Expect(res.Err).To(MatchError(context.Canceled))
				Expect(res.Case.Name).To(Equal(cases[i].Name))
				Expect(res.Case.Grid.Nt).To(Equal(cases[i].Grid.Nt))
			}
		})

		It("handles an empty sweep", func() {
			results, err := runner.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})
	})
})
