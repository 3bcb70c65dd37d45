package sweep

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/san-kum/heatsim/internal/heat"
)

// Runner fans sweep cases out to a fixed pool of workers. Cases share no
// state, so results land in their own slots without locking.
type Runner struct {
	Workers int
	Logger  *slog.Logger
	// KeepFields retains every field in the results; otherwise fields are
	// dropped once summarised.
	KeepFields bool
}

func NewRunner(workers int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Workers: workers, Logger: logger}
}

// Run executes every case and returns results in case order. Per-case
// failures are reported in Result.Err; the returned error is only set when
// ctx ends before all cases were scheduled, and every case that never ran
// carries that error.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]Result, error) {
	results := make([]Result, len(cases))
	jobs := make(chan int)

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(cases) {
		workers = len(cases)
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = r.execute(logger, cases[idx])
			}
		}()
	}

	var err error
	scheduled := 0
schedule:
	for i := range cases {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break schedule
		case jobs <- i:
			scheduled++
		}
	}
	close(jobs)
	wg.Wait()

	for i := scheduled; i < len(cases); i++ {
		results[i] = Result{Case: cases[i], Err: err}
	}
	return results, err
}

func (r *Runner) execute(logger *slog.Logger, c Case) Result {
	if c.Scheme == heat.SchemeExplicit && !heat.StableExplicit(c.Grid.R()) {
		logger.Warn("explicit scheme outside stable range", "case", c.Name, "r", c.Grid.R())
	}

	res := Execute(c)
	if !r.KeepFields {
		res.Field = nil
	}

	if res.Err != nil {
		logger.Warn("case failed", "case", c.Name, "error", res.Err)
	} else {
		logger.Debug("case finished", "case", c.Name, "elapsed", res.Elapsed, "decay", res.Summary.Decay)
	}
	return res
}
