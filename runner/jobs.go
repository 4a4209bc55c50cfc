package runner

import (
	"context"
	"fmt"

	"github.com/plus3/rockfall/sim"
)

// SimulationJob computes the stack height for one jet pattern after a fixed
// number of drops, starting from an empty well every time it runs. A running
// job stops when its context is cancelled.
type SimulationJob struct {
	Line    int
	Pattern string
	Drops   int64
	Options []sim.Option
}

func (j *SimulationJob) Name() string {
	return fmt.Sprintf("line %d/%d drops", j.Line, j.Drops)
}

func (j *SimulationJob) Execute(ctx context.Context) (int64, error) {
	s, err := sim.New(j.Pattern, j.Options...)
	if err != nil {
		return 0, err
	}
	return s.RunContext(ctx, j.Drops)
}

// Plan registers one job per pattern and drop count, grouped by drop count so
// that results come back as all answers for the first count, then the next.
func Plan(scheduler *Scheduler, patterns []string, drops []int64, opts ...sim.Option) {
	for _, n := range drops {
		for i, pattern := range patterns {
			scheduler.Register(&SimulationJob{
				Line:    i + 1,
				Pattern: pattern,
				Drops:   n,
				Options: opts,
			})
		}
	}
}
