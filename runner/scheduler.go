// Package runner executes independent simulation jobs, optionally in
// parallel, and keeps per-job execution statistics.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// Job is one unit of work that produces a single number.
type Job interface {
	Name() string
	Execute(ctx context.Context) (int64, error)
}

// Result is the outcome of one job.
type Result struct {
	Name     string
	Value    int64
	Duration time.Duration
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	JobCount      int
	Parallelism   int
	WallTime      time.Duration
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	Jobs          []Result
}

// Scheduler runs registered jobs and returns their results in registration
// order, regardless of the order they finish in.
type Scheduler struct {
	jobs        []Job
	parallelism int
	log         hclog.Logger

	results  []Result
	wallTime time.Duration
}

// NewScheduler creates a scheduler that runs at most parallelism jobs at a
// time. Values below 1 mean one at a time.
func NewScheduler(parallelism int, logger hclog.Logger) *Scheduler {
	if parallelism < 1 {
		parallelism = 1
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Scheduler{
		parallelism: parallelism,
		log:         logger,
	}
}

// Register adds a job to the scheduler.
func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
}

// Run executes all registered jobs. The first failing job cancels the jobs
// that have not started yet.
func (s *Scheduler) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(s.jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	start := time.Now()
	for i, job := range s.jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			jobStart := time.Now()
			value, err := job.Execute(ctx)
			duration := time.Since(jobStart)
			if err != nil {
				return fmt.Errorf("job %s: %w", job.Name(), err)
			}

			results[i] = Result{
				Name:     job.Name(),
				Value:    value,
				Duration: duration,
			}
			s.log.Debug("job finished", "job", job.Name(), "value", value, "duration", duration)
			return nil
		})
	}

	err := g.Wait()
	s.wallTime = time.Since(start)
	if err != nil {
		return nil, err
	}

	s.results = results
	return results, nil
}

// GetStats returns statistics about the last successful Run.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		JobCount:    len(s.jobs),
		Parallelism: s.parallelism,
		WallTime:    s.wallTime,
		Jobs:        make([]Result, len(s.results)),
	}
	copy(stats.Jobs, s.results)

	if len(s.results) == 0 {
		return stats
	}

	stats.MinDuration = time.Duration(1<<63 - 1)
	for _, result := range s.results {
		stats.TotalDuration += result.Duration
		if result.Duration < stats.MinDuration {
			stats.MinDuration = result.Duration
		}
		if result.Duration > stats.MaxDuration {
			stats.MaxDuration = result.Duration
		}
	}
	stats.AvgDuration = stats.TotalDuration / time.Duration(len(s.results))

	return stats
}
