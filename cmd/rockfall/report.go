package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/rockfall/runner"
)

type Report struct {
	// Configuration
	Input       string
	Patterns    int
	Capacity    int
	CycleSkip   bool
	Parallelism int

	// Results
	Jobs           []JobReport
	Stats          *runner.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type JobReport struct {
	Name          string
	PatternLength int
	Drops         int64
	Height        int64
	Duration      time.Duration
}

// jobReports pairs results with the pattern and drop count that produced
// them. Results are in the order runner.Plan registers jobs.
func jobReports(results []runner.Result, patterns []string, drops []int64) []JobReport {
	reports := make([]JobReport, 0, len(results))
	for i, result := range results {
		reports = append(reports, JobReport{
			Name:          result.Name,
			PatternLength: len(patterns[i%len(patterns)]),
			Drops:         drops[i/len(patterns)],
			Height:        result.Value,
			Duration:      result.Duration,
		})
	}
	return reports
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Rockfall Report

## Configuration
- **Input:** {{.Input}}
- **Patterns:** {{.Patterns}}
- **Well Capacity:** {{.Capacity}} rows
- **Cycle Skip:** {{.CycleSkip}}
- **Parallelism:** {{.Parallelism}}

## Results
| Job | Pattern Length | Drops | Height | Duration |
|-----|----------------|-------|--------|----------|
{{- range .Jobs}}
| {{.Name}} | {{.PatternLength}} | {{.Drops}} | {{.Height}} | {{.Duration}} |
{{- end}}

## Scheduler
- **Jobs:** {{.Stats.JobCount}}
- **Wall Time:** {{.Stats.WallTime}}
- **Total Job Time:** {{.Stats.TotalDuration}}
- **Job Time:**
  - **Avg:** {{.Stats.AvgDuration}}
  - **Min:** {{.Stats.MinDuration}}
  - **Max:** {{.Stats.MaxDuration}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} ({{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MiB)
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v int64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns int64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

func (a *app) newReportCmd() *cobra.Command {
	var (
		gcPauseMetrics bool
		drops          []int64
	)

	cmd := &cobra.Command{
		Use:   "report [input]",
		Short: "Solve the input and print a Markdown timing report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, patterns, err := a.readInput(args)
			if err != nil {
				return err
			}

			report := &Report{
				Input:          path,
				Patterns:       len(patterns),
				Capacity:       a.capacity,
				CycleSkip:      !a.noCycle,
				Parallelism:    a.parallel,
				GCPauseMetrics: gcPauseMetrics,
			}

			runtime.ReadMemStats(&report.MemStatsStart)
			results, scheduler, err := a.solve(cmd.Context(), patterns, drops)
			if err != nil {
				return err
			}
			runtime.ReadMemStats(&report.MemStatsEnd)

			report.Jobs = jobReports(results, patterns, drops)
			report.Stats = scheduler.GetStats()

			return report.Generate(cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int64SliceVar(&drops, "drops", []int64{partOneDrops, partTwoDrops}, "Drop counts to report")
	cmd.Flags().BoolVar(&gcPauseMetrics, "gc-pause-metrics", false, "Include GC pause totals in the report")

	return cmd
}
