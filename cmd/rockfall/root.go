package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/plus3/rockfall/logging"
	"github.com/plus3/rockfall/runner"
	"github.com/plus3/rockfall/sim"
	"github.com/plus3/rockfall/well"
)

const (
	defaultInput = "17.in"

	partOneDrops = 2022
	partTwoDrops = 1_000_000_000_000
)

// app holds the flags shared by every subcommand.
type app struct {
	logLevel string
	capacity int
	noCycle  bool
	parallel int
	drops    []int64

	log hclog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rockfall [input]",
		Short: "Simulate falling rocks and report the stack height",
		Long: `Simulate falling rocks and report the stack height.

Every non-blank line of the input is a jet pattern of '<' and '>'. For each
drop count the height for every pattern is printed, one per line.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runSolve,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.IntVar(&a.capacity, "capacity", well.DefaultCapacity, "Rows kept by the well store")
	flags.BoolVar(&a.noCycle, "no-cycle", false, "Disable the cycle skip and simulate every drop")
	flags.IntVarP(&a.parallel, "parallel", "p", runtime.GOMAXPROCS(0), "Number of simulations run at once")

	root.Flags().Int64SliceVar(&a.drops, "drops", []int64{partOneDrops, partTwoDrops}, "Drop counts to report")

	root.AddCommand(
		a.newDumpCmd(),
		a.newWatchCmd(),
		a.newViewCmd(),
		a.newReportCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := a.logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	a.log = logging.NewLogger("rockfall", level, cmd.ErrOrStderr())

	if a.capacity < well.MinCapacity {
		return fmt.Errorf("--capacity %d: %w", a.capacity, well.ErrCapacity)
	}
	return nil
}

func (a *app) simOptions() []sim.Option {
	return []sim.Option{
		sim.WithCapacity(a.capacity),
		sim.WithCycleSkip(!a.noCycle),
		sim.WithLogger(a.log.Named("sim")),
	}
}

func inputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultInput
}

// readPatterns returns every non-empty line of r. Only the carriage return
// of CRLF line endings is removed; any other character is a right push.
func readPatterns(r io.Reader) ([]string, error) {
	var patterns []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, sim.ErrEmptyPattern
	}
	return patterns, nil
}

func (a *app) readInput(args []string) (string, []string, error) {
	path := inputPath(args)

	f, err := os.Open(path)
	if err != nil {
		return path, nil, fmt.Errorf("reading input: %w", err)
	}
	defer f.Close()

	patterns, err := readPatterns(f)
	if err != nil {
		return path, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	a.log.Debug("read input", "path", path, "patterns", len(patterns))
	return path, patterns, nil
}

// pattern picks the 1-based line from the input.
func (a *app) pattern(args []string, line int) (string, error) {
	path, patterns, err := a.readInput(args)
	if err != nil {
		return "", err
	}
	if line < 1 || line > len(patterns) {
		return "", fmt.Errorf("--line %d: %s has %d patterns", line, path, len(patterns))
	}
	return patterns[line-1], nil
}

func (a *app) solve(ctx context.Context, patterns []string, drops []int64) ([]runner.Result, *runner.Scheduler, error) {
	for _, n := range drops {
		if n < 0 {
			return nil, nil, fmt.Errorf("--drops %d: %w", n, sim.ErrNegativeDrops)
		}
	}

	scheduler := runner.NewScheduler(a.parallel, a.log.Named("runner"))
	runner.Plan(scheduler, patterns, drops, a.simOptions()...)

	results, err := scheduler.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return results, scheduler, nil
}

func (a *app) runSolve(cmd *cobra.Command, args []string) error {
	_, patterns, err := a.readInput(args)
	if err != nil {
		return err
	}

	results, _, err := a.solve(cmd.Context(), patterns, a.drops)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, result := range results {
		if _, err := fmt.Fprintln(out, result.Value); err != nil {
			return err
		}
	}
	return nil
}
