package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/plus3/rockfall/anim"
	"github.com/plus3/rockfall/tui"
)

// viewerFlags are shared by the terminal and window viewers.
type viewerFlags struct {
	line  int
	depth int
	skip  int64
}

func (f *viewerFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.line, "line", 1, "Input line holding the jet pattern")
	cmd.Flags().IntVar(&f.depth, "depth", 40, "Rows of the well shown below the falling shape")
	cmd.Flags().Int64Var(&f.skip, "skip", 0, "Drops to simulate before the replay starts")
}

func (a *app) newPlayer(args []string, f *viewerFlags) (*anim.Player, error) {
	pattern, err := a.pattern(args, f.line)
	if err != nil {
		return nil, err
	}

	player, err := anim.NewPlayer(pattern, f.depth, a.simOptions()...)
	if err != nil {
		return nil, err
	}
	if err := player.Skip(f.skip); err != nil {
		return nil, err
	}
	return player, nil
}

func (a *app) newWatchCmd() *cobra.Command {
	var (
		viewer   viewerFlags
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [input]",
		Short: "Replay the simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := a.newPlayer(args, &viewer)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return tui.NewViewer(screen, player).Run(ctx, interval)
		},
	}

	viewer.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", 50*time.Millisecond, "Time between frames")

	return cmd
}
