package main

import (
	"github.com/spf13/cobra"

	debugui_ebiten "github.com/plus3/rockfall/debugui/ebiten"
)

func (a *app) newViewCmd() *cobra.Command {
	var viewer viewerFlags
	opts := debugui_ebiten.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "view [input]",
		Short: "Replay the simulation in a window with a stats panel",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := a.newPlayer(args, &viewer)
			if err != nil {
				return err
			}
			return debugui_ebiten.Run("Rockfall", player, opts)
		},
	}

	viewer.register(cmd)
	cmd.Flags().IntVar(&opts.FramesPerTick, "frames-per-tick", opts.FramesPerTick, "Animation frames advanced per update")
	cmd.Flags().Float32Var(&opts.CellSize, "cell-size", opts.CellSize, "Cell size in pixels")

	return cmd
}
