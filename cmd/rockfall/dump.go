package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plus3/rockfall/sim"
)

func (a *app) newDumpCmd() *cobra.Command {
	var (
		drops int64
		rows  int
		line  int
	)

	cmd := &cobra.Command{
		Use:   "dump [input]",
		Short: "Print the top of the well after a number of drops",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := a.pattern(args, line)
			if err != nil {
				return err
			}

			s, err := sim.New(pattern, a.simOptions()...)
			if err != nil {
				return err
			}
			height, err := s.Run(drops)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "height %d after %d drops\n", height, drops); err != nil {
				return err
			}
			return s.Dump(out, rows)
		},
	}

	cmd.Flags().Int64VarP(&drops, "drops", "n", partOneDrops, "Number of shapes to drop")
	cmd.Flags().IntVarP(&rows, "rows", "r", 20, "Number of rows to print")
	cmd.Flags().IntVar(&line, "line", 1, "Input line holding the jet pattern")

	return cmd
}
