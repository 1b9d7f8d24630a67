package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fileman/internal/scan"
)

func newCountCommand(ctx *commandContext) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "count <directory>",
		Short: "Count the regular files in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}

			var total int
			var err error
			if recursive {
				total, err = scan.CountRecursive(args[0])
			} else {
				total, err = scan.Count(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), total)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")

	return cmd
}
