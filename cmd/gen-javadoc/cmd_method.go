package main

import (
	"github.com/spf13/cobra"

	"github.com/seitarof/gen-javadoc/internal/cli"
)

func newMethodCmd() *cobra.Command {
	var o cli.Options
	cmd := &cobra.Command{
		Use:   "method FILE --line N",
		Short: "Generate the Javadoc comment for the method at a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRunner(cmd).Method(cmd.Context(), args[0], &o)
		},
	}
	cli.BindMethodFlags(cmd.Flags(), &o)
	return cmd
}
