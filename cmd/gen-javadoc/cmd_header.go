package main

import (
	"github.com/spf13/cobra"

	"github.com/seitarof/gen-javadoc/internal/cli"
)

func newHeaderCmd() *cobra.Command {
	var o cli.Options
	cmd := &cobra.Command{
		Use:   "header FILE",
		Short: "Generate the file header comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRunner(cmd).Header(args[0], &o)
		},
	}
	cli.BindHeaderFlags(cmd.Flags(), &o)
	return cmd
}
