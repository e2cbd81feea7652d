package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seitarof/gen-javadoc/internal/cli"
)

func newCheckCmd() *cobra.Command {
	var o cli.Options
	cmd := &cobra.Command{
		Use:   "check [DIR]",
		Short: "List methods and constructors that have no Javadoc",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			n, err := newRunner(cmd).Check(cmd.Context(), root, &o)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%d undocumented declarations", n)
			}
			return nil
		},
	}
	cli.BindCheckFlags(cmd.Flags(), &o)
	return cmd
}
