package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seitarof/gen-javadoc/internal/cli"
	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/locator"
	"github.com/seitarof/gen-javadoc/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	var o cli.Options
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the Javadoc tools over the Model Context Protocol (stdio)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.LoadConfig(".")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			server := mcp.New(version, cfg, locator.NewTreeSitterProvider(), generator.New(generator.NewSystemClock()))
			return server.ServeStdio()
		},
	}
	cli.BindConfigFlags(cmd.Flags(), &o)
	return cmd
}
