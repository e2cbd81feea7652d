package main

import (
	"github.com/spf13/cobra"

	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/locator"
	"github.com/seitarof/gen-javadoc/internal/lsp"
)

func newLSPCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, locator.NewTreeSitterProvider(), generator.New(generator.NewSystemClock()))
			if listen != "" {
				return server.RunTCP(listen)
			}
			return server.RunStdio()
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "serve over TCP on this address instead of stdio")
	return cmd
}
