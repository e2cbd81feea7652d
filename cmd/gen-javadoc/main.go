package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/seitarof/gen-javadoc/internal/cli"
	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/locator"
	"github.com/seitarof/gen-javadoc/internal/parser"
	"github.com/seitarof/gen-javadoc/internal/resolver"
)

var version = "dev"

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:          "gen-javadoc",
		Short:        "Generate Javadoc comments and file headers for Java sources",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeat for debug)")

	rootCmd.AddCommand(newMethodCmd())
	rootCmd.AddCommand(newHeaderCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunner(cmd *cobra.Command) cli.Runner {
	return cli.NewRunner(
		locator.NewTreeSitterProvider(),
		parser.New(),
		resolver.New(),
		generator.New(generator.NewSystemClock()),
		generator.NewFileWriter(),
		cmd.OutOrStdout(),
	)
}
