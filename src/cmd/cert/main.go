package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"certview/src/internal/app"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cert",
		Short:         "Certificate page tools: citation panel, page viewer, server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String(app.FlagConfig, "", "config file (default .certview.yaml or $XDG_CONFIG_HOME/certview/config.yaml)")
	cmd.PersistentFlags().BoolP(app.FlagVerbose, "v", false, "debug logging")
	return cmd
}

func execute() error {
	// Attach subcommands
	rootCmd.AddCommand(newCiteCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTidyCmd())
	rootCmd.AddCommand(newCacheCmd())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
