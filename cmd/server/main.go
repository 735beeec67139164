// Command yoda runs the Your Yoda API server.
//
//	yoda serve --port 5002 --store sqlite --db-path data/yoda.db
//	yoda version
//
// Settings come from flags, environment variables, an optional YAML file
// (--config) and a .env file, in that order of precedence.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := serveCmd()

	root := &cobra.Command{
		Use:           "yoda",
		Short:         "Your Yoda - supportive letters for the day ahead",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// With no subcommand, serve.
		RunE: serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "yoda", Version)
		},
	}
}
