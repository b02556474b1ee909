package cmd

import (
	"fks-execution/config"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X fks-execution/cmd.Version=...".
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "fks-execution",
	Short:         "FKS Execution API",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          Start,
}

func init() {
	rootCmd.Flags().String("listen", config.DefaultListen, "address to listen on (ip:port)")
	rootCmd.Flags().Bool("exit-on-shutdown", false, "exit after a shutdown signal instead of idling")

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-encoding", "json", "log encoding (json, console)")

	rootCmd.AddCommand(probeCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
