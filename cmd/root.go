package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Terminal client for a Dou Dizhu recommendation engine",
	Long: `assistant relays a Dou Dizhu game, seen from one seat, to a remote rules
and recommendation engine. Type your own plays and your opponents' plays as they
happen; the engine validates them and suggests your next move.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
