package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "warserver",
		Short: "Multiplayer server for the card game War",
		Long: `warserver runs a TCP server for the card game War.

Clients connect over TCP and exchange newline-terminated text messages.
Waiting clients are paired first-come-first-served into two-player games,
which the server drives round by round until one player holds all 52 cards.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
