package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	envFile string
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "seeker",
	Short: "Chat with Helix to find professionals and draft outreach sequences",
	Long: `Seeker is a terminal client for the Helix recruiting assistant.

Running it without a subcommand opens the chat. The assistant searches for
matching professionals and drafts multi-step outreach sequences, which appear
in the workspace panel next to the conversation.

Quick Start:
  seeker signup --name "Ada" --email ada@example.com --company Acme
  seeker                              # open the chat
  seeker sessions list                # list your conversations
  seeker export <session-id> -f md    # write a transcript`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Load configuration from this env file instead of ./.env")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
