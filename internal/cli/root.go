// Package cli contains the mediabot command line interface
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mediabot",
	Short: "Telegram bot that reposts media from YouTube and TikTok links",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
