package cmd

import (
	"github.com/onair-cli/onair/mini"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)
}

// miniCmd launches the prompt-driven player.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Launch the player with line-oriented prompts instead of the full TUI",
	Long:  `Pick episodes and control playback through simple prompts. Useful over slow connections or in terminals without alt-screen support.`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		c, err := loadCatalog()
		handleErr(err)

		p, err := newPlayer()
		handleErr(err)

		options := mini.Options{
			Catalog:    c,
			Player:     p,
			Downloader: newDownloader(),
		}
		handleErr(mini.Run(&options))
	},
}
