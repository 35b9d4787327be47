// Package cmd implements the command-line interface for onair.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/onair-cli/onair/color"
	"github.com/onair-cli/onair/constant"
	"github.com/onair-cli/onair/icon"
	"github.com/onair-cli/onair/key"
	"github.com/onair-cli/onair/log"
	"github.com/onair-cli/onair/player"
	"github.com/onair-cli/onair/style"
	"github.com/onair-cli/onair/tui"
	"github.com/onair-cli/onair/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("catalog", "C", "", "Path to the episode catalog")
	lo.Must0(viper.BindPFlag(key.CatalogPath, rootCmd.PersistentFlags().Lookup("catalog")))

	rootCmd.PersistentFlags().StringP("player", "P", "", "Media engine, or a path to the mpv binary")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return player.Available(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.Player, rootCmd.PersistentFlags().Lookup("player")))

	rootCmd.PersistentFlags().StringP("lang", "L", "", "Language played before an episode is chosen (ja, en)")
	lo.Must0(viper.BindPFlag(key.PlayerLanguage, rootCmd.PersistentFlags().Lookup("lang")))

	rootCmd.Flags().BoolP("watch", "w", false, "Reload the catalog when the file changes")
	lo.Must0(viper.BindPFlag(key.CatalogWatch, rootCmd.Flags().Lookup("watch")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd defines the entry point for onair.
var rootCmd = &cobra.Command{
	Use:   constant.Onair,
	Short: "A terminal player for bilingual podcast episodes",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal player for bilingual podcast episodes"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		c, err := loadCatalog()
		handleErr(err)

		p, err := newPlayer()
		handleErr(err)

		options := tui.Options{
			Catalog:    c,
			Player:     p,
			Downloader: newDownloader(),
			Watch:      viper.GetBool(key.CatalogWatch),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
