package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/onair-cli/onair/catalog"
	"github.com/onair-cli/onair/color"
	"github.com/onair-cli/onair/icon"
	"github.com/onair-cli/onair/session"
	"github.com/onair-cli/onair/style"
	"github.com/onair-cli/onair/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringSliceP("lang", "l", lo.Map(catalog.Languages, func(l catalog.Language, _ int) string {
		return l.Tag
	}), "Languages to download")
	lo.Must0(downloadCmd.RegisterFlagCompletionFunc("lang", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(catalog.Languages, func(l catalog.Language, _ int) string {
			return l.Tag
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// downloadCmd saves episode audio without opening the player.
var downloadCmd = &cobra.Command{
	Use:     "download [episode]",
	Short:   "Download the audio of an episode into the downloads directory",
	Args:    cobra.ExactArgs(1),
	Example: "  onair download episode-1 --lang en",
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		c, err := loadCatalog()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return lo.Map(c.Episodes, func(e *catalog.Episode, _ int) string {
			return e.Slug
		}), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog()
		handleErr(err)

		episode, ok := c.Get(args[0]).Get()
		if !ok {
			// A single fuzzy hit is unambiguous enough.
			found := c.Find(args[0])
			if len(found) != 1 {
				handleErr(errUnknownEpisode(c, args[0]))
			}
			episode = found[0]
		}

		langs := lo.Must(cmd.Flags().GetStringSlice("lang"))
		triggers := lo.Filter(episode.Triggers(), func(t *session.Trigger, _ int) bool {
			return lo.Contains(langs, t.LanguageTag)
		})

		available := lo.Reject(triggers, func(t *session.Trigger, _ int) bool {
			return t.Disabled
		})
		if len(available) == 0 {
			handleErr(fmt.Errorf("%s has no audio for %v yet", episode.Title, langs))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		downloader := newDownloader()
		for _, t := range available {
			erase := util.PrintErasable(fmt.Sprintf(
				"%s Downloading %s...",
				icon.Get(icon.Progress),
				style.Fg(color.Purple)(t.DownloadFilename()),
			))
			path, err := downloader.Fetch(ctx, t.SourceURL, t.DownloadFilename())
			erase()
			handleErr(err)

			fmt.Printf(
				"%s saved %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				style.Fg(color.Yellow)(path),
			)
		}

		for _, t := range triggers {
			if t.Disabled {
				fmt.Printf("%s %s: %s\n", icon.Get(icon.Fail), t.LanguageTag, session.ComingSoonLabel)
			}
		}
	},
}
