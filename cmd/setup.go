package cmd

import (
	"errors"
	"fmt"

	"github.com/onair-cli/onair/catalog"
	"github.com/onair-cli/onair/color"
	"github.com/onair-cli/onair/download"
	"github.com/onair-cli/onair/filesystem"
	"github.com/onair-cli/onair/icon"
	"github.com/onair-cli/onair/key"
	"github.com/onair-cli/onair/player"
	"github.com/onair-cli/onair/style"
	"github.com/onair-cli/onair/util"
	"github.com/onair-cli/onair/where"
	"github.com/spf13/viper"
)

// loadCatalog reads the configured catalog, pointing at "catalog init" when none exists yet.
func loadCatalog() (*catalog.Catalog, error) {
	path := where.Catalog()

	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf(
			"no catalog found at %s, create one with %s",
			path,
			style.Fg(color.Yellow)("onair catalog init"),
		)
	}

	return catalog.Load(path)
}

// newPlayer builds the configured playback backend and starts it
// before any host loop exists.
func newPlayer() (player.Player, error) {
	p, err := player.New(viper.GetString(key.Player))
	if err != nil {
		return nil, err
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Starting %s...", icon.Get(icon.Progress), viper.GetString(key.Player)))
	err = p.Start()
	erase()
	if err != nil {
		return nil, err
	}

	return p, nil
}

func newDownloader() *download.Downloader {
	return download.New(filesystem.API(), where.Downloads())
}

// errUnknownEpisode reports a slug missing from the catalog with the nearest match.
func errUnknownEpisode(c *catalog.Catalog, slug string) error {
	closest := c.Closest(slug)
	if closest == "" {
		return catalog.ErrNoEpisodes
	}

	return errors.New(fmt.Sprintf(
		"unknown episode %s, did you mean %s?",
		style.Fg(color.Red)(slug),
		style.Fg(color.Yellow)(closest),
	))
}
