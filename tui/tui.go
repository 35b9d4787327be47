// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/onair-cli/onair/catalog"
	"github.com/onair-cli/onair/player"
	"github.com/onair-cli/onair/session"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Catalog    *catalog.Catalog
	Player     player.Player
	Downloader session.Downloader
	// Watch reloads the catalog when its file changes.
	Watch bool
}

// Run initializes and executes the primary Bubble Tea application loop.
// The player is closed when the program exits.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.close()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
