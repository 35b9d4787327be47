package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/onair-cli/onair/catalog"
	"github.com/onair-cli/onair/log"
	"github.com/onair-cli/onair/open"
	"github.com/onair-cli/onair/session"
	"github.com/onair-cli/onair/where"
)

// completionMsg carries the completion of scheduled work back onto the loop.
type completionMsg func()

// mediaEventMsg is a player event forwarded onto the loop.
type mediaEventMsg session.Event

// catalogMsg is the result of a catalog reload.
type catalogMsg struct {
	catalog *catalog.Catalog
	err     error
}

func (b *statefulBubble) waitForCompletion() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-b.completionChannel:
			return completionMsg(f)
		case <-b.quitChannel:
			return nil
		}
	}
}

func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-b.eventChannel:
			return mediaEventMsg(ev)
		case <-b.quitChannel:
			return nil
		}
	}
}

func (b *statefulBubble) waitForCatalog() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.catalogChannel:
			return msg
		case <-b.quitChannel:
			return nil
		}
	}
}

// watchCatalog starts hot reloading of the catalog file.
func (b *statefulBubble) watchCatalog() tea.Cmd {
	if !b.options.Watch || b.catalog == nil || b.catalog.Path == "" {
		return nil
	}

	path := b.catalog.Path
	return func() tea.Msg {
		err := catalog.Watch(path, func(c *catalog.Catalog, err error) {
			select {
			case b.catalogChannel <- catalogMsg{catalog: c, err: err}:
			case <-b.quitChannel:
			}
		})
		if err != nil {
			log.Warnf("watch catalog: %v", err)
		}
		return nil
	}
}

// openDownloads reveals the downloads directory with the system handler.
func (b *statefulBubble) openDownloads() tea.Cmd {
	return func() tea.Msg {
		if err := open.Start(where.Downloads()); err != nil {
			return fmt.Errorf("open downloads: %w", err)
		}
		return nil
	}
}
