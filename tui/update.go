package tui

import (
	"strconv"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/onair-cli/onair/session"
)

// volumeStep is the volume change per key press.
const volumeStep = 0.1

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case completionMsg:
		msg()
		cmds = append(cmds, b.waitForCompletion())
	case mediaEventMsg:
		b.session.HandleEvent(session.Event(msg))
		cmds = append(cmds, b.waitForEvent())
	case catalogMsg:
		if msg.err != nil {
			b.notifier.Notify("Catalog reload failed: " + msg.err.Error())
		} else {
			b.setCatalog(msg.catalog)
			b.notifier.Notify("Catalog reloaded")
		}
		cmds = append(cmds, b.waitForCatalog())
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		switch b.state {
		case episodesState:
			cmds = append(cmds, b.updateEpisodes(msg))
		case errorState:
			cmds = append(cmds, b.updateError(msg))
		}
	}

	// Session calls above may have posted a notification that needs an expiry.
	cmds = append(cmds, b.notifier.Update(msg))
	return b, tea.Batch(cmds...)
}

func (b *statefulBubble) updateEpisodes(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	// While filtering every key belongs to the filter input.
	if b.episodesC.FilterState() == list.Filtering {
		b.episodesC, cmd = b.episodesC.Update(msg)
		return cmd
	}

	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		return tea.Quit
	case bubblesKey.Matches(msg, b.keymap.activate):
		b.session.ActivateTrigger(b.selectedTrigger())
	case bubblesKey.Matches(msg, b.keymap.playPause):
		b.session.TogglePlayPause()
	case bubblesKey.Matches(msg, b.keymap.rewind):
		b.session.Rewind()
	case bubblesKey.Matches(msg, b.keymap.forward):
		b.session.Forward()
	case bubblesKey.Matches(msg, b.keymap.seek):
		n, _ := strconv.Atoi(msg.String())
		b.session.SeekAbsolute(float64(n) / 10)
	case bubblesKey.Matches(msg, b.keymap.rate):
		b.session.CyclePlaybackRate()
	case bubblesKey.Matches(msg, b.keymap.volumeUp):
		b.session.SetVolume(b.session.Snapshot().Volume + volumeStep)
	case bubblesKey.Matches(msg, b.keymap.volumeDown):
		b.session.SetVolume(b.session.Snapshot().Volume - volumeStep)
	case bubblesKey.Matches(msg, b.keymap.mute):
		b.session.ToggleMute()
	case bubblesKey.Matches(msg, b.keymap.download):
		b.session.RequestDownload()
	case bubblesKey.Matches(msg, b.keymap.openDownloads):
		return b.openDownloads()
	default:
		b.episodesC, cmd = b.episodesC.Update(msg)
	}

	return cmd
}

func (b *statefulBubble) updateError(msg tea.KeyMsg) tea.Cmd {
	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		return tea.Quit
	case bubblesKey.Matches(msg, b.keymap.back):
		b.lastError = nil
		b.setState(episodesState)
	}
	return nil
}
