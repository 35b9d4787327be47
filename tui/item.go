package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/onair-cli/onair/icon"
	"github.com/onair-cli/onair/key"
	"github.com/onair-cli/onair/session"
	"github.com/onair-cli/onair/style"
	"github.com/spf13/viper"
)

// listItem implements the list.Item interface for a playback trigger.
type listItem struct {
	trigger *session.Trigger
	state   session.TriggerState
}

func languageName(tag string) string {
	switch tag {
	case "ja":
		return "Japanese"
	case "en":
		return "English"
	default:
		return strings.ToUpper(tag)
	}
}

// Title is the episode title with the trigger label the session rendered.
func (t *listItem) Title() string {
	label := t.trigger.Label(t.state)

	switch {
	case t.trigger.Disabled:
		label = style.Faint(label)
	case t.state == session.TriggerPlaying:
		label = lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Wave) + " " + label)
	default:
		label = style.Fg(style.Subtext)(icon.Get(icon.Play) + " " + label)
	}

	return fmt.Sprintf("%s %s", t.trigger.DisplayTitle, label)
}

// Description shows the language and, when enabled, the source locator.
func (t *listItem) Description() string {
	description := languageName(t.trigger.LanguageTag)
	if viper.GetBool(key.TUIShowURLs) && t.trigger.SourceURL != "" {
		description += " • " + t.trigger.SourceURL
	}
	return description
}

// FilterValue returns the string used for list filtering.
func (t *listItem) FilterValue() string {
	return t.trigger.DisplayTitle + " " + languageName(t.trigger.LanguageTag)
}
