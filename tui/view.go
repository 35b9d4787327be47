package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/onair-cli/onair/icon"
	"github.com/onair-cli/onair/style"
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case episodesState:
		output = b.viewEpisodes()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewTransport() string {
	if b.compactLayout() {
		return b.compact.View()
	}
	return b.panel.View(b.width)
}

func (b *statefulBubble) viewEpisodes() string {
	transport := lipgloss.NewStyle().Padding(1, 2, 0, 2).Render(b.viewTransport())
	return lipgloss.JoinVertical(lipgloss.Left, transport, listExtraPaddingStyle.Render(b.episodesC.View()))
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("%v", b.lastError))
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			wrap.String(errorBody, b.width),
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
