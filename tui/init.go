package tui

import tea "github.com/charmbracelet/bubbletea"

// Init arms the forwarders that feed scheduled completions, player events and catalog reloads into Update.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(
		b.waitForCompletion(),
		b.waitForEvent(),
		b.waitForCatalog(),
		b.watchCatalog(),
	)
}
