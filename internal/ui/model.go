// Package ui provides ephemeral notification state shared by the terminal hosts.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/onair-cli/onair/style"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Model holds the most recent notification. It satisfies session.Notifier.
type Model struct {
	notification string
	notifiedAt   time.Time
	pending      bool
}

// ClearNotificationMsg clears the notification posted at At, unless a newer one replaced it.
type ClearNotificationMsg struct {
	At time.Time
}

// Notify shows message until Lifetime elapses.
func (m *Model) Notify(message string) {
	m.notification = message
	m.notifiedAt = time.Now()
	m.pending = true
}

// Notification returns the visible notification, if any.
func (m *Model) Notification() string {
	return m.notification
}

// ClearNotification returns a delayed tea.Cmd that clears the notification posted at at.
func ClearNotification(at time.Time) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{At: at}
	})
}

// Update processes clear messages and schedules the expiry of a freshly posted notification.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ClearNotificationMsg); ok && msg.At.Equal(m.notifiedAt) {
		m.notification = ""
	}

	if m.pending {
		m.pending = false
		return ClearNotification(m.notifiedAt)
	}
	return nil
}

// View appends the current notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] = lines[len(lines)-1] + "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
