// Package toast provides auto-dismissing notifications.
package toast

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Haree123/document-editor/style"
)

// Level classifies toast severity.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

const (
	maxToasts = 3
	ttl       = 4 * time.Second
)

// ExpireMsg prunes expired toasts when it arrives.
type ExpireMsg struct{}

type toast struct {
	message string
	level   Level
	expiry  time.Time
}

// Model manages a queue of auto-dismissing notifications.
type Model struct {
	queue []toast
	now   func() time.Time
}

// New creates an empty Model.
func New() Model {
	return Model{now: time.Now}
}

// Add enqueues a notification and returns the command that dismisses it.
// Oldest toasts are dropped when the queue exceeds maxToasts.
func (m *Model) Add(message string, level Level) tea.Cmd {
	m.queue = append(m.queue, toast{
		message: message,
		level:   level,
		expiry:  m.now().Add(ttl),
	})
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg { return ExpireMsg{} })
}

// Expire prunes expired toasts.
func (m *Model) Expire() {
	now := m.now()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
}

// Len is the number of visible toasts.
func (m Model) Len() int { return len(m.queue) }

// View renders visible toasts as right-aligned lines.
func (m Model) View(width int) string {
	if len(m.queue) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.queue))
	for _, t := range m.queue {
		icon, st := iconStyle(t.level)
		rendered := st.Render(icon + " " + t.message)
		pad := width - lipgloss.Width(rendered)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+rendered)
	}
	return strings.Join(lines, "\n")
}

func iconStyle(level Level) (string, lipgloss.Style) {
	switch level {
	case Success:
		return "✓", style.ToastSuccess
	case Warning:
		return "⚠", style.ToastWarning
	case Error:
		return "✘", style.ToastError
	default:
		return "•", style.ToastInfo
	}
}
