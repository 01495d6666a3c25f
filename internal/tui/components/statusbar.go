package components

import (
	"strings"

	"github.com/theirongolddev/optimscale/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status is what the bottom bar shows besides the key hints.
type Status struct {
	Flash    string // transient message, e.g. "Marketing Spend updated"
	FlashErr bool
	Activity string // spinner + label while an export runs
	Range    string
	Info     string // fit degree, layout
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	flashStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	if s.FlashErr {
		flashStyle = flashStyle.Foreground(t.Orange)
	}
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	left := base.Render(" [?]help  [q]uit")
	if s.Activity != "" {
		left += base.Render("  ") + accent.Render(s.Activity)
	} else if s.Flash != "" {
		left += base.Render("  ") + flashStyle.Render(s.Flash)
	}

	var rightParts []string
	if s.Range != "" {
		rightParts = append(rightParts, s.Range)
	}
	if s.Info != "" {
		rightParts = append(rightParts, s.Info)
	}
	right := base.Render(strings.Join(rightParts, " · ") + " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Not enough room: drop the right side first.
		right = ""
		padding = width - lipgloss.Width(left)
		if padding < 0 {
			padding = 0
		}
	}

	return left + base.Render(strings.Repeat(" ", padding)) + right
}
