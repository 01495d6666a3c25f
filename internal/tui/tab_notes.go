package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/optimscale/internal/model"
	"github.com/theirongolddev/optimscale/internal/scenario"
	"github.com/theirongolddev/optimscale/internal/tui/components"
	"github.com/theirongolddev/optimscale/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// notesState tracks the annotation form.
type notesState struct {
	adding  bool
	chart   string // metric key being annotated
	periods []string
	period  int // index into periods
	input   textinput.Model
}

func newNoteInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "what happened this period?"
	ti.CharLimit = 200
	ti.Width = 50
	return ti
}

// startNote opens the annotation form for the focused chart, preselecting
// its latest historical period.
func (a App) startNote() (tea.Model, tea.Cmd) {
	c := a.focusedChart()
	if c == nil {
		return a, nil
	}
	periods := model.Periods(c.Seed())
	if len(periods) == 0 {
		a.setFlash("Nothing to annotate in the selected range", true)
		return a, nil
	}

	ti := newNoteInput()
	cmd := ti.Focus()
	a.notes = notesState{
		adding:  true,
		chart:   c.Key(),
		periods: periods,
		period:  len(periods) - 1,
		input:   ti,
	}
	a.activeTab = tabNotes
	return a, cmd
}

func (a App) updateNoteInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.notes.adding = false
		return a, nil
	case "up":
		if a.notes.period > 0 {
			a.notes.period--
		}
		return a, nil
	case "down":
		if a.notes.period < len(a.notes.periods)-1 {
			a.notes.period++
		}
		return a, nil
	case "enter":
		c, err := a.dash.Chart(a.notes.chart)
		if err != nil {
			a.notes.adding = false
			a.setFlash(err.Error(), true)
			return a, nil
		}
		period := a.notes.periods[a.notes.period]
		if _, err := c.AddAnnotation(period, a.notes.input.Value()); err != nil {
			if errors.Is(err, scenario.ErrInvalidAnnotation) {
				a.setFlash("Note needs some text", true)
				return a, nil
			}
			a.notes.adding = false
			a.setFlash(err.Error(), true)
			return a, nil
		}
		a.notes.adding = false
		a.setFlash(fmt.Sprintf("Note added to %s · %s", c.Title(), period), false)
		return a, nil
	}

	var cmd tea.Cmd
	a.notes.input, cmd = a.notes.input.Update(msg)
	return a, cmd
}

type noteRow struct {
	chart string
	note  model.Annotation
}

func (a App) renderNotesTab(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)

	var b strings.Builder

	if a.notes.adding {
		title := a.notes.chart
		if c, err := a.dash.Chart(a.notes.chart); err == nil {
			title = c.Title()
		}
		period := a.notes.periods[a.notes.period]
		var form strings.Builder
		form.WriteString(labelStyle.Render("Chart:   ") + valueStyle.Render(title) + "\n")
		form.WriteString(labelStyle.Render("Period:  ") + accentStyle.Render("◂ "+period+" ▸"))
		if c, err := a.dash.Chart(a.notes.chart); err == nil {
			if n := len(c.AnnotationFor(period)); n > 0 {
				form.WriteString(dimStyle.Render(fmt.Sprintf("  %d already", n)))
			}
		}
		form.WriteString("\n")
		form.WriteString(labelStyle.Render("Note:    ") + a.notes.input.View() + "\n\n")
		form.WriteString(dimStyle.Render("[↑/↓] period  [Enter] save  [Esc] cancel"))
		b.WriteString(components.FocusCard("Add Note", form.String(), cw))
		b.WriteString("\n")
	}

	var rows []noteRow
	for _, c := range a.dash.Charts() {
		for _, n := range c.Annotations() {
			rows = append(rows, noteRow{chart: c.Title(), note: n})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].note.CreatedAt.After(rows[j].note.CreatedAt)
	})

	var list strings.Builder
	if len(rows) == 0 {
		list.WriteString(dimStyle.Render("No notes yet. Press [a] to annotate the focused chart."))
	}
	chartW := 18
	periodW := 9
	timeW := 13
	noteW := max(10, innerW-chartW-periodW-timeW)
	for i, r := range rows {
		if i > 0 {
			list.WriteString("\n")
		}
		list.WriteString(accentStyle.Width(chartW).Render(truncStr(r.chart, chartW-1)))
		list.WriteString(labelStyle.Width(periodW).Render(r.note.Period))
		list.WriteString(valueStyle.Width(noteW).Render(truncStr(r.note.Note, noteW-1)))
		list.WriteString(dimStyle.Width(timeW).Align(lipgloss.Right).Render(r.note.CreatedAt.Format("Jan 2 15:04")))
	}
	b.WriteString(components.ContentCard(fmt.Sprintf("Notes (%d)", len(rows)), list.String(), cw))
	return b.String()
}
