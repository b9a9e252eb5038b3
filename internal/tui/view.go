package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kms-app/dinnerboard/internal/constants"
	"github.com/kms-app/dinnerboard/internal/gate"
	"github.com/kms-app/dinnerboard/internal/models"
)

const nameColWidth = 12

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case constants.StateGate:
		return docStyle.Render(m.viewGate())
	case constants.StateEditNickname, constants.StateEditTime:
		return docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		return docStyle.Render(m.viewConfirmDelete())
	}
	return docStyle.Render(m.viewBoard())
}

func (m Model) viewGate() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dinnerboard"))
	b.WriteString("\n\n")
	b.WriteString("Enter the passphrase\n\n")
	b.WriteString(strings.Repeat("•", m.gate.BufferLen()))
	b.WriteString("\n\n")

	if m.gate.State() == gate.StateRejected {
		b.WriteString(dangerStyle.Render("Wrong passphrase"))
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(fmt.Sprintf("Locked out for %.0fs", m.gate.RemainingCooldown().Seconds())))
	} else {
		b.WriteString(mutedStyle.Render("esc to quit"))
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	return dangerStyle.Render("Really remove your record from the shared board?") +
		"\n\n" + mutedStyle.Render("y: delete  n: cancel")
}

func (m Model) viewBoard() string {
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("Dinner plans, next %d days", m.settings.WindowDays)))

	if m.loading && m.ctrl == nil {
		sections = append(sections, "Loading...")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}
	if m.ctrl == nil {
		sections = append(sections, dangerStyle.Render(m.notice))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, m.viewOwnRow(), m.viewEveryone(), m.viewLegend())

	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewOwnRow renders the editable row: one cell per window day, cursor
// highlighted, with the selected day's detail underneath.
func (m Model) viewOwnRow() string {
	window := m.ctrl.Window()
	record := m.ctrl.Record()

	var header, row strings.Builder
	header.WriteString(pad("", nameColWidth))
	name := m.nickname
	if name == "" {
		name = "(you)"
	}
	row.WriteString(ownRowStyle.Render(pad(name, nameColWidth)))

	for i, day := range window {
		label := pad(shortDay(day), 7)
		cell := pad(record[day].Status.Glyph(), 7)
		if i == m.cursor {
			label = selectedStyle.Render(label)
			cell = selectedStyle.Render(cell)
		} else {
			label = headerStyle.Render(label)
		}
		header.WriteString(label)
		row.WriteString(cell)
	}

	selected := window[m.cursor]
	a := record[selected]
	detail := fmt.Sprintf("%s: %s", selected, a.Status.Label())
	if a.Time != "" {
		detail += " at " + a.Time
	}

	return header.String() + "\n" + row.String() + "\n" + mutedStyle.Render(detail) + "\n"
}

func (m Model) viewEveryone() string {
	window := m.ctrl.Window()
	everyone := m.ctrl.Everyone()

	if len(everyone) == 0 {
		return mutedStyle.Render("(no plans published yet)") + "\n"
	}

	var b strings.Builder
	for _, rec := range everyone {
		b.WriteString(pad(rec.Nickname, nameColWidth))
		for _, day := range window {
			a, ok := rec.Answers[day]
			if !ok || !a.WellFormed() {
				b.WriteString(pad("", 7))
				continue
			}
			b.WriteString(pad(a.Status.Glyph(), 7))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewLegend() string {
	parts := make([]string, 0, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		parts = append(parts, fmt.Sprintf("%s=%s", st.Glyph(), st.Label()))
	}
	return mutedStyle.Render(strings.Join(parts, "  ")) + "\n"
}

func shortDay(dayKey string) string {
	if len(dayKey) == 10 {
		return dayKey[5:]
	}
	return dayKey
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
