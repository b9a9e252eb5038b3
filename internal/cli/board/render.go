package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kms-app/dinnerboard/internal/models"
	"github.com/kms-app/dinnerboard/internal/schedule"
)

const nameColWidth = 12

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	nameStyle   = lipgloss.NewStyle().Bold(true)
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Legend describes the board glyphs.
func Legend() string {
	parts := make([]string, 0, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		parts = append(parts, fmt.Sprintf("%s=%s", st.Glyph(), st.Label()))
	}
	return legendStyle.Render(strings.Join(parts, "  "))
}

// Render produces the merged table of everyone's declarations for the
// window. Day columns show MM-DD; a cell is blank when a participant's
// stored record has no well-formed entry for that day (their record
// predates the day or postdates the window).
func Render(window schedule.Window, records []models.UserRecord) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(pad("Name", nameColWidth)))
	for _, day := range window {
		b.WriteString(headerStyle.Render(pad(shortDay(day), 7)))
	}
	b.WriteString("\n")

	if len(records) == 0 {
		b.WriteString(legendStyle.Render("(no plans published yet)"))
		b.WriteString("\n")
		return b.String()
	}

	for _, rec := range records {
		b.WriteString(nameStyle.Render(pad(rec.Nickname, nameColWidth)))
		for _, day := range window {
			b.WriteString(pad(cell(rec.Answers, day), 7))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderOwn produces the session's own row with full status words, used as
// feedback after an edit.
func RenderOwn(window schedule.Window, rec models.AnswerRecord) string {
	var b strings.Builder
	for _, day := range window {
		a := rec[day]
		line := fmt.Sprintf("%s  %s %s", day, a.Status.Glyph(), a.Status.Label())
		if a.Time != "" {
			line += fmt.Sprintf(" at %s", a.Time)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func cell(answers models.AnswerRecord, day string) string {
	a, ok := answers[day]
	if !ok || !a.WellFormed() {
		return ""
	}
	return a.Status.Glyph()
}

func shortDay(dayKey string) string {
	if len(dayKey) == 10 {
		return dayKey[5:]
	}
	return dayKey
}

// pad right-pads to width, accounting for wide glyph cells as single runes.
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
