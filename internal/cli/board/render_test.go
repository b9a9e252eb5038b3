package board

import (
	"strings"
	"testing"

	"github.com/kms-app/dinnerboard/internal/models"
	"github.com/kms-app/dinnerboard/internal/schedule"
)

var testWindow = schedule.Window{
	"2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13",
	"2026-03-14", "2026-03-15", "2026-03-16",
}

func TestResolveDay(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"today", "today", "2026-03-10", false},
		{"today uppercase", "TODAY", "2026-03-10", false},
		{"offset zero", "+0", "2026-03-10", false},
		{"offset mid-window", "+3", "2026-03-13", false},
		{"offset last day", "+6", "2026-03-16", false},
		{"offset past window", "+7", "", true},
		{"offset not a number", "+x", "", true},
		{"explicit in window", "2026-03-12", "2026-03-12", false},
		{"explicit before window", "2026-03-09", "", true},
		{"explicit after window", "2026-03-17", "", true},
		{"malformed date", "03/12/2026", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDay(tt.arg, testWindow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveDay(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveDay(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestCell(t *testing.T) {
	answers := models.AnswerRecord{
		"2026-03-10": {Status: models.StatusEatEarly},
		"2026-03-11": {Status: "mystery"},
	}

	if got := cell(answers, "2026-03-10"); got != "〇" {
		t.Errorf("cell() = %q, want eat-early glyph", got)
	}
	if got := cell(answers, "2026-03-11"); got != "" {
		t.Errorf("cell() = %q for a malformed entry, want blank", got)
	}
	if got := cell(answers, "2026-03-12"); got != "" {
		t.Errorf("cell() = %q for a missing day, want blank", got)
	}
}

func TestRenderDayHeaders(t *testing.T) {
	out := Render(testWindow, nil)

	if !strings.Contains(out, "03-10") {
		t.Error("Render() header is missing the first day column")
	}
	if strings.Contains(out, "2026-03-10") {
		t.Error("Render() header shows the full date, want MM-DD")
	}
	if !strings.Contains(out, "no plans published yet") {
		t.Error("Render() with no records is missing the empty notice")
	}
}

func TestRenderRows(t *testing.T) {
	records := []models.UserRecord{
		{
			OwnerID:  "owner-1",
			Nickname: "Alice",
			Answers: models.AnswerRecord{
				"2026-03-10": {Status: models.StatusNotEat},
			},
		},
		{
			OwnerID:  "owner-2",
			Nickname: "Bob",
			Answers:  models.AnswerRecord{},
		},
	}

	out := Render(testWindow, records)
	if !strings.Contains(out, "Alice") || !strings.Contains(out, "Bob") {
		t.Fatalf("Render() is missing participant rows:\n%s", out)
	}
	if !strings.Contains(out, models.StatusNotEat.Glyph()) {
		t.Errorf("Render() is missing Alice's glyph:\n%s", out)
	}
}

func TestRenderOwn(t *testing.T) {
	rec := schedule.Blank(testWindow)
	rec["2026-03-12"] = models.DayAnswer{Status: models.StatusEatLate, Time: "21:00"}

	out := RenderOwn(testWindow, rec)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(testWindow) {
		t.Fatalf("RenderOwn() has %d lines, want %d", len(lines), len(testWindow))
	}
	if !strings.Contains(out, "2026-03-12") || !strings.Contains(out, "at 21:00") {
		t.Errorf("RenderOwn() is missing the annotated day:\n%s", out)
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 5); got != "ab   " {
		t.Errorf("pad() = %q, want %q", got, "ab   ")
	}
	if got := pad("abcdef", 5); got != "abcdef" {
		t.Errorf("pad() must not truncate, got %q", got)
	}
	// Wide glyphs count as one cell
	if got := pad("〇", 3); got != "〇  " {
		t.Errorf("pad() = %q, want glyph plus two spaces", got)
	}
}
