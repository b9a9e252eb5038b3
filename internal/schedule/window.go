package schedule

import (
	"time"

	"github.com/kms-app/dinnerboard/internal/constants"
	"github.com/kms-app/dinnerboard/internal/models"
)

// Window is the rolling horizon of consecutive day-keys, in ascending
// calendar order. It is regenerated each session and never persisted.
type Window []string

// Generate produces the window of consecutive day-keys starting at ref's
// calendar day, using ref's location as the day boundary. Pure; callers fix
// the window once per session and reuse it for all merges.
func Generate(ref time.Time, days int) Window {
	if days <= 0 {
		days = constants.WindowDays
	}
	w := make(Window, 0, days)
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	for i := 0; i < days; i++ {
		w = append(w, start.AddDate(0, 0, i).Format(constants.DateFormat))
	}
	return w
}

// Contains reports whether key is one of the window's day-keys.
func (w Window) Contains(key string) bool {
	for _, day := range w {
		if day == key {
			return true
		}
	}
	return false
}

// Reconcile aligns a previously stored record onto the current window. For
// each window day the stored answer is kept verbatim when it is well-formed;
// missing days and legacy bare-status entries start over as undecided. Stored
// keys outside the window are dropped, which is how past days expire as the
// window slides forward. Idempotent: reconciling an already reconciled record
// against the same window is a no-op.
func Reconcile(stored models.AnswerRecord, w Window) models.AnswerRecord {
	rec := make(models.AnswerRecord, len(w))
	for _, day := range w {
		if a, ok := stored[day]; ok && a.WellFormed() {
			rec[day] = a
			continue
		}
		rec[day] = models.Default()
	}
	return rec
}

// Blank returns an all-undecided record for the window, the state a
// participant is reset to after deleting their data.
func Blank(w Window) models.AnswerRecord {
	rec := make(models.AnswerRecord, len(w))
	for _, day := range w {
		rec[day] = models.Default()
	}
	return rec
}
