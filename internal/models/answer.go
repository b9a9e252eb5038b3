package models

import (
	"encoding/json"
	"time"
)

// AnswerStatus is a participant's declaration for a single day.
type AnswerStatus string

const (
	StatusUndecided AnswerStatus = "undecided"
	StatusEatEarly  AnswerStatus = "eat_early"
	StatusEatLate   AnswerStatus = "eat_late"
	StatusNotEat    AnswerStatus = "not_eat"
	StatusAwa       AnswerStatus = "awa"
)

// AllStatuses lists every status in display order.
var AllStatuses = []AnswerStatus{
	StatusEatEarly,
	StatusEatLate,
	StatusNotEat,
	StatusAwa,
	StatusUndecided,
}

// Valid reports whether s is one of the known statuses.
func (s AnswerStatus) Valid() bool {
	switch s {
	case StatusUndecided, StatusEatEarly, StatusEatLate, StatusNotEat, StatusAwa:
		return true
	}
	return false
}

// Glyph returns the single-cell table symbol for the status.
func (s AnswerStatus) Glyph() string {
	switch s {
	case StatusEatEarly:
		return "〇"
	case StatusEatLate:
		return "◇"
	case StatusNotEat:
		return "×"
	case StatusAwa:
		return "-"
	case StatusUndecided:
		return "△"
	}
	return "?"
}

// Label returns the human-readable description of the status.
func (s AnswerStatus) Label() string {
	switch s {
	case StatusEatEarly:
		return "eating (before 21:00)"
	case StatusEatLate:
		return "eating (after 21:00)"
	case StatusNotEat:
		return "not eating"
	case StatusAwa:
		return "awa dance"
	case StatusUndecided:
		return "undecided"
	}
	return "unknown"
}

// DayAnswer is one day's declaration: the status plus an optional free-form
// time annotation (e.g. "19:30"). The annotation is preserved across merges
// but carries no meaning for status logic.
type DayAnswer struct {
	Status AnswerStatus `json:"status"`
	Time   string       `json:"time"`
}

// UnmarshalJSON tolerates older stored shapes. Early records stored the bare
// status string instead of the {status,time} object; those (and any other
// malformed entry) decode to the zero DayAnswer, which reconciliation treats
// as not-yet-answered.
func (a *DayAnswer) UnmarshalJSON(data []byte) error {
	type dayAnswer DayAnswer
	var v dayAnswer
	if err := json.Unmarshal(data, &v); err != nil {
		*a = DayAnswer{}
		return nil
	}
	*a = DayAnswer(v)
	return nil
}

// WellFormed reports whether the answer is in the current record shape with a
// known status. Legacy and garbage entries decode to a zero value and fail
// this check.
func (a DayAnswer) WellFormed() bool {
	return a.Status.Valid()
}

// Default returns the answer a fresh day starts with.
func Default() DayAnswer {
	return DayAnswer{Status: StatusUndecided, Time: ""}
}

// AnswerRecord maps each day-key of the current window to its answer.
type AnswerRecord map[string]DayAnswer

// DecodeAnswers decodes a stored answers blob leniently: unknown keys are
// kept (reconciliation drops them), malformed values become zero answers.
func DecodeAnswers(data []byte) (AnswerRecord, error) {
	if len(data) == 0 {
		return AnswerRecord{}, nil
	}
	var rec AnswerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		rec = AnswerRecord{}
	}
	return rec, nil
}

// UserRecord is one participant's full declaration set as stored remotely.
type UserRecord struct {
	OwnerID   string       `json:"owner_id"`
	Nickname  string       `json:"nickname"`
	Answers   AnswerRecord `json:"answers"`
	UpdatedAt time.Time    `json:"updated_at"`
}
