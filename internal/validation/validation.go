package validation

import (
	"fmt"
	"strings"

	"github.com/kms-app/dinnerboard/internal/models"
	"github.com/kms-app/dinnerboard/internal/utils"
)

const maxNicknameLen = 32

// ValidateNickname checks that a display name is usable: non-blank after
// trimming and short enough for a table column.
func ValidateNickname(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("display name cannot be empty")
	}
	if len(trimmed) > maxNicknameLen {
		return fmt.Errorf("display name cannot exceed %d characters", maxNicknameLen)
	}
	return nil
}

// ParseStatus parses a user-supplied status value, accepting both the stored
// form ("eat_early") and a dash-separated spelling ("eat-early").
func ParseStatus(s string) (models.AnswerStatus, error) {
	normalized := models.AnswerStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !normalized.Valid() {
		return "", fmt.Errorf("invalid status %q (expected one of: %s)", s, strings.Join(StatusNames(), ", "))
	}
	return normalized, nil
}

// StatusNames returns the accepted status spellings in display order.
func StatusNames() []string {
	names := make([]string, 0, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		names = append(names, string(st))
	}
	return names
}

// ValidateDayKey checks a day-key argument.
func ValidateDayKey(dayKey string) error {
	if !utils.ValidateDayKey(dayKey) {
		return fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", dayKey)
	}
	return nil
}

// ValidateTimeAnnotation checks the optional HH:MM dinner-time annotation.
// An empty annotation is valid.
func ValidateTimeAnnotation(timeStr string) error {
	if timeStr == "" {
		return nil
	}
	if !utils.ValidateTimeFormat(timeStr) {
		return fmt.Errorf("invalid time %q (expected HH:MM)", timeStr)
	}
	return nil
}
