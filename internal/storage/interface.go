package storage

import "github.com/kms-app/dinnerboard/internal/models"

// Provider is the local write-through cache. It holds the session's own
// answers (keyed by owner identity so different identities on one device do
// not collide), the single global display name, and application settings.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Nickname (single global value)
	GetNickname() (string, error)
	SaveNickname(name string) error

	// Answers (one blob per owner identity). GetAnswers returns an empty
	// record when nothing is cached for the owner; reconciliation fills in
	// the defaults.
	GetAnswers(ownerID string) (models.AnswerRecord, error)
	SaveAnswers(ownerID string, rec models.AnswerRecord) error
	DeleteAnswers(ownerID string) error

	// Utils
	GetConfigPath() string
}
