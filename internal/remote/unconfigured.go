package remote

import (
	"errors"

	"github.com/kms-app/dinnerboard/internal/models"
)

// ErrNotConfigured is returned by every operation of the placeholder store
// used when no shared store connection is set up.
var ErrNotConfigured = errors.New("no shared store configured, run 'dinnerboard remote set <connection-string>'")

type unconfigured struct{}

// Unconfigured returns a Store whose every operation fails with
// ErrNotConfigured. It keeps local editing usable before the shared store
// is set up; the controller surfaces the failures as notices.
func Unconfigured() Store {
	return unconfigured{}
}

func (unconfigured) Init() error  { return ErrNotConfigured }
func (unconfigured) Load() error  { return ErrNotConfigured }
func (unconfigured) Close() error { return nil }

func (unconfigured) PutRecord(models.UserRecord) (models.UserRecord, error) {
	return models.UserRecord{}, ErrNotConfigured
}

func (unconfigured) GetAllRecords() ([]models.UserRecord, error) {
	return nil, ErrNotConfigured
}

func (unconfigured) DeleteRecord(string) error {
	return ErrNotConfigured
}
