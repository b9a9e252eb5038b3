package remote

import (
	"errors"

	"github.com/kms-app/dinnerboard/internal/models"
)

// ErrRecordNotFound is returned by DeleteRecord when no record exists for
// the owner.
var ErrRecordNotFound = errors.New("no record found for owner")

// Store is the shared snapshot store holding every participant's current
// record, one document per owner identity. There are no partial updates: a
// record is replaced wholesale or not at all, and reads always return the
// full collection.
type Store interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// PutRecord overwrites the owner's record, stamping UpdatedAt at write
	// time. The stored record is returned with the stamped timestamp.
	PutRecord(rec models.UserRecord) (models.UserRecord, error)

	// GetAllRecords reads the whole collection in arrival order.
	GetAllRecords() ([]models.UserRecord, error)

	// DeleteRecord removes the owner's record. Returns ErrRecordNotFound if
	// no record exists.
	DeleteRecord(ownerID string) error
}
