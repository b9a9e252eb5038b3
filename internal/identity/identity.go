package identity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zalando/go-keyring"

	"github.com/kms-app/dinnerboard/internal/constants"
	"github.com/kms-app/dinnerboard/internal/logger"
)

var (
	// ErrUnavailable is returned when no identity could be established
	ErrUnavailable = errors.New("device identity unavailable")
)

// Provider establishes the anonymous per-device owner identity. All record
// ownership keys off the token it returns.
type Provider interface {
	// Establish returns the device's identity token, minting one on first use.
	Establish() (string, error)
}

// KeyringProvider mints a uuid once per device and persists it in the OS
// keyring, so the identity survives across sessions as far as the keyring
// itself does.
type KeyringProvider struct{}

func NewKeyringProvider() KeyringProvider {
	return KeyringProvider{}
}

func (KeyringProvider) Establish() (string, error) {
	token, err := keyring.Get(constants.AppName, constants.KeyringIdentityUser)
	if err == nil {
		return token, nil
	}
	if err != keyring.ErrNotFound {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	token = uuid.NewString()
	if err := keyring.Set(constants.AppName, constants.KeyringIdentityUser, token); err != nil {
		return "", fmt.Errorf("%w: failed to persist identity: %v", ErrUnavailable, err)
	}
	logger.Info("Minted new device identity")
	return token, nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring is available but empty; any other error
	// likely indicates the keyring is not usable
	return err == nil || err == keyring.ErrNotFound
}
