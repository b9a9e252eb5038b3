package constants

import "time"

// SessionState represents the current screen of the TUI application
type SessionState int

const (
	AppName           = "dinnerboard"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/dinnerboard/dinnerboard.db"

	// Keyring entries
	KeyringIdentityUser   = "device-identity"
	KeyringConnectionUser = "database-connection"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used for the optional dinner-time annotation (HH:MM)
	TimeFormat = "15:04"

	// WindowDays is the default rolling horizon: today plus the next six days
	WindowDays = 7

	// DefaultPassphrase unlocks the board until the user configures their own
	DefaultPassphrase = "KMS1234"

	// GateCooldown is how long a wrong passphrase locks out further input
	GateCooldown = 3 * time.Second
)

// Session states
const (
	StateGate SessionState = iota
	StateBoard
	StateEditNickname
	StateEditTime
	StateConfirmDelete
)
