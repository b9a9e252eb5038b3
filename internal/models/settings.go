package models

// Settings represents application-wide settings
type Settings struct {
	Timezone        string `json:"timezone"`          // IANA timezone name (e.g. "Asia/Tokyo", or "Local" for system timezone)
	WindowDays      int    `json:"window_days"`       // length of the rolling horizon in days
	Passphrase      string `json:"passphrase"`        // unlock passphrase for the board
	GateCooldownSec int    `json:"gate_cooldown_sec"` // lockout after a wrong passphrase, in seconds
}
