package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty defaults to local", "", false},
		{"explicit local", "Local", false},
		{"valid IANA name", "Asia/Tokyo", false},
		{"utc", "UTC", false},
		{"garbage", "Not/AZone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation(%q) returned nil location", tt.timezone)
			}
		})
	}
}

func TestNowInTimezone(t *testing.T) {
	now, err := NowInTimezone("UTC")
	if err != nil {
		t.Fatalf("NowInTimezone(UTC) failed: %v", err)
	}
	if now.Location() != time.UTC {
		t.Errorf("NowInTimezone(UTC) location = %v, want UTC", now.Location())
	}

	if _, err := NowInTimezone("Not/AZone"); err == nil {
		t.Error("NowInTimezone accepted an invalid timezone")
	}
}

func TestParseDayKey(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Tokyo")

	got, err := ParseDayKey("2026-03-10", loc)
	if err != nil {
		t.Fatalf("ParseDayKey() failed: %v", err)
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ParseDayKey() = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("ParseDayKey() location = %v, want %v", got.Location(), loc)
	}

	if _, err := ParseDayKey("10/03/2026", loc); err == nil {
		t.Error("ParseDayKey accepted a non-ISO date")
	}
}

func TestValidateDayKey(t *testing.T) {
	tests := []struct {
		dayKey string
		want   bool
	}{
		{"2026-03-10", true},
		{"2026-12-31", true},
		{"2026-02-30", false},
		{"2026-3-10", false},
		{"not a date", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateDayKey(tt.dayKey); got != tt.want {
			t.Errorf("ValidateDayKey(%q) = %v, want %v", tt.dayKey, got, tt.want)
		}
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := []struct {
		timeStr string
		want    bool
	}{
		{"19:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"19:60", false},
		{"7pm", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateTimeFormat(tt.timeStr); got != tt.want {
			t.Errorf("ValidateTimeFormat(%q) = %v, want %v", tt.timeStr, got, tt.want)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	for _, ok := range []string{"", "Local", "UTC", "America/New_York"} {
		if !ValidateTimezone(ok) {
			t.Errorf("ValidateTimezone(%q) = false, want true", ok)
		}
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("ValidateTimezone accepted an unknown zone")
	}
}
