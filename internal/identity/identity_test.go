package identity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	gokeyring "github.com/zalando/go-keyring"
)

func TestEstablishMintsOnce(t *testing.T) {
	gokeyring.MockInit()

	provider := NewKeyringProvider()
	first, err := provider.Establish()
	if err != nil {
		t.Fatalf("Establish() failed: %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("Establish() token %q is not a uuid: %v", first, err)
	}

	second, err := provider.Establish()
	if err != nil {
		t.Fatalf("second Establish() failed: %v", err)
	}
	if second != first {
		t.Errorf("Establish() minted a second token: %q != %q", second, first)
	}
}

func TestEstablishWithUnavailableKeyring(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))

	provider := NewKeyringProvider()
	_, err := provider.Establish()
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Establish() error = %v, want ErrUnavailable", err)
	}
}

func TestConnectionStringRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetConnectionString() on empty keyring error = %v, want ErrNotFound", err)
	}

	connStr := "postgres://host:5432/dinner?sslmode=require"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want ErrNotFound", err)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") succeeded, want error")
	}
}

func TestDeleteConnectionStringMissing(t *testing.T) {
	gokeyring.MockInit()

	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteConnectionString() on empty keyring error = %v, want ErrNotFound", err)
	}
}
