package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestEntriesAreIndependent(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("abc123"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}
	if _, err := GetConnectionString(); err != ErrNotFound {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}

	key, err := GetAPIKey()
	if err != nil {
		t.Fatalf("GetAPIKey() failed: %v", err)
	}
	if key != "abc123" {
		t.Errorf("GetAPIKey() = %q, want %q", key, "abc123")
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
	if err := SetAPIKey(""); err == nil {
		t.Error("SetAPIKey(\"\") should return an error")
	}
}

func TestDeleteAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("secret"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}
	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey() failed: %v", err)
	}
	if _, err := GetAPIKey(); err != ErrNotFound {
		t.Errorf("After DeleteAPIKey(), GetAPIKey() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteAPIKey(); err != ErrNotFound {
		t.Errorf("second DeleteAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() should return true with mock keyring")
	}
}
