package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/girassol/internal/constants"
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

func TestSetEmptySecrets(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
	if err := SetAPIKey("   "); err == nil {
		t.Error("SetAPIKey(\"   \") should return an error")
	}
}

func TestDeleteNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteConnectionString()
	if err := DeleteConnectionString(); err != ErrNotFound {
		t.Errorf("DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	_ = DeleteAPIKey()
	if _, err := GetAPIKey(); err != ErrNotFound {
		t.Errorf("GetAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestSecretsAreIndependent(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("key-123"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}
	if err := SetConnectionString("postgres://u@h/db"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}

	key, err := GetAPIKey()
	if err != nil || key != "key-123" {
		t.Errorf("GetAPIKey() = %q, %v; want key-123", key, err)
	}
}

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		primary    string
		fallback   string
		stored     string
		wantKey    string
		wantSource Source
	}{
		{name: "primary env wins", primary: "env-key", fallback: "other", stored: "kr", wantKey: "env-key", wantSource: SourceEnv},
		{name: "fallback env", fallback: "fallback-key", stored: "kr", wantKey: "fallback-key", wantSource: SourceEnv},
		{name: "keyring", stored: "kr-key", wantKey: "kr-key", wantSource: SourceKeyring},
		{name: "nothing", wantKey: "", wantSource: SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gokeyring.MockInit()
			t.Setenv("GIRASSOL_TEST_AI_KEY", tt.primary)
			t.Setenv(constants.FallbackAPIKeyEnv, tt.fallback)
			if tt.stored != "" {
				if err := SetAPIKey(tt.stored); err != nil {
					t.Fatalf("SetAPIKey() failed: %v", err)
				}
			}

			key, src := ResolveAPIKey("GIRASSOL_TEST_AI_KEY")
			if key != tt.wantKey || src != tt.wantSource {
				t.Errorf("ResolveAPIKey() = (%q, %q), want (%q, %q)", key, src, tt.wantKey, tt.wantSource)
			}
		})
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
