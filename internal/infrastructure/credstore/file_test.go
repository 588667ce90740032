package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func writeCredentials(t *testing.T, creds map[string]string) string {
	t.Helper()
	hashes := make(map[string]string, len(creds))
	for user, password := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		hashes[user] = string(hash)
	}

	raw, err := json.Marshal(hashes)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadFile_Validate(t *testing.T) {
	path := writeCredentials(t, map[string]string{"alice": "s3cret"})

	store, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !store.Validate("alice", "s3cret") {
		t.Fatal("valid credentials rejected")
	}
	if store.Validate("alice", "wrong") {
		t.Fatal("wrong password accepted")
	}
	if store.Validate("mallory", "s3cret") {
		t.Fatal("unknown user accepted")
	}
	if store.Validate("", "") {
		t.Fatal("empty credentials accepted")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("malformed file accepted")
	}
}
