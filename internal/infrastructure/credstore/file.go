// Package credstore implements the file-backed credential store: a JSON
// map of username to bcrypt hash, loaded once at startup and read-only
// afterwards.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Store holds the username→hash mapping. Immutable after LoadFile.
type Store struct {
	hashes map[string]string
}

// LoadFile reads and parses the credentials file.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("credstore: read %s: %w", path, err)
	}

	var hashes map[string]string
	if err := json.Unmarshal(raw, &hashes); err != nil {
		return nil, fmt.Errorf("credstore: parse %s: %w", path, err)
	}

	return &Store{hashes: hashes}, nil
}

// Validate reports whether password matches the stored hash for username.
// An unknown username reports false; the bcrypt comparison is the slow,
// salted check resistant to timing attacks.
func (s *Store) Validate(username, password string) bool {
	hash, ok := s.hashes[username]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
