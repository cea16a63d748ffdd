// Package config resolves widget credentials from an ordered list of
// candidate sources.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source is one candidate credential value with a name for
// diagnostics.
type Source struct {
	Name  string
	Value string
}

// Resolve returns the first non-empty candidate and its source name.
// The caller lists sources in precedence order: explicit attribute,
// request parameter, saved local value, process-global fallback.
func Resolve(sources ...Source) (string, string) {
	for _, s := range sources {
		if v := strings.TrimSpace(s.Value); v != "" {
			return v, s.Name
		}
	}
	return "", ""
}

// TokenStore persists a credential across restarts (the localStorage
// of the server rendition). A credential supplied via request
// parameter is saved here for reuse.
type TokenStore struct {
	path string
}

// NewTokenStore creates a store at the given path, defaulting to
// .mapbox_token in the working directory.
func NewTokenStore(path string) *TokenStore {
	if path == "" {
		path = ".mapbox_token"
	}
	return &TokenStore{path: path}
}

// Load returns the saved credential, or empty if none exists.
func (s *TokenStore) Load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save persists the credential.
func (s *TokenStore) Save(token string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create token store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}
