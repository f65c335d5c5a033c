// Package prefs remembers dashboard selections between launches.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const sessionFile = "session.json"

// Session is the dashboard state restored on the next launch.
type Session struct {
	View     string `json:"view,omitempty"`
	Feature  string `json:"feature,omitempty"`
	WineType string `json:"wine_type,omitempty"`
	Cuisine  string `json:"cuisine,omitempty"`
}

// DefaultPath is session.json under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wineboard", sessionFile), nil
}

// Save writes s to path atomically.
func Save(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads the session at path. A missing file yields the zero Session.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("session %s: %w", path, err)
	}
	return s, nil
}
