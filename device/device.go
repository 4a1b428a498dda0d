// Package device persists the device-scoped local state: a stable device
// identifier and the set of liked message IDs. State lives in a small JSON
// file under the data directory; likes are device-scoped, not account-scoped.
package device

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
)

type state struct {
	DeviceID string   `json:"device_id"`
	Liked    []string `json:"liked,omitempty"`
}

// Store holds the loaded device state and writes it back on change.
type Store struct {
	path  string
	id    string
	liked map[string]struct{}
}

// DefaultDir returns the keepsake data directory, honoring KEEPSAKE_DATA.
func DefaultDir() string {
	if env := os.Getenv("KEEPSAKE_DATA"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".keepsake")
}

// Open loads (or creates) the device state file under dir, minting a ULID
// device identifier on first run.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{
		path:  filepath.Join(dir, "device.json"),
		liked: make(map[string]struct{}),
	}
	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		var st state
		if jerr := json.Unmarshal(data, &st); jerr != nil {
			return nil, fmt.Errorf("corrupt device state: %w", jerr)
		}
		s.id = st.DeviceID
		for _, id := range st.Liked {
			s.liked[id] = struct{}{}
		}
	case os.IsNotExist(err):
		// first run
	default:
		return nil, err
	}

	if s.id == "" {
		s.id = ulid.Make().String()
		if err := s.save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) save() error {
	st := state{DeviceID: s.id, Liked: make([]string, 0, len(s.liked))}
	for id := range s.liked {
		st.Liked = append(st.Liked, id)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// DeviceID returns the stable device identifier.
func (s *Store) DeviceID() string { return s.id }

// Liked reports membership in the local liked set.
func (s *Store) Liked(id string) bool {
	_, ok := s.liked[id]
	return ok
}

// SetLiked updates the local liked set and persists it.
func (s *Store) SetLiked(id string, liked bool) error {
	if liked {
		s.liked[id] = struct{}{}
	} else {
		delete(s.liked, id)
	}
	return s.save()
}
