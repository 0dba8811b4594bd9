// Package session holds the authenticated identity and bearer token between
// runs. Two keys, written together and cleared together; everything else in
// the client treats the pair as one value.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"booking-console/internal/model"
)

// Store is the one way to touch stored credentials. Every consumer goes
// through it so the medium can be swapped without touching call sites.
type Store interface {
	// Load returns the stored session. ok is false when nothing usable is
	// stored; unreadable or malformed content reads as absent, never as an
	// error.
	Load() (model.Session, bool)
	// Save writes identity and token together. Both are derived from one
	// auth response, so no partial-write recovery is attempted.
	Save(id model.Identity, token string) error
	// Clear removes both keys.
	Clear() error
	// Authenticated is true iff a token is stored. The identity may be
	// minimal (role only, blank name/email) and still count.
	Authenticated() bool
}

// two keys, same names the web client kept in localStorage
const (
	identityFile = "user_data.json"
	tokenFile    = "auth_token"
)

// FileStore keeps the session under a state directory, one file per key.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Load() (model.Session, bool) {
	tok, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return model.Session{}, false
	}
	token := strings.TrimSpace(string(tok))
	if token == "" {
		return model.Session{}, false
	}

	sess := model.Session{Token: token}
	raw, err := os.ReadFile(filepath.Join(s.dir, identityFile))
	if err == nil {
		// malformed identity degrades to a token-only session
		_ = json.Unmarshal(raw, &sess.Identity)
	}
	return sess, true
}

func (s *FileStore) Save(id model.Identity, token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, identityFile), raw, 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600)
}

func (s *FileStore) Clear() error {
	err1 := os.Remove(filepath.Join(s.dir, identityFile))
	err2 := os.Remove(filepath.Join(s.dir, tokenFile))
	if err1 != nil && !os.IsNotExist(err1) {
		return err1
	}
	if err2 != nil && !os.IsNotExist(err2) {
		return err2
	}
	return nil
}

func (s *FileStore) Authenticated() bool {
	_, ok := s.Load()
	return ok
}

// MemoryStore is the in-process substitute used by tests and one-shot runs.
type MemoryStore struct {
	sess model.Session
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (model.Session, bool) {
	if !s.set || s.sess.Token == "" {
		return model.Session{}, false
	}
	return s.sess, true
}

func (s *MemoryStore) Save(id model.Identity, token string) error {
	s.sess = model.Session{Identity: id, Token: token}
	s.set = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.sess = model.Session{}
	s.set = false
	return nil
}

func (s *MemoryStore) Authenticated() bool {
	_, ok := s.Load()
	return ok
}
