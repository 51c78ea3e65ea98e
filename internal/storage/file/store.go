package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
	"github.com/Fras28/NextLvlPadel-sub000/internal/storage"
)

// Store is a file-backed implementation of the storage interface.
//
// The credential and profile each live in their own file under dir. The
// directory is created 0700 and files are written 0600, standing in for the
// device keychain the mobile app would use.
type Store struct {
	dir string
}

// New creates a file store rooted at dir, creating it if necessary
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) credentialPath() string {
	return filepath.Join(s.dir, storage.CredentialKey)
}

func (s *Store) profilePath() string {
	return filepath.Join(s.dir, storage.ProfileKey)
}

func (s *Store) SaveCredential(ctx context.Context, credential string) error {
	return os.WriteFile(s.credentialPath(), []byte(credential), 0600)
}

func (s *Store) LoadCredential(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.credentialPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

func (s *Store) DeleteCredential(ctx context.Context) error {
	return removeIfExists(s.credentialPath())
}

func (s *Store) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return os.WriteFile(s.profilePath(), data, 0600)
}

func (s *Store) LoadProfile(ctx context.Context) (*model.UserProfile, error) {
	data, err := os.ReadFile(s.profilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var profile model.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse stored profile: %w", err)
	}
	return &profile, nil
}

func (s *Store) DeleteProfile(ctx context.Context) error {
	return removeIfExists(s.profilePath())
}

// removeIfExists deletes a file, treating a missing file as success so that
// deletes stay idempotent
func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
