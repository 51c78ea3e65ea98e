package memory

import (
	"context"
	"sync"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
	"github.com/Fras28/NextLvlPadel-sub000/internal/storage"
)

// Store is an in-memory implementation of the storage interface
type Store struct {
	mu sync.RWMutex

	credential    string
	hasCredential bool
	profile       *model.UserProfile
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{}
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) SaveCredential(ctx context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	s.hasCredential = true
	return nil
}

func (s *Store) LoadCredential(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasCredential {
		return "", storage.ErrNotFound
	}
	return s.credential, nil
}

func (s *Store) DeleteCredential(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	s.hasCredential = false
	return nil
}

func (s *Store) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *profile
	s.profile = &copied
	return nil
}

func (s *Store) LoadProfile(ctx context.Context) (*model.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil, storage.ErrNotFound
	}
	copied := *s.profile
	return &copied, nil
}

func (s *Store) DeleteProfile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	return nil
}
