package storage

import (
	"context"
	"errors"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

// ErrNotFound is returned when no value is stored under a key
var ErrNotFound = errors.New("no value stored")

// Storage keys, matching what the mobile app persists on-device
const (
	CredentialKey = "jwtToken"
	ProfileKey    = "userData"
)

// Store defines the durable storage interface backing the session manager.
//
// The credential half models the device's secure storage (keychain); the
// profile half models general storage. Both halves store at most one value:
// the session belongs to the single signed-in user of the device.
type Store interface {
	// Credential operations (secure storage)
	SaveCredential(ctx context.Context, credential string) error
	LoadCredential(ctx context.Context) (string, error)
	DeleteCredential(ctx context.Context) error

	// Profile operations (general storage)
	SaveProfile(ctx context.Context, profile *model.UserProfile) error
	LoadProfile(ctx context.Context) (*model.UserProfile, error)
	DeleteProfile(ctx context.Context) error
}
