package session

import (
	"time"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

// State is the session's position in its lifecycle
type State int

const (
	// StateUnauthenticated means no credential is held. Initial state
	// before bootstrap resolves; reached again via sign-out or a
	// credential rejection during refresh.
	StateUnauthenticated State = iota

	// StateAuthenticatedBasic means a credential is held but only the
	// identity-level profile projection is available
	StateAuthenticatedBasic

	// StateAuthenticatedFull means a credential is held and the full
	// profile projection, nested relations included, is available
	StateAuthenticatedFull
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticatedBasic:
		return "authenticated-basic"
	case StateAuthenticatedFull:
		return "authenticated-full"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only view of the session at one instant. Consumers
// (screens) read it and must never mutate session state directly.
type Snapshot struct {
	// Profile is the signed-in user's profile, nil when signed out. It may
	// be the basic projection while a full-profile fetch is still pending;
	// consumers must tolerate missing nested fields.
	Profile *model.UserProfile

	// Credential is the active bearer token, empty when signed out
	Credential string

	// Loading is true while bootstrap is still resolving the session
	Loading bool

	// State is the explicit lifecycle state
	State State

	// RefreshedAt is when the full profile was last fetched successfully,
	// zero if never
	RefreshedAt time.Time
}

// SignedIn reports whether a credential is held
func (s Snapshot) SignedIn() bool {
	return s.State != StateUnauthenticated
}
