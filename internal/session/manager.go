// Package session owns the authenticated-user identity: the bearer
// credential, its persistence across restarts, and on-demand reconciliation
// of the profile against the backend. It is the single source of truth for
// "who is logged in"; every other component reads its snapshot and issues
// its own backend calls with the exposed credential.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Fras28/NextLvlPadel-sub000/internal/dependencies/clock"
	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
	"github.com/Fras28/NextLvlPadel-sub000/internal/storage"
	"github.com/Fras28/NextLvlPadel-sub000/internal/strapi"
)

// Backend is the slice of the CMS client the session manager needs
type Backend interface {
	// Me fetches the full profile for the given credential
	Me(ctx context.Context, credential string) (*model.UserProfile, error)
}

// Manager is the session manager. All fields behind mu; writes are
// last-write-wins, with refresh write-backs guarded by a credential match so
// a late response can never resurrect a signed-out session.
type Manager struct {
	store   storage.Store
	backend Backend
	clock   clock.Clock
	logger  *slog.Logger

	mu          sync.RWMutex
	profile     *model.UserProfile
	credential  string
	loading     bool
	state       State
	refreshedAt time.Time

	background sync.WaitGroup
}

// New creates a session manager. The session starts in the loading state
// until Bootstrap resolves it.
func New(store storage.Store, backend Backend, clk clock.Clock, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Manager{
		store:   store,
		backend: backend,
		clock:   clk,
		logger:  logger,
		loading: true,
		state:   StateUnauthenticated,
	}
}

// Snapshot returns the current session state for consumers to read
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Profile:     m.profile,
		Credential:  m.credential,
		Loading:     m.loading,
		State:       m.state,
		RefreshedAt: m.refreshedAt,
	}
}

// Bootstrap restores the session from durable storage at process start.
//
// With no stored credential the session settles signed out without any
// network call. With a credential and a cached profile, the cached profile is
// exposed immediately and reconciled in the background. With a credential but
// no cached profile, the session stays loading until a foreground refresh
// completes. Storage read failures are treated as "no credential" and force a
// full local sign-out rather than leaving half-restored state behind.
func (m *Manager) Bootstrap(ctx context.Context) error {
	cred, err := m.store.LoadCredential(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			m.settleSignedOut()
			return nil
		}
		m.logger.Warn("stored credential unreadable, clearing session", slog.String("error", err.Error()))
		if err := m.SignOut(ctx); err != nil {
			m.logger.Warn("session clear incomplete", slog.String("error", err.Error()))
		}
		return nil
	}

	profile, err := m.store.LoadProfile(ctx)
	switch {
	case err == nil:
		m.hydrate(cred, profile)
		m.logger.Info("session restored from cache",
			slog.Int("user_id", int(profile.ID)),
			slog.String("state", m.Snapshot().State.String()),
		)

		// Reconcile in the background; the cached profile stays valid to
		// show, so failures are only logged
		bg := context.WithoutCancel(ctx)
		m.background.Add(1)
		go func() {
			defer m.background.Done()
			if _, err := m.RefreshProfile(bg, cred); err != nil {
				m.logger.Warn("background profile refresh failed", slog.String("error", err.Error()))
			}
		}()

	case errors.Is(err, storage.ErrNotFound):
		m.mu.Lock()
		m.credential = cred
		m.state = StateAuthenticatedBasic
		m.mu.Unlock()

		if _, err := m.RefreshProfile(ctx, cred); err != nil {
			m.logger.Warn("foreground profile refresh failed", slog.String("error", err.Error()))
		}

		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()

	default:
		m.logger.Warn("cached profile unreadable, clearing session", slog.String("error", err.Error()))
		if err := m.SignOut(ctx); err != nil {
			m.logger.Warn("session clear incomplete", slog.String("error", err.Error()))
		}
	}

	return nil
}

// SignIn establishes a session from a successful external login call. The
// basic identity projection and the credential are persisted first; only
// then does the in-memory state flip to signed in, so consumers never see a
// session that would not survive a restart. A foreground full-profile
// refresh is awaited before returning, but its failure does not undo the
// sign-in. Persistence failures are fatal: the manager rolls back to a fully
// signed-out state and returns the error.
func (m *Manager) SignIn(ctx context.Context, user *model.UserProfile, credential string) error {
	if user == nil || credential == "" {
		return fmt.Errorf("sign-in requires a user and a credential")
	}

	basic := user.Basic()

	if err := m.store.SaveCredential(ctx, credential); err != nil {
		m.rollbackSignIn(ctx)
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	if err := m.store.SaveProfile(ctx, basic); err != nil {
		m.rollbackSignIn(ctx)
		return fmt.Errorf("failed to persist profile: %w", err)
	}

	m.mu.Lock()
	m.credential = credential
	m.profile = basic
	m.loading = false
	m.state = StateAuthenticatedBasic
	m.mu.Unlock()

	m.logger.Info("signed in",
		slog.Int("user_id", int(basic.ID)),
		slog.String("username", basic.Username),
	)

	if _, err := m.RefreshProfile(ctx, credential); err != nil {
		m.logger.Warn("post-sign-in profile refresh failed", slog.String("error", err.Error()))
	}

	return nil
}

// RefreshProfile fetches the full profile from the backend. The explicit
// credential takes precedence over the session's current one, which lets
// bootstrap and sign-in refresh with a token not yet committed to state;
// pass "" to use the current credential.
//
// With no credential available it returns (nil, nil) without a network call.
// A 401/403 forces a sign-out and also returns (nil, nil): credential
// invalidity is a state change, not a caller error. Any other failure leaves
// the session untouched and is returned for the caller to retry.
func (m *Manager) RefreshProfile(ctx context.Context, credential string) (*model.UserProfile, error) {
	cred := credential
	if cred == "" {
		m.mu.RLock()
		cred = m.credential
		m.mu.RUnlock()
	}
	if cred == "" {
		return nil, nil
	}

	profile, err := m.backend.Me(ctx, cred)
	if err != nil {
		if errors.Is(err, strapi.ErrUnauthorized) {
			m.logger.Info("credential rejected by backend, signing out")
			if err := m.SignOut(ctx); err != nil {
				m.logger.Warn("forced sign-out incomplete", slog.String("error", err.Error()))
			}
			return nil, nil
		}
		m.logger.Warn("profile fetch failed", slog.String("error", err.Error()))
		return nil, err
	}

	// The fetch may have raced a sign-out or a re-login; only apply the
	// result if the credential it was issued for is still the active one
	if !m.credentialActive(cred) {
		m.logger.Debug("discarding stale profile refresh")
		return nil, nil
	}

	if err := m.store.SaveProfile(ctx, profile); err != nil {
		m.logger.Warn("failed to persist refreshed profile", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}

	m.mu.Lock()
	if m.credential != cred {
		m.mu.Unlock()
		m.logger.Debug("discarding stale profile refresh")
		return nil, nil
	}
	m.profile = profile
	m.state = StateAuthenticatedFull
	m.refreshedAt = m.clock.Now()
	m.mu.Unlock()

	return profile, nil
}

// Wait blocks until any background reconciliation spawned by Bootstrap has
// finished. Call it before tearing down the storage the manager writes to.
func (m *Manager) Wait() {
	m.background.Wait()
}

// SignOut clears the in-memory session and deletes the stored credential and
// profile. Idempotent: signing out of a signed-out session is a no-op.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.profile = nil
	m.credential = ""
	m.loading = false
	m.state = StateUnauthenticated
	m.refreshedAt = time.Time{}
	m.mu.Unlock()

	if err := errors.Join(
		m.store.DeleteCredential(ctx),
		m.store.DeleteProfile(ctx),
	); err != nil {
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	return nil
}

// settleSignedOut resolves the loading state to signed out without touching
// storage; on this path there is nothing stored to delete
func (m *Manager) settleSignedOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = nil
	m.credential = ""
	m.loading = false
	m.state = StateUnauthenticated
}

// hydrate installs a cached profile and credential as the live session
func (m *Manager) hydrate(cred string, profile *model.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = cred
	m.profile = profile
	m.loading = false
	if profile.IsFull() {
		m.state = StateAuthenticatedFull
	} else {
		m.state = StateAuthenticatedBasic
	}
}

// credentialActive reports whether cred is still the session's credential
func (m *Manager) credentialActive(cred string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.credential == cred
}

func (m *Manager) rollbackSignIn(ctx context.Context) {
	if err := m.SignOut(ctx); err != nil {
		m.logger.Warn("sign-in rollback incomplete", slog.String("error", err.Error()))
	}
}
