package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Fras28/NextLvlPadel-sub000/internal/dependencies/clock"
	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
	"github.com/Fras28/NextLvlPadel-sub000/internal/storage"
	"github.com/Fras28/NextLvlPadel-sub000/internal/storage/memory"
	"github.com/Fras28/NextLvlPadel-sub000/internal/strapi"
	"github.com/Fras28/NextLvlPadel-sub000/internal/strapi/strapitest"
	"github.com/Fras28/NextLvlPadel-sub000/internal/testutil"
)

type ManagerSuite struct {
	suite.Suite
	backend *strapitest.Server
	store   *memory.Store
	clock   *clock.Mock
	manager *Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.backend = strapitest.New()
	s.store = memory.New()
	s.clock = clock.NewMock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.manager = s.newManager(s.store)
	s.ctx = context.Background()
}

func (s *ManagerSuite) TearDownTest() {
	s.manager.Wait()
	s.backend.Close()
}

func (s *ManagerSuite) newManager(store storage.Store) *Manager {
	client := strapi.NewClient(s.backend.URL())
	return New(store, client, s.clock, testutil.NopLogger())
}

// fullProfile builds a profile with nested relations populated
func fullProfile(username, email string) *model.UserProfile {
	return &model.UserProfile{
		Username: username,
		Email:    email,
		Category: &model.Category{ID: 2, Name: "Cuarta"},
		Stats:    &model.PlayerStats{ID: 1, MatchesPlayed: 10, MatchesWon: 6, Points: 120},
		Teams:    []model.Team{{ID: 7, Name: "Los Pibes"}},
	}
}

// seedUser registers a backend user and returns its id and a valid credential
func (s *ManagerSuite) seedUser() (model.UserID, string) {
	id := s.backend.AddUser(fullProfile("ana", "ana@example.com"), "secret123")
	return id, s.backend.IssueToken(id)
}

func (s *ManagerSuite) waitMeCalls(n int) {
	s.Require().Eventually(func() bool {
		return s.backend.MeCalls() >= n
	}, 2*time.Second, 10*time.Millisecond)
}

// Bootstrap tests

func (s *ManagerSuite) TestBootstrapNoCredentialMakesNoNetworkCall() {
	err := s.manager.Bootstrap(s.ctx)
	s.Require().NoError(err)

	snap := s.manager.Snapshot()
	s.Equal(StateUnauthenticated, snap.State)
	s.Nil(snap.Profile)
	s.Empty(snap.Credential)
	s.False(snap.Loading)
	s.Equal(0, s.backend.Requests())
}

func (s *ManagerSuite) TestBootstrapNoCredentialLeavesStorageUntouched() {
	tracking := &failingStore{Store: memory.New()}
	manager := s.newManager(tracking)

	s.Require().NoError(manager.Bootstrap(s.ctx))

	s.Equal(StateUnauthenticated, manager.Snapshot().State)
	s.Equal(0, tracking.deleteCalls)
}

func (s *ManagerSuite) TestBootstrapHydratesCachedProfileBeforeRefreshResolves() {
	id, cred := s.seedUser()
	cached := fullProfile("ana", "ana@example.com")
	cached.ID = id

	s.Require().NoError(s.store.SaveCredential(s.ctx, cred))
	s.Require().NoError(s.store.SaveProfile(s.ctx, cached))

	// Hold the profile endpoint open so the background refresh cannot
	// resolve yet
	gate := make(chan struct{})
	s.backend.GateMe(gate)
	defer close(gate)

	s.Require().NoError(s.manager.Bootstrap(s.ctx))

	snap := s.manager.Snapshot()
	s.False(snap.Loading)
	s.Equal(cred, snap.Credential)
	s.Require().NotNil(snap.Profile)
	s.Equal("ana", snap.Profile.Username)
}

func (s *ManagerSuite) TestBootstrapBackgroundRefreshUpgradesBasicProfile() {
	id, cred := s.seedUser()
	basic := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}

	s.Require().NoError(s.store.SaveCredential(s.ctx, cred))
	s.Require().NoError(s.store.SaveProfile(s.ctx, basic))

	s.Require().NoError(s.manager.Bootstrap(s.ctx))

	// Cached basic profile is visible immediately
	s.Equal(StateAuthenticatedBasic, s.manager.Snapshot().State)

	// The background reconciliation brings in the full projection
	s.Require().Eventually(func() bool {
		return s.manager.Snapshot().State == StateAuthenticatedFull
	}, 2*time.Second, 10*time.Millisecond)

	snap := s.manager.Snapshot()
	s.Require().NotNil(snap.Profile.Category)
	s.Equal("Cuarta", snap.Profile.Category.Name)
	s.Equal(s.clock.Now(), snap.RefreshedAt)
}

func (s *ManagerSuite) TestWaitDrainsBackgroundRefresh() {
	id, cred := s.seedUser()
	basic := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}

	s.Require().NoError(s.store.SaveCredential(s.ctx, cred))
	s.Require().NoError(s.store.SaveProfile(s.ctx, basic))

	gate := make(chan struct{})
	s.backend.GateMe(gate)

	s.Require().NoError(s.manager.Bootstrap(s.ctx))
	s.Equal(StateAuthenticatedBasic, s.manager.Snapshot().State)

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(gate)
	}()

	// Wait must not return until the in-flight refresh has been applied
	s.manager.Wait()

	snap := s.manager.Snapshot()
	s.Equal(StateAuthenticatedFull, snap.State)
	s.Require().NotNil(snap.Profile.Category)

	stored, err := s.store.LoadProfile(s.ctx)
	s.Require().NoError(err)
	s.NotNil(stored.Category)
}

func (s *ManagerSuite) TestBootstrapCredentialWithoutProfileRefreshesInForeground() {
	_, cred := s.seedUser()
	s.Require().NoError(s.store.SaveCredential(s.ctx, cred))

	s.Require().NoError(s.manager.Bootstrap(s.ctx))

	snap := s.manager.Snapshot()
	s.False(snap.Loading)
	s.Equal(StateAuthenticatedFull, snap.State)
	s.Require().NotNil(snap.Profile)
	s.Equal("ana", snap.Profile.Username)
	s.Equal(1, s.backend.MeCalls())
}

func (s *ManagerSuite) TestBootstrapForegroundRefreshFailureKeepsCredential() {
	_, cred := s.seedUser()
	s.Require().NoError(s.store.SaveCredential(s.ctx, cred))
	s.backend.FailMeOnce(500, "down")

	s.Require().NoError(s.manager.Bootstrap(s.ctx))

	snap := s.manager.Snapshot()
	s.False(snap.Loading)
	s.Equal(StateAuthenticatedBasic, snap.State)
	s.Nil(snap.Profile)
	s.Equal(cred, snap.Credential)
}

func (s *ManagerSuite) TestBootstrapStorageFailureClearsSession() {
	failing := &failingStore{Store: memory.New(), failLoadCredential: true}
	manager := s.newManager(failing)

	s.Require().NoError(manager.Bootstrap(s.ctx))

	snap := manager.Snapshot()
	s.Equal(StateUnauthenticated, snap.State)
	s.False(snap.Loading)
	s.Equal(0, s.backend.Requests())
}

// SignIn tests

func (s *ManagerSuite) TestSignInEstablishesSession() {
	id, cred := s.seedUser()
	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}

	err := s.manager.SignIn(s.ctx, loginUser, cred)
	s.Require().NoError(err)

	snap := s.manager.Snapshot()
	s.Equal(StateAuthenticatedFull, snap.State)
	s.Equal(cred, snap.Credential)
	s.False(snap.Loading)

	// Identity fields survive the basic -> full upgrade
	s.Equal(id, snap.Profile.ID)
	s.Equal("ana", snap.Profile.Username)
	s.Equal("ana@example.com", snap.Profile.Email)
}

func (s *ManagerSuite) TestSignInPersistsCredentialAndProfile() {
	id, cred := s.seedUser()
	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}

	s.Require().NoError(s.manager.SignIn(s.ctx, loginUser, cred))

	storedCred, err := s.store.LoadCredential(s.ctx)
	s.Require().NoError(err)
	s.Equal(cred, storedCred)

	storedProfile, err := s.store.LoadProfile(s.ctx)
	s.Require().NoError(err)
	s.Equal(id, storedProfile.ID)
}

func (s *ManagerSuite) TestSignInDropsRelationsFromLoginUser() {
	id, cred := s.seedUser()
	s.backend.FailMeOnce(500, "down") // keep the basic projection in place

	// A login response should never be trusted to carry relations
	loginUser := fullProfile("ana", "ana@example.com")
	loginUser.ID = id

	s.Require().NoError(s.manager.SignIn(s.ctx, loginUser, cred))

	stored, err := s.store.LoadProfile(s.ctx)
	s.Require().NoError(err)
	s.Nil(stored.Category)
	s.Nil(stored.Stats)
	s.Empty(stored.Teams)
}

func (s *ManagerSuite) TestSignInRefreshFailureKeepsBasicSession() {
	id, cred := s.seedUser()
	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}
	s.backend.FailMeOnce(500, "down")

	err := s.manager.SignIn(s.ctx, loginUser, cred)
	s.Require().NoError(err)

	snap := s.manager.Snapshot()
	s.Equal(StateAuthenticatedBasic, snap.State)
	s.Equal(cred, snap.Credential)
	s.Equal("ana", snap.Profile.Username)
}

func (s *ManagerSuite) TestSignInPersistenceFailureRollsBack() {
	id, cred := s.seedUser()
	failing := &failingStore{Store: memory.New(), failSaveCredential: true}
	manager := s.newManager(failing)

	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}
	err := manager.SignIn(s.ctx, loginUser, cred)
	s.Require().Error(err)

	snap := manager.Snapshot()
	s.Equal(StateUnauthenticated, snap.State)
	s.Nil(snap.Profile)
	s.Empty(snap.Credential)
}

func (s *ManagerSuite) TestSignInProfilePersistenceFailureRollsBack() {
	id, cred := s.seedUser()
	failing := &failingStore{Store: memory.New(), failSaveProfile: true}
	manager := s.newManager(failing)

	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}
	err := manager.SignIn(s.ctx, loginUser, cred)
	s.Require().Error(err)

	s.Equal(StateUnauthenticated, manager.Snapshot().State)

	_, credErr := failing.Store.LoadCredential(s.ctx)
	s.ErrorIs(credErr, storage.ErrNotFound)
}

// RefreshProfile tests

func (s *ManagerSuite) TestRefreshWithoutCredentialMakesNoNetworkCall() {
	profile, err := s.manager.RefreshProfile(s.ctx, "")
	s.Require().NoError(err)
	s.Nil(profile)
	s.Equal(0, s.backend.Requests())
}

func (s *ManagerSuite) TestRefreshUnauthorizedForcesSignOut() {
	id, cred := s.seedUser()
	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}
	s.Require().NoError(s.manager.SignIn(s.ctx, loginUser, cred))

	s.backend.RevokeToken(cred)

	profile, err := s.manager.RefreshProfile(s.ctx, "")
	s.Require().NoError(err)
	s.Nil(profile)

	snap := s.manager.Snapshot()
	s.Equal(StateUnauthenticated, snap.State)
	s.Nil(snap.Profile)
	s.Empty(snap.Credential)

	_, credErr := s.store.LoadCredential(s.ctx)
	s.ErrorIs(credErr, storage.ErrNotFound)

	// With the session cleared, further refreshes never hit the network
	before := s.backend.Requests()
	profile, err = s.manager.RefreshProfile(s.ctx, "")
	s.Require().NoError(err)
	s.Nil(profile)
	s.Equal(before, s.backend.Requests())
}

func (s *ManagerSuite) TestRefreshTransientFailureLeavesSessionUntouched() {
	id, cred := s.seedUser()
	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}
	s.Require().NoError(s.manager.SignIn(s.ctx, loginUser, cred))

	before := s.manager.Snapshot()

	s.backend.FailMeOnce(500, "down")
	profile, err := s.manager.RefreshProfile(s.ctx, "")
	s.Require().Error(err)
	s.Nil(profile)

	after := s.manager.Snapshot()
	s.Equal(before.State, after.State)
	s.Equal(before.Credential, after.Credential)
	s.Equal(before.Profile, after.Profile)
}

func (s *ManagerSuite) TestRefreshMalformedResponseLeavesSessionUntouched() {
	id, cred := s.seedUser()
	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}
	s.Require().NoError(s.manager.SignIn(s.ctx, loginUser, cred))

	before := s.manager.Snapshot()

	s.backend.MalformMeOnce()
	profile, err := s.manager.RefreshProfile(s.ctx, "")
	s.Require().Error(err)
	s.ErrorIs(err, strapi.ErrMalformedResponse)
	s.Nil(profile)

	after := s.manager.Snapshot()
	s.Equal(before.Credential, after.Credential)
	s.Equal(before.Profile, after.Profile)
}

func (s *ManagerSuite) TestRefreshStampsTime() {
	id, cred := s.seedUser()
	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}
	s.Require().NoError(s.manager.SignIn(s.ctx, loginUser, cred))

	first := s.manager.Snapshot().RefreshedAt
	s.Equal(s.clock.Now(), first)

	s.clock.Advance(time.Hour)
	_, err := s.manager.RefreshProfile(s.ctx, "")
	s.Require().NoError(err)

	s.Equal(first.Add(time.Hour), s.manager.Snapshot().RefreshedAt)
}

func (s *ManagerSuite) TestStaleRefreshDiscardedAfterSignOut() {
	id, cred := s.seedUser()
	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}
	s.Require().NoError(s.manager.SignIn(s.ctx, loginUser, cred))
	callsAfterSignIn := s.backend.MeCalls()

	// Hold the next profile fetch open mid-flight
	gate := make(chan struct{})
	s.backend.GateMe(gate)

	done := make(chan struct{})
	go func() {
		defer close(done)
		profile, err := s.manager.RefreshProfile(s.ctx, cred)
		s.NoError(err)
		s.Nil(profile)
	}()

	s.waitMeCalls(callsAfterSignIn + 1)

	// Sign out while the refresh is in flight, then let it complete
	s.Require().NoError(s.manager.SignOut(s.ctx))
	close(gate)
	<-done

	// The late response must not resurrect the session
	snap := s.manager.Snapshot()
	s.Equal(StateUnauthenticated, snap.State)
	s.Nil(snap.Profile)

	_, err := s.store.LoadProfile(s.ctx)
	s.ErrorIs(err, storage.ErrNotFound)
}

// SignOut tests

func (s *ManagerSuite) TestSignOutIsIdempotent() {
	id, cred := s.seedUser()
	loginUser := &model.UserProfile{ID: id, Username: "ana", Email: "ana@example.com"}
	s.Require().NoError(s.manager.SignIn(s.ctx, loginUser, cred))

	s.Require().NoError(s.manager.SignOut(s.ctx))
	first := s.manager.Snapshot()

	s.Require().NoError(s.manager.SignOut(s.ctx))
	second := s.manager.Snapshot()

	s.Equal(first, second)
	s.Equal(StateUnauthenticated, second.State)
}

// failingStore wraps a real store with injectable failures and counts deletes
type failingStore struct {
	storage.Store
	failLoadCredential bool
	failSaveCredential bool
	failSaveProfile    bool
	deleteCalls        int
}

var errDisk = errors.New("disk error")

func (f *failingStore) LoadCredential(ctx context.Context) (string, error) {
	if f.failLoadCredential {
		return "", errDisk
	}
	return f.Store.LoadCredential(ctx)
}

func (f *failingStore) SaveCredential(ctx context.Context, credential string) error {
	if f.failSaveCredential {
		return errDisk
	}
	return f.Store.SaveCredential(ctx, credential)
}

func (f *failingStore) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	if f.failSaveProfile {
		return errDisk
	}
	return f.Store.SaveProfile(ctx, profile)
}

func (f *failingStore) DeleteCredential(ctx context.Context) error {
	f.deleteCalls++
	return f.Store.DeleteCredential(ctx)
}

func (f *failingStore) DeleteProfile(ctx context.Context) error {
	f.deleteCalls++
	return f.Store.DeleteProfile(ctx)
}
