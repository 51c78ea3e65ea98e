package factory

import (
	"time"

	"github.com/Fras28/NextLvlPadel-sub000/internal/dependencies/clock"
	"github.com/Fras28/NextLvlPadel-sub000/internal/storage/memory"
	"github.com/Fras28/NextLvlPadel-sub000/internal/strapi"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *clock.Mock
	MemStore  *memory.Store
}

// NewTestApp creates an App talking to the given backend URL, with in-memory
// storage and a mocked clock
func NewTestApp(backendURL string) *TestApp {
	store := memory.New()
	mockClock := clock.NewMock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	client := strapi.NewClient(backendURL)

	app := newWithDependencies(store, client, mockClock, nil)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MemStore:  store,
	}
}
