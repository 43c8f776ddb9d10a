package factory

import (
	"leaguerank/internal/dependencies/mocks"
	"leaguerank/internal/rating"
	"leaguerank/internal/services/player"
	"leaguerank/internal/storage/memory"
	"leaguerank/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClockAtDay(60200)

	app := newWithDependencies(store, mockClock, player.FailResolver, rating.DefaultDecayRate, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
