package factory

import (
	"time"

	"github.com/mcoot/playerroster/internal/dependencies/mocks"
	"github.com/mcoot/playerroster/internal/storage/memory"
	"github.com/mcoot/playerroster/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App on in-memory storage with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(memory.New(), mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueuePlayer queues the random values that make the generator produce
// a player with the given name and experience
func (t *TestApp) QueuePlayer(name string, experience int) {
	// name length offset, title, race, profession, experience, banned roll
	t.MockRandom.QueueIntn(len(name)-3, 0, 0, 0, experience, 1)
	t.MockRandom.QueueString(name[:1], name[1:])
	t.MockRandom.QueueInt63n(0)
}
