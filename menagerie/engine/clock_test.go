package engine

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func newTestEngine(t *testing.T) (*Engine, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return New(FarmEconomy(), clock), clock
}

// mintFor mints a creature and fails the test on error.
func mintFor(t *testing.T, e *Engine, owner, name string, payment int64) int64 {
	t.Helper()
	id, err := e.Mint(owner, name, payment)
	if err != nil {
		t.Fatalf("Mint(%q, %q, %d) error = %v", owner, name, payment, err)
	}
	return id
}
