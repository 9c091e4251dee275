package engine

import (
	"errors"
	"testing"
	"time"
)

func TestTrain_UpdatesStats(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mintFor(t, e, "alice", "Pebbles", 0)

	before, _ := e.Get(id)
	if err := e.Train("alice", id); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	after, _ := e.Get(id)
	if after.Skill != before.Skill+2 {
		t.Errorf("Skill = %d, want %d", after.Skill, before.Skill+2)
	}
	if after.Morale != before.Morale+5 {
		t.Errorf("Morale = %d, want %d", after.Morale, before.Morale+5)
	}
	if after.Level != before.Level+1 {
		t.Errorf("Level = %d, want %d", after.Level, before.Level+1)
	}
}

func TestCareActions_CooldownBoundary(t *testing.T) {
	tests := []struct {
		name   string
		window time.Duration
		act    func(e *Engine, id int64) error
	}{
		{
			name:   "train 4h",
			window: 4 * time.Hour,
			act:    func(e *Engine, id int64) error { return e.Train("alice", id) },
		},
		{
			name:   "groom 12h",
			window: 12 * time.Hour,
			act:    func(e *Engine, id int64) error { return e.Groom("alice", id) },
		},
		{
			name:   "harvest 72h",
			window: 72 * time.Hour,
			act: func(e *Engine, id int64) error {
				_, err := e.Harvest("alice", id)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newTestEngine(t)
			id := mintFor(t, e, "alice", "Pebbles", 0)

			if err := tt.act(e, id); err != nil {
				t.Fatalf("first action error = %v", err)
			}

			// Immediately after success the action must be rejected.
			if err := tt.act(e, id); !errors.Is(err, ErrCooldownActive) {
				t.Fatalf("immediate retry error = %v, want ErrCooldownActive", err)
			}

			// One second before the window it is still rejected.
			clock.advance(tt.window - time.Second)
			if err := tt.act(e, id); !errors.Is(err, ErrCooldownActive) {
				t.Fatalf("just-before-boundary error = %v, want ErrCooldownActive", err)
			}

			// Exactly at the boundary it is permitted.
			clock.advance(time.Second)
			if err := tt.act(e, id); err != nil {
				t.Fatalf("at-boundary error = %v, want nil", err)
			}
		})
	}
}

func TestCareActions_RejectNonOwner(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mintFor(t, e, "alice", "Pebbles", 0)

	if err := e.Train("mallory", id); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Train() error = %v, want ErrNotOwner", err)
	}
	if err := e.Groom("mallory", id); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Groom() error = %v, want ErrNotOwner", err)
	}
	if _, err := e.Harvest("mallory", id); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Harvest() error = %v, want ErrNotOwner", err)
	}
	if err := e.Train("alice", 99); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Train(unknown) error = %v, want ErrUnknownID", err)
	}
}

func TestHarvest_CreditsEssence(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mintFor(t, e, "alice", "Pebbles", 0)

	// Baseline skill 10: yield = 5 + 10/10.
	yield, err := e.Harvest("alice", id)
	if err != nil {
		t.Fatalf("Harvest() error = %v", err)
	}
	if yield != 6 {
		t.Errorf("yield = %d, want 6", yield)
	}
	if got := e.Resources("alice").Essence; got != yield {
		t.Errorf("Essence = %d, want %d", got, yield)
	}
	c, _ := e.Get(id)
	if c.Produced != yield {
		t.Errorf("Produced = %d, want %d", c.Produced, yield)
	}
}

func TestStats_StayWithinBounds(t *testing.T) {
	e, clock := newTestEngine(t)
	id := mintFor(t, e, "alice", "Pebbles", 0)

	for i := 0; i < 150; i++ {
		if err := e.Train("alice", id); err != nil {
			t.Fatalf("Train() #%d error = %v", i, err)
		}
		if err := e.Groom("alice", id); err != nil {
			t.Fatalf("Groom() #%d error = %v", i, err)
		}
		clock.advance(12 * time.Hour)
	}

	c, _ := e.Get(id)
	for name, v := range map[string]int{
		"Level": c.Level, "Rarity": c.Rarity,
		"Morale": c.Morale, "Energy": c.Energy, "Skill": c.Skill,
	} {
		if v < 0 || v > MaxStat {
			t.Errorf("%s = %d, out of [0,%d]", name, v, MaxStat)
		}
	}
}
