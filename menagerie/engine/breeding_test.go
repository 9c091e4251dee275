package engine

import (
	"errors"
	"testing"
	"time"
)

func raiseToLevel(t *testing.T, e *Engine, clock *fakeClock, owner string, id int64, level int) {
	t.Helper()
	for {
		c, err := e.Get(id)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", id, err)
		}
		if c.Level >= level {
			return
		}
		if err := e.Train(owner, id); err != nil {
			t.Fatalf("Train() error = %v", err)
		}
		clock.advance(4 * time.Hour)
	}
}

func breedablePair(t *testing.T, e *Engine, clock *fakeClock) (int64, int64) {
	t.Helper()
	p1 := mintFor(t, e, "alice", "Pebbles", 0)
	p2 := mintFor(t, e, "alice", "Clover", 50_000)
	raiseToLevel(t, e, clock, "alice", p1, 5)
	raiseToLevel(t, e, clock, "alice", p2, 5)
	return p1, p2
}

func TestBreed_Preconditions(t *testing.T) {
	e, clock := newTestEngine(t)
	p1, p2 := breedablePair(t, e, clock)
	young := mintFor(t, e, "alice", "Sprout", 50_000)

	tests := []struct {
		name    string
		caller  string
		p1, p2  int64
		payment int64
		wantErr error
	}{
		{name: "same parent", caller: "alice", p1: p1, p2: p1, payment: 20_000, wantErr: ErrSameParent},
		{name: "unknown parent", caller: "alice", p1: p1, p2: 99, payment: 20_000, wantErr: ErrUnknownID},
		{name: "not owner", caller: "mallory", p1: p1, p2: p2, payment: 20_000, wantErr: ErrNotOwner},
		{name: "too young", caller: "alice", p1: p1, p2: young, payment: 20_000, wantErr: ErrTooYoung},
		{name: "underpaid", caller: "alice", p1: p1, p2: p2, payment: 19_999, wantErr: ErrInsufficientPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Breed(tt.caller, tt.p1, tt.p2, tt.payment); !errors.Is(err, tt.wantErr) {
				t.Errorf("Breed() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBreed_CreatesChildAndSetsCooldowns(t *testing.T) {
	e, clock := newTestEngine(t)
	p1, p2 := breedablePair(t, e, clock)

	child, err := e.Breed("alice", p1, p2, 20_000)
	if err != nil {
		t.Fatalf("Breed() error = %v", err)
	}

	c, err := e.Get(child)
	if err != nil {
		t.Fatalf("Get(child) error = %v", err)
	}
	if c.Owner != "alice" || c.Level != 1 {
		t.Errorf("child = %+v, want owner alice level 1", c)
	}

	cp1, _ := e.Get(p1)
	cp2, _ := e.Get(p2)
	if want := CombineDNA(cp1.DNA, cp2.DNA); c.DNA != want {
		t.Errorf("child DNA = %s, want %s", c.DNA, want)
	}
	if c.Rarity != DeriveTraits(c.DNA).Rarity {
		t.Errorf("child rarity %d not derived from DNA", c.Rarity)
	}

	wantReady := clock.Now().Add(24 * time.Hour)
	if !cp1.BreedReadyAt.Equal(wantReady) || !cp2.BreedReadyAt.Equal(wantReady) {
		t.Errorf("parent cooldowns = %v/%v, want %v", cp1.BreedReadyAt, cp2.BreedReadyAt, wantReady)
	}

	// Parents are now on cooldown.
	if _, err := e.Breed("alice", p1, p2, 20_000); !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("immediate rebreed error = %v, want ErrCooldownActive", err)
	}
	clock.advance(24 * time.Hour)
	if _, err := e.Breed("alice", p1, p2, 20_000); err != nil {
		t.Fatalf("rebreed after cooldown error = %v", err)
	}
}

func TestBreed_DeterministicChildDNA(t *testing.T) {
	run := func() DNA {
		e, clock := newTestEngine(t)
		p1, p2 := breedablePair(t, e, clock)
		child, err := e.Breed("alice", p1, p2, 20_000)
		if err != nil {
			t.Fatalf("Breed() error = %v", err)
		}
		c, _ := e.Get(child)
		return c.DNA
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same parents produced different child DNA: %s != %s", a, b)
	}
}
