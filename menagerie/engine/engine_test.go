package engine

import (
	"errors"
	"reflect"
	"testing"
)

// TestLedgerScenario walks the canonical end-to-end sequence: free first
// mint, fee-gated second mint, self-breeding rejection, then a full
// marketplace settlement.
func TestLedgerScenario(t *testing.T) {
	e, _ := newTestEngine(t)

	id, err := e.Mint("alice", "Pebbles", 0)
	if err != nil {
		t.Fatalf("first Mint() error = %v", err)
	}
	if id != 0 {
		t.Fatalf("first id = %d, want 0", id)
	}

	if _, err := e.Mint("alice", "Clover", 49_999); !errors.Is(err, ErrInsufficientPayment) {
		t.Fatalf("underpaid Mint() error = %v, want ErrInsufficientPayment", err)
	}
	// The failed mint must not have consumed an id.
	if id2, err := e.Mint("alice", "Clover", 50_000); err != nil || id2 != 1 {
		t.Fatalf("paid Mint() = %d, %v, want 1, nil", id2, err)
	}

	if _, err := e.Breed("alice", 0, 0, 20_000); !errors.Is(err, ErrSameParent) {
		t.Fatalf("self Breed() error = %v, want ErrSameParent", err)
	}

	const price = 1_000
	if err := e.List("alice", 0, price); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, err := e.BuyListed("bob", 0, price); err != nil {
		t.Fatalf("BuyListed() error = %v", err)
	}

	if owner, _ := e.OwnerOf(0); owner != "bob" {
		t.Errorf("owner = %q, want bob", owner)
	}
	if l, _ := e.GetListing(0); l.Active {
		t.Error("listing still active after buy")
	}
	if got := e.Proceeds("alice"); got != price {
		t.Errorf("alice proceeds = %d, want %d", got, price)
	}
	if got := e.IDsOwnedBy("alice"); !reflect.DeepEqual(got, []int64{1}) {
		t.Errorf("IDsOwnedBy(alice) = %v, want [1]", got)
	}
	if got := e.IDsOwnedBy("bob"); !reflect.DeepEqual(got, []int64{0}) {
		t.Errorf("IDsOwnedBy(bob) = %v, want [0]", got)
	}
}

func TestMint_TraitsDerivedOnceFromDNA(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mintFor(t, e, "alice", "Pebbles", 0)

	c, _ := e.Get(id)
	if c.DNA != NewDNA("farm", id, "Pebbles", "alice") {
		t.Errorf("stored DNA does not match mint derivation")
	}
	if c.Rarity != DeriveTraits(c.DNA).Rarity {
		t.Errorf("stored rarity %d does not match derivation", c.Rarity)
	}
}

func TestTransfer(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mintFor(t, e, "alice", "Pebbles", 0)

	if err := e.Transfer(id, "mallory", "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Transfer() by stranger error = %v, want ErrNotOwner", err)
	}
	if err := e.Transfer(99, "alice", "bob"); !errors.Is(err, ErrUnknownID) {
		t.Fatalf("Transfer(unknown) error = %v, want ErrUnknownID", err)
	}
	if err := e.Transfer(id, "alice", "bob"); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	c, _ := e.Get(id)
	if c.Owner != "bob" {
		t.Errorf("record owner = %q, want bob", c.Owner)
	}
}

func TestMint_RejectsBadNames(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, name := range []string{"", "   ", string(make([]byte, 64))} {
		if _, err := e.Mint("alice", name, 0); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Mint(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestSnapshotRestore_Roundtrip(t *testing.T) {
	e, clock := newTestEngine(t)
	mintFor(t, e, "alice", "Pebbles", 0)
	mintFor(t, e, "bob", "Basil", 0)
	buyPlanted(t, e, "alice", "Wheat")
	if err := e.List("alice", 0, 500); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	snap := e.Snapshot()

	restored := New(FarmEconomy(), clock)
	restored.Restore(snap)

	if got := restored.Snapshot(); !reflect.DeepEqual(got, snap) {
		t.Errorf("restored snapshot differs:\n got %+v\nwant %+v", got, snap)
	}

	// Id assignment resumes past the persisted ids.
	id, err := restored.Mint("carol", "Nimbus", 0)
	if err != nil {
		t.Fatalf("Mint() after restore error = %v", err)
	}
	if id != 2 {
		t.Errorf("post-restore id = %d, want 2", id)
	}
}

func TestDrainDirty(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mintFor(t, e, "alice", "Pebbles", 0)

	f := e.DrainDirty()
	if len(f.Creatures) != 1 || f.Creatures[0].ID != id {
		t.Fatalf("first drain creatures = %+v, want the minted creature", f.Creatures)
	}

	// Nothing changed since, so the next drain is empty.
	if f := e.DrainDirty(); !f.Empty() {
		t.Errorf("second drain = %+v, want empty", f)
	}

	if err := e.Train("alice", id); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	f = e.DrainDirty()
	if len(f.Creatures) != 1 {
		t.Fatalf("drain after train = %+v, want one creature", f.Creatures)
	}

	// A failed write puts the entities back into the dirty set.
	e.Requeue(f)
	if f := e.DrainDirty(); len(f.Creatures) != 1 {
		t.Errorf("drain after requeue = %+v, want one creature", f.Creatures)
	}
}
