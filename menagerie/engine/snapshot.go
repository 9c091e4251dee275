package engine

import "sort"

// AccountState pairs an owner with their balance triple and cumulative
// proceeds for persistence and display.
type AccountState struct {
	Owner    string
	Balance  Resources
	Proceeds int64
}

// Snapshot is a consistent copy of the full realm state, taken under the
// read lock. Display reads and persistence restores go through it instead of
// touching live records.
type Snapshot struct {
	Realm      string
	Creatures  []Creature
	Structures []Structure
	Listings   []Listing
	Accounts   []AccountState
	Treasury   int64
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := Snapshot{
		Realm:    e.cfg.Realm,
		Treasury: e.treasury,
	}
	for _, id := range sortedKeys(e.creatures) {
		snap.Creatures = append(snap.Creatures, *e.creatures[id])
	}
	for _, id := range sortedKeys(e.structures) {
		snap.Structures = append(snap.Structures, *e.structures[id])
	}
	for _, id := range sortedKeys(e.listings) {
		snap.Listings = append(snap.Listings, *e.listings[id])
	}
	snap.Accounts = e.accountStatesLocked(nil)
	return snap
}

// Flush holds copies of everything mutated since the previous drain. The
// persistence layer writes a Flush in one transaction.
type Flush struct {
	Creatures  []Creature
	Structures []Structure
	Listings   []Listing
	Accounts   []AccountState
	Treasury   int64
}

func (f Flush) Empty() bool {
	return len(f.Creatures) == 0 && len(f.Structures) == 0 &&
		len(f.Listings) == 0 && len(f.Accounts) == 0
}

// DrainDirty swaps out the dirty set and returns copies of the affected
// entities. If the subsequent write fails the caller re-marks them via
// Requeue.
func (e *Engine) DrainDirty() Flush {
	e.mu.Lock()
	defer e.mu.Unlock()

	var f Flush
	for _, id := range sortedIDs(e.dirty.creatures) {
		if c, ok := e.creatures[id]; ok {
			f.Creatures = append(f.Creatures, *c)
		}
	}
	for _, id := range sortedIDs(e.dirty.structures) {
		if s, ok := e.structures[id]; ok {
			f.Structures = append(f.Structures, *s)
		}
	}
	for _, id := range sortedIDs(e.dirty.listings) {
		if l, ok := e.listings[id]; ok {
			f.Listings = append(f.Listings, *l)
		}
	}
	owners := make([]string, 0, len(e.dirty.accounts))
	for owner := range e.dirty.accounts {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	f.Accounts = e.accountStatesLocked(owners)
	f.Treasury = e.treasury

	e.dirty = newDirtySet()
	return f
}

// Requeue marks a failed flush dirty again so the next drain retries it.
func (e *Engine) Requeue(f Flush) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, c := range f.Creatures {
		e.dirty.creature(c.ID)
	}
	for _, s := range f.Structures {
		e.dirty.structure(s.ID)
	}
	for _, l := range f.Listings {
		e.dirty.listing(l.TokenID)
	}
	for _, a := range f.Accounts {
		e.dirty.account(a.Owner)
	}
}

// Restore loads persisted state into an empty engine. Token ids feed the
// registries so id assignment resumes past the highest persisted id.
func (e *Engine) Restore(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, c := range snap.Creatures {
		cc := c
		e.creatures[c.ID] = &cc
		e.creatureReg.restoreToken(c.ID, c.Owner)
	}
	for _, s := range snap.Structures {
		ss := s
		e.structures[s.ID] = &ss
		e.structureReg.restoreToken(s.ID, s.Owner)
	}
	for _, l := range snap.Listings {
		ll := l
		e.listings[l.TokenID] = &ll
	}
	for _, a := range snap.Accounts {
		bal := a.Balance
		e.balances[a.Owner] = &bal
		e.proceeds[a.Owner] = a.Proceeds
	}
	e.treasury = snap.Treasury
}

// accountStatesLocked copies account state for the given owners, or for all
// known owners when nil.
func (e *Engine) accountStatesLocked(owners []string) []AccountState {
	if owners == nil {
		seen := make(map[string]struct{}, len(e.balances)+len(e.proceeds))
		for owner := range e.balances {
			seen[owner] = struct{}{}
		}
		for owner := range e.proceeds {
			seen[owner] = struct{}{}
		}
		for owner := range seen {
			owners = append(owners, owner)
		}
		sort.Strings(owners)
	}

	states := make([]AccountState, 0, len(owners))
	for _, owner := range owners {
		st := AccountState{Owner: owner, Proceeds: e.proceeds[owner]}
		if b, ok := e.balances[owner]; ok {
			st.Balance = *b
		}
		states = append(states, st)
	}
	return states
}

func sortedKeys[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
