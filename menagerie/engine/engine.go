package engine

import (
	"sort"
	"strings"
	"sync"
)

// Engine is the authoritative state machine for one economy realm. Every
// mutating operation runs its whole read-check-write sequence under a single
// write lock, so two concurrent calls can never both act on the same stale
// state. Queries take the read lock and return copies.
type Engine struct {
	cfg   *EconomyConfig
	clock Clock

	mu           sync.RWMutex
	creatures    map[int64]*Creature
	creatureReg  *registry
	structures   map[int64]*Structure
	structureReg *registry
	balances     map[string]*Resources
	proceeds     map[string]int64
	listings     map[int64]*Listing
	treasury     int64

	dirty dirtySet
}

func New(cfg *EconomyConfig, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{
		cfg:          cfg,
		clock:        clock,
		creatures:    make(map[int64]*Creature),
		creatureReg:  newRegistry(),
		structures:   make(map[int64]*Structure),
		structureReg: newRegistry(),
		balances:     make(map[string]*Resources),
		proceeds:     make(map[string]int64),
		listings:     make(map[int64]*Listing),
		dirty:        newDirtySet(),
	}
}

func (e *Engine) Realm() string { return e.cfg.Realm }

// Mint creates a new creature for owner. The first creature per owner is
// free; later mints require payment of at least the configured mint fee.
func (e *Engine) Mint(owner, name string, payment int64) (int64, error) {
	if err := e.validName(name); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.creatureReg.count(owner) > 0 && payment < e.cfg.MintFee {
		return 0, ErrInsufficientPayment
	}

	id := e.creatureReg.mint(owner)
	dna := NewDNA(e.cfg.Realm, id, name, owner)
	traits := DeriveTraits(dna)

	e.creatures[id] = &Creature{
		ID:     id,
		Owner:  owner,
		Name:   name,
		DNA:    dna,
		Level:  1,
		Rarity: traits.Rarity,
		Morale: e.cfg.BaselineMorale,
		Energy: e.cfg.BaselineEnergy,
		Skill:  e.cfg.BaselineSkill,
	}
	e.treasury += payment
	e.dirty.creature(id)
	return id, nil
}

// Transfer moves a creature between accounts. Listed creatures are frozen
// until their listing is resolved or cancelled.
func (e *Engine) Transfer(id int64, from, to string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if l, ok := e.listings[id]; ok && l.Active {
		return ErrListed
	}
	if err := e.creatureReg.transfer(id, from, to); err != nil {
		return err
	}
	e.creatures[id].Owner = to
	e.dirty.creature(id)
	return nil
}

func (e *Engine) OwnerOf(id int64) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.creatureReg.ownerOf(id)
}

func (e *Engine) IDsOwnedBy(owner string) []int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.creatureReg.idsOwnedBy(owner)
}

// Get returns a copy of the full creature record.
func (e *Engine) Get(id int64) (Creature, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.creatures[id]
	if !ok {
		return Creature{}, ErrUnknownID
	}
	return *c, nil
}

func (e *Engine) GetStructure(id int64) (Structure, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s, ok := e.structures[id]
	if !ok {
		return Structure{}, ErrUnknownID
	}
	return *s, nil
}

func (e *Engine) StructuresOwnedBy(owner string) []int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.structureReg.idsOwnedBy(owner)
}

// Resources returns the owner's balance triple. Unknown owners hold zeroes.
func (e *Engine) Resources(owner string) Resources {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if b, ok := e.balances[owner]; ok {
		return *b
	}
	return Resources{}
}

// Proceeds is the cumulative payout an account has earned from marketplace
// sales and essence sales.
func (e *Engine) Proceeds(owner string) int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.proceeds[owner]
}

// Treasury is the cumulative fee intake of the realm.
func (e *Engine) Treasury() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.treasury
}

func (e *Engine) validName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > e.cfg.MaxNameLength {
		return ErrInvalidName
	}
	return nil
}

// balanceLocked returns the owner's mutable balance, creating it on first
// touch. Callers must hold the write lock.
func (e *Engine) balanceLocked(owner string) *Resources {
	b, ok := e.balances[owner]
	if !ok {
		b = &Resources{}
		e.balances[owner] = b
	}
	return b
}

func (e *Engine) creatureLocked(id int64) (*Creature, error) {
	c, ok := e.creatures[id]
	if !ok {
		return nil, ErrUnknownID
	}
	return c, nil
}

func (e *Engine) ownedCreatureLocked(caller string, id int64) (*Creature, error) {
	c, err := e.creatureLocked(id)
	if err != nil {
		return nil, err
	}
	if c.Owner != caller {
		return nil, ErrNotOwner
	}
	return c, nil
}

func (e *Engine) listedLocked(id int64) bool {
	l, ok := e.listings[id]
	return ok && l.Active
}

// dirtySet tracks entities mutated since the last persistence flush.
type dirtySet struct {
	creatures  map[int64]struct{}
	structures map[int64]struct{}
	listings   map[int64]struct{}
	accounts   map[string]struct{}
}

func newDirtySet() dirtySet {
	return dirtySet{
		creatures:  make(map[int64]struct{}),
		structures: make(map[int64]struct{}),
		listings:   make(map[int64]struct{}),
		accounts:   make(map[string]struct{}),
	}
}

func (d *dirtySet) creature(id int64)  { d.creatures[id] = struct{}{} }
func (d *dirtySet) structure(id int64) { d.structures[id] = struct{}{} }
func (d *dirtySet) listing(id int64)   { d.listings[id] = struct{}{} }
func (d *dirtySet) account(owner string) {
	d.accounts[owner] = struct{}{}
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
