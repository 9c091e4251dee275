package engine

import "sort"

// registry is the single source of truth for token identity and ownership.
// Ids are assigned monotonically from zero and never reused. The registry is
// not safe for concurrent use on its own; the owning Engine serializes access.
type registry struct {
	nextID  int64
	owners  map[int64]string
	byOwner map[string]map[int64]struct{}
}

func newRegistry() *registry {
	return &registry{
		owners:  make(map[int64]string),
		byOwner: make(map[string]map[int64]struct{}),
	}
}

// mint assigns the next id to owner. Callers must validate payment before
// minting: a failed operation must not consume an id.
func (r *registry) mint(owner string) int64 {
	id := r.nextID
	r.nextID++
	r.owners[id] = owner
	r.addToOwner(owner, id)
	return id
}

func (r *registry) ownerOf(id int64) (string, error) {
	owner, ok := r.owners[id]
	if !ok {
		return "", ErrUnknownID
	}
	return owner, nil
}

func (r *registry) transfer(id int64, from, to string) error {
	owner, ok := r.owners[id]
	if !ok {
		return ErrUnknownID
	}
	if owner != from {
		return ErrNotOwner
	}
	delete(r.byOwner[from], id)
	r.owners[id] = to
	r.addToOwner(to, id)
	return nil
}

func (r *registry) idsOwnedBy(owner string) []int64 {
	ids := make([]int64, 0, len(r.byOwner[owner]))
	for id := range r.byOwner[owner] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *registry) count(owner string) int {
	return len(r.byOwner[owner])
}

func (r *registry) addToOwner(owner string, id int64) {
	set, ok := r.byOwner[owner]
	if !ok {
		set = make(map[int64]struct{})
		r.byOwner[owner] = set
	}
	set[id] = struct{}{}
}

// restoreToken reinstates a persisted token without assigning a new id.
func (r *registry) restoreToken(id int64, owner string) {
	r.owners[id] = owner
	r.addToOwner(owner, id)
	if id >= r.nextID {
		r.nextID = id + 1
	}
}
