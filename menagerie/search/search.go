// Package search provides fuzzy name lookup over a realm's creatures, so
// callers can resolve "frostbite" to the creature named "Frostbite Jr."
// without knowing its token id.
package search

import (
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"

	"github.com/eldermoor/menagerie/menagerie/engine"
)

const indexCacheSize = 256

// creatureItems implements fuzzy.Source over a slice of creatures.
type creatureItems []creatureItem

type creatureItem struct {
	creature engine.Creature
	name     string
}

func (items creatureItems) Len() int {
	return len(items)
}

func (items creatureItems) String(i int) string {
	return items[i].name
}

type cachedIndex struct {
	items   creatureItems
	builtAt time.Time
}

// Service answers fuzzy queries against an engine's creatures. Per-owner
// indexes are cached with a TTL so repeated lookups do not rebuild the
// snapshot on every call; stale entries simply get rebuilt.
type Service struct {
	eng   *engine.Engine
	cache *lru.Cache
	ttl   time.Duration
	clock engine.Clock
}

func NewService(eng *engine.Engine, ttl time.Duration, clock engine.Clock) *Service {
	cache, _ := lru.New(indexCacheSize)
	return &Service{
		eng:   eng,
		cache: cache,
		ttl:   ttl,
		clock: clock,
	}
}

// ByName returns all creatures matching query, best match first. An empty
// query matches nothing.
func (s *Service) ByName(query string) []engine.Creature {
	return s.search("", query)
}

// OwnedByName restricts the match to creatures held by owner.
func (s *Service) OwnedByName(owner, query string) []engine.Creature {
	if owner == "" {
		return nil
	}
	return s.search(owner, query)
}

// Best returns the single best match for query, if any.
func (s *Service) Best(query string) (engine.Creature, bool) {
	results := s.ByName(query)
	if len(results) == 0 {
		return engine.Creature{}, false
	}
	return results[0], true
}

func (s *Service) search(owner, query string) []engine.Creature {
	normalized := normalize(query)
	if normalized == "" {
		return nil
	}

	items := s.index(owner)
	matches := fuzzy.FindFrom(normalized, items)

	results := make([]engine.Creature, len(matches))
	for i, match := range matches {
		results[i] = items[match.Index].creature
	}
	return results
}

// index returns the cached searchable items for owner, rebuilding from a
// fresh snapshot when missing or past the TTL. The empty owner keys the
// realm-wide index.
func (s *Service) index(owner string) creatureItems {
	now := s.clock.Now()
	if v, ok := s.cache.Get(owner); ok {
		idx := v.(cachedIndex)
		if now.Sub(idx.builtAt) < s.ttl {
			return idx.items
		}
	}

	var creatures []engine.Creature
	if owner == "" {
		creatures = s.eng.Snapshot().Creatures
	} else {
		for _, id := range s.eng.IDsOwnedBy(owner) {
			if c, err := s.eng.Get(id); err == nil {
				creatures = append(creatures, c)
			}
		}
	}

	items := make(creatureItems, len(creatures))
	for i, c := range creatures {
		items[i] = creatureItem{creature: c, name: normalize(c.Name)}
	}
	s.cache.Add(owner, cachedIndex{items: items, builtAt: now})
	return items
}

// normalize lowercases and collapses separators so "Frost_Bite" and
// "frost bite" match the same queries.
func normalize(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ToLower(name)
	return strings.Join(strings.Fields(name), " ")
}
