package engine

import "time"

// Creature is an owned collectible with care cooldowns and stats. Identity is
// permanent: records are never deleted, only ownership changes.
type Creature struct {
	ID    int64
	Owner string
	Name  string
	DNA   DNA

	Level  int
	Rarity int // derived from DNA at mint, immutable afterwards
	Morale int
	Energy int
	Skill  int

	// Produced is the lifetime essence this creature has yielded.
	Produced int64

	LastTrained  time.Time
	LastGroomed  time.Time
	LastHarvest  time.Time
	BreedReadyAt time.Time
}

// Structure is an owned productive asset with a timed growth cycle
// (land plot / grimoire).
type Structure struct {
	ID    int64
	Owner string
	Name  string

	Capacity int // fertility/potency, fixed at purchase
	Size     int

	Active         bool
	SubType        string
	PlantedAt      time.Time
	ReadyAt        time.Time
	LastMaintained time.Time
}

// Resources is a per-owner balance triple. Essence is the creature product
// (wool/mana), Catalyst the planting input (seeds/spells), Produce the
// structure output (crops/scrolls).
type Resources struct {
	Essence  int64
	Catalyst int64
	Produce  int64
}

// Listing is an active sell order on the marketplace.
type Listing struct {
	TokenID int64
	Seller  string
	Price   int64
	Active  bool
}

func clampStat(v int) int {
	if v > MaxStat {
		return MaxStat
	}
	if v < 0 {
		return 0
	}
	return v
}
