package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Creature is the persisted form of an engine creature. Realm plus token id
// identify a row; the engine remains the authority, rows are write-behind
// copies.
type Creature struct {
	bun.BaseModel `bun:"table:creatures,alias:cr"`

	Realm   string `bun:"realm,pk,type:text"`
	TokenID int64  `bun:"token_id,pk"`
	Owner   string `bun:"owner,notnull"`
	Name    string `bun:"name,notnull"`
	DNA     string `bun:"dna,notnull,type:text"`

	Level    int   `bun:"level,notnull,default:1"`
	Rarity   int   `bun:"rarity,notnull,default:0"`
	Morale   int   `bun:"morale,notnull,default:0"`
	Energy   int   `bun:"energy,notnull,default:0"`
	Skill    int   `bun:"skill,notnull,default:0"`
	Produced int64 `bun:"produced,notnull,default:0"`

	LastTrained  time.Time `bun:"last_trained,nullzero"`
	LastGroomed  time.Time `bun:"last_groomed,nullzero"`
	LastHarvest  time.Time `bun:"last_harvest,nullzero"`
	BreedReadyAt time.Time `bun:"breed_ready_at,nullzero"`

	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
