package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Structure is the persisted form of an engine structure (land plot or
// grimoire).
type Structure struct {
	bun.BaseModel `bun:"table:structures,alias:st"`

	Realm   string `bun:"realm,pk,type:text"`
	TokenID int64  `bun:"token_id,pk"`
	Owner   string `bun:"owner,notnull"`
	Name    string `bun:"name,notnull"`

	Capacity int `bun:"capacity,notnull,default:0"`
	Size     int `bun:"size,notnull,default:1"`

	Active         bool      `bun:"active,notnull,default:false"`
	SubType        string    `bun:"sub_type,type:text,default:''"`
	PlantedAt      time.Time `bun:"planted_at,nullzero"`
	ReadyAt        time.Time `bun:"ready_at,nullzero"`
	LastMaintained time.Time `bun:"last_maintained,nullzero"`

	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
