package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AccountStat is the per-owner resource balance triple plus cumulative
// proceeds for one realm.
type AccountStat struct {
	bun.BaseModel `bun:"table:account_stats,alias:a"`

	Realm string `bun:"realm,pk,type:text"`
	Owner string `bun:"owner,pk,type:text"`

	Essence  int64 `bun:"essence,notnull,default:0"`
	Catalyst int64 `bun:"catalyst,notnull,default:0"`
	Produce  int64 `bun:"produce,notnull,default:0"`
	Proceeds int64 `bun:"proceeds,notnull,default:0"`

	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// RealmStat carries realm-wide counters, currently the fee treasury.
type RealmStat struct {
	bun.BaseModel `bun:"table:realm_stats,alias:rs"`

	Realm    string `bun:"realm,pk,type:text"`
	Treasury int64  `bun:"treasury,notnull,default:0"`

	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
