package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Listing is the persisted form of a marketplace sell order. Inactive rows
// are kept for history.
type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	Realm   string `bun:"realm,pk,type:text"`
	TokenID int64  `bun:"token_id,pk"`
	Seller  string `bun:"seller,notnull"`
	Price   int64  `bun:"price,notnull"`
	Active  bool   `bun:"active,notnull,default:false"`

	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
