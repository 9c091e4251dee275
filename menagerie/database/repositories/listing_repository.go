package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/eldermoor/menagerie/menagerie/database/models"
	"github.com/uptrace/bun"
)

type ListingRepository interface {
	UpsertTx(ctx context.Context, tx bun.Tx, listing *models.Listing) error
	GetAllByRealm(ctx context.Context, realm string) ([]*models.Listing, error)
	GetActive(ctx context.Context, realm string) ([]*models.Listing, error)
}

type listingRepository struct {
	db *bun.DB
}

func NewListingRepository(db *bun.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) UpsertTx(ctx context.Context, tx bun.Tx, listing *models.Listing) error {
	listing.UpdatedAt = time.Now()

	_, err := tx.NewInsert().
		Model(listing).
		On("CONFLICT (realm, token_id) DO UPDATE").
		Set("seller = EXCLUDED.seller").
		Set("price = EXCLUDED.price").
		Set("active = EXCLUDED.active").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert listing: %w", err)
	}
	return nil
}

func (r *listingRepository) GetAllByRealm(ctx context.Context, realm string) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Where("realm = ?", realm).
		Order("token_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	return listings, nil
}

func (r *listingRepository) GetActive(ctx context.Context, realm string) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Where("realm = ? AND active = ?", realm, true).
		Order("token_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active listings: %w", err)
	}
	return listings, nil
}
