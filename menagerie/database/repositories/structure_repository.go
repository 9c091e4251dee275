package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/eldermoor/menagerie/menagerie/database/models"
	"github.com/uptrace/bun"
)

type StructureRepository interface {
	UpsertTx(ctx context.Context, tx bun.Tx, structure *models.Structure) error
	GetAllByRealm(ctx context.Context, realm string) ([]*models.Structure, error)
}

type structureRepository struct {
	db *bun.DB
}

func NewStructureRepository(db *bun.DB) StructureRepository {
	return &structureRepository{db: db}
}

func (r *structureRepository) UpsertTx(ctx context.Context, tx bun.Tx, structure *models.Structure) error {
	structure.UpdatedAt = time.Now()

	_, err := tx.NewInsert().
		Model(structure).
		On("CONFLICT (realm, token_id) DO UPDATE").
		Set("owner = EXCLUDED.owner").
		Set("name = EXCLUDED.name").
		Set("active = EXCLUDED.active").
		Set("sub_type = EXCLUDED.sub_type").
		Set("planted_at = EXCLUDED.planted_at").
		Set("ready_at = EXCLUDED.ready_at").
		Set("last_maintained = EXCLUDED.last_maintained").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert structure: %w", err)
	}
	return nil
}

func (r *structureRepository) GetAllByRealm(ctx context.Context, realm string) ([]*models.Structure, error) {
	var structures []*models.Structure
	err := r.db.NewSelect().
		Model(&structures).
		Where("realm = ?", realm).
		Order("token_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load structures: %w", err)
	}
	return structures, nil
}
