package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/eldermoor/menagerie/menagerie/database/models"
	"github.com/uptrace/bun"
)

type CreatureRepository interface {
	UpsertTx(ctx context.Context, tx bun.Tx, creature *models.Creature) error
	GetAllByRealm(ctx context.Context, realm string) ([]*models.Creature, error)
	GetByToken(ctx context.Context, realm string, tokenID int64) (*models.Creature, error)
}

type creatureRepository struct {
	db *bun.DB
}

func NewCreatureRepository(db *bun.DB) CreatureRepository {
	return &creatureRepository{db: db}
}

func (r *creatureRepository) UpsertTx(ctx context.Context, tx bun.Tx, creature *models.Creature) error {
	creature.UpdatedAt = time.Now()

	_, err := tx.NewInsert().
		Model(creature).
		On("CONFLICT (realm, token_id) DO UPDATE").
		Set("owner = EXCLUDED.owner").
		Set("name = EXCLUDED.name").
		Set("level = EXCLUDED.level").
		Set("morale = EXCLUDED.morale").
		Set("energy = EXCLUDED.energy").
		Set("skill = EXCLUDED.skill").
		Set("produced = EXCLUDED.produced").
		Set("last_trained = EXCLUDED.last_trained").
		Set("last_groomed = EXCLUDED.last_groomed").
		Set("last_harvest = EXCLUDED.last_harvest").
		Set("breed_ready_at = EXCLUDED.breed_ready_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert creature: %w", err)
	}
	return nil
}

func (r *creatureRepository) GetAllByRealm(ctx context.Context, realm string) ([]*models.Creature, error) {
	var creatures []*models.Creature
	err := r.db.NewSelect().
		Model(&creatures).
		Where("realm = ?", realm).
		Order("token_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load creatures: %w", err)
	}
	return creatures, nil
}

func (r *creatureRepository) GetByToken(ctx context.Context, realm string, tokenID int64) (*models.Creature, error) {
	creature := new(models.Creature)
	err := r.db.NewSelect().
		Model(creature).
		Where("realm = ? AND token_id = ?", realm, tokenID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get creature: %w", err)
	}
	return creature, nil
}
