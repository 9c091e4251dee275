package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eldermoor/menagerie/menagerie/database/models"
	"github.com/uptrace/bun"
)

type AccountRepository interface {
	UpsertTx(ctx context.Context, tx bun.Tx, account *models.AccountStat) error
	GetAllByRealm(ctx context.Context, realm string) ([]*models.AccountStat, error)
	UpsertRealmStatTx(ctx context.Context, tx bun.Tx, stat *models.RealmStat) error
	GetRealmStat(ctx context.Context, realm string) (*models.RealmStat, error)
}

type accountRepository struct {
	db *bun.DB
}

func NewAccountRepository(db *bun.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) UpsertTx(ctx context.Context, tx bun.Tx, account *models.AccountStat) error {
	account.UpdatedAt = time.Now()

	_, err := tx.NewInsert().
		Model(account).
		On("CONFLICT (realm, owner) DO UPDATE").
		Set("essence = EXCLUDED.essence").
		Set("catalyst = EXCLUDED.catalyst").
		Set("produce = EXCLUDED.produce").
		Set("proceeds = EXCLUDED.proceeds").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert account stats: %w", err)
	}
	return nil
}

func (r *accountRepository) GetAllByRealm(ctx context.Context, realm string) ([]*models.AccountStat, error) {
	var accounts []*models.AccountStat
	err := r.db.NewSelect().
		Model(&accounts).
		Where("realm = ?", realm).
		Order("owner ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load account stats: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) UpsertRealmStatTx(ctx context.Context, tx bun.Tx, stat *models.RealmStat) error {
	stat.UpdatedAt = time.Now()

	_, err := tx.NewInsert().
		Model(stat).
		On("CONFLICT (realm) DO UPDATE").
		Set("treasury = EXCLUDED.treasury").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert realm stats: %w", err)
	}
	return nil
}

func (r *accountRepository) GetRealmStat(ctx context.Context, realm string) (*models.RealmStat, error) {
	stat := new(models.RealmStat)
	err := r.db.NewSelect().
		Model(stat).
		Where("realm = ?", realm).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.RealmStat{Realm: realm}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get realm stats: %w", err)
	}
	return stat, nil
}
