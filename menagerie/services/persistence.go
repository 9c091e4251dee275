package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eldermoor/menagerie/menagerie/database"
	"github.com/eldermoor/menagerie/menagerie/database/models"
	"github.com/eldermoor/menagerie/menagerie/database/repositories"
	"github.com/eldermoor/menagerie/menagerie/engine"
	"github.com/eldermoor/menagerie/menagerie/logger"
	"github.com/uptrace/bun"
)

// PersistenceService is the write-behind bridge between one realm's engine
// and the database. The engine stays authoritative; this service drains its
// dirty set on an interval and lands each batch in a single serializable
// transaction, so a batch is either fully persisted or retried whole.
type PersistenceService struct {
	db       *database.DB
	eng      *engine.Engine
	interval time.Duration

	creatures  repositories.CreatureRepository
	structures repositories.StructureRepository
	listings   repositories.ListingRepository
	accounts   repositories.AccountRepository
}

func NewPersistenceService(db *database.DB, eng *engine.Engine, interval time.Duration) *PersistenceService {
	return &PersistenceService{
		db:         db,
		eng:        eng,
		interval:   interval,
		creatures:  repositories.NewCreatureRepository(db.BunDB()),
		structures: repositories.NewStructureRepository(db.BunDB()),
		listings:   repositories.NewListingRepository(db.BunDB()),
		accounts:   repositories.NewAccountRepository(db.BunDB()),
	}
}

// Load restores the realm's persisted state into the engine. Call once at
// startup, before the engine serves operations.
func (s *PersistenceService) Load(ctx context.Context) error {
	realm := s.eng.Realm()

	creatures, err := s.creatures.GetAllByRealm(ctx, realm)
	if err != nil {
		return err
	}
	structures, err := s.structures.GetAllByRealm(ctx, realm)
	if err != nil {
		return err
	}
	listings, err := s.listings.GetAllByRealm(ctx, realm)
	if err != nil {
		return err
	}
	accounts, err := s.accounts.GetAllByRealm(ctx, realm)
	if err != nil {
		return err
	}
	realmStat, err := s.accounts.GetRealmStat(ctx, realm)
	if err != nil {
		return err
	}

	snap := engine.Snapshot{Realm: realm, Treasury: realmStat.Treasury}
	for _, m := range creatures {
		c, err := creatureFromModel(m)
		if err != nil {
			return err
		}
		snap.Creatures = append(snap.Creatures, c)
	}
	for _, m := range structures {
		snap.Structures = append(snap.Structures, structureFromModel(m))
	}
	for _, m := range listings {
		snap.Listings = append(snap.Listings, engine.Listing{
			TokenID: m.TokenID,
			Seller:  m.Seller,
			Price:   m.Price,
			Active:  m.Active,
		})
	}
	for _, m := range accounts {
		snap.Accounts = append(snap.Accounts, engine.AccountState{
			Owner:    m.Owner,
			Balance:  engine.Resources{Essence: m.Essence, Catalyst: m.Catalyst, Produce: m.Produce},
			Proceeds: m.Proceeds,
		})
	}

	s.eng.Restore(snap)
	logger.LogSystem("Realm state restored",
		slog.String("realm", realm),
		slog.Int("creatures", len(snap.Creatures)),
		slog.Int("structures", len(snap.Structures)),
		slog.Int("listings", len(snap.Listings)))
	return nil
}

// Run flushes on the configured interval until ctx is cancelled, then takes
// a final flush so shutdown loses nothing.
func (s *PersistenceService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.FlushOnce(context.Background()); err != nil {
				logger.LogError("Final flush failed", err,
					slog.String("realm", s.eng.Realm()))
			}
			return
		case <-ticker.C:
			if err := s.FlushOnce(ctx); err != nil {
				logger.LogError("Flush failed", err,
					slog.String("realm", s.eng.Realm()))
			}
		}
	}
}

// FlushOnce drains the engine's dirty set and writes it in one transaction.
// On failure the batch is requeued for the next attempt.
func (s *PersistenceService) FlushOnce(ctx context.Context) error {
	flush := s.eng.DrainDirty()
	if flush.Empty() {
		return nil
	}

	start := time.Now()
	err := s.db.WithTransaction(ctx, database.SerializableTxOptions(), func(ctx context.Context, tx bun.Tx) error {
		return s.writeFlush(ctx, tx, flush)
	})
	logger.LogQuery("flush "+s.eng.Realm(), time.Since(start), err)
	if err != nil {
		s.eng.Requeue(flush)
		return fmt.Errorf("failed to flush realm %s: %w", s.eng.Realm(), err)
	}
	return nil
}

func (s *PersistenceService) writeFlush(ctx context.Context, tx bun.Tx, flush engine.Flush) error {
	realm := s.eng.Realm()

	for _, c := range flush.Creatures {
		if err := s.creatures.UpsertTx(ctx, tx, creatureToModel(realm, c)); err != nil {
			return err
		}
	}
	for _, st := range flush.Structures {
		if err := s.structures.UpsertTx(ctx, tx, structureToModel(realm, st)); err != nil {
			return err
		}
	}
	for _, l := range flush.Listings {
		if err := s.listings.UpsertTx(ctx, tx, &models.Listing{
			Realm:   realm,
			TokenID: l.TokenID,
			Seller:  l.Seller,
			Price:   l.Price,
			Active:  l.Active,
		}); err != nil {
			return err
		}
	}
	for _, a := range flush.Accounts {
		if err := s.accounts.UpsertTx(ctx, tx, &models.AccountStat{
			Realm:    realm,
			Owner:    a.Owner,
			Essence:  a.Balance.Essence,
			Catalyst: a.Balance.Catalyst,
			Produce:  a.Balance.Produce,
			Proceeds: a.Proceeds,
		}); err != nil {
			return err
		}
	}
	return s.accounts.UpsertRealmStatTx(ctx, tx, &models.RealmStat{
		Realm:    realm,
		Treasury: flush.Treasury,
	})
}

func creatureToModel(realm string, c engine.Creature) *models.Creature {
	return &models.Creature{
		Realm:        realm,
		TokenID:      c.ID,
		Owner:        c.Owner,
		Name:         c.Name,
		DNA:          c.DNA.String(),
		Level:        c.Level,
		Rarity:       c.Rarity,
		Morale:       c.Morale,
		Energy:       c.Energy,
		Skill:        c.Skill,
		Produced:     c.Produced,
		LastTrained:  c.LastTrained,
		LastGroomed:  c.LastGroomed,
		LastHarvest:  c.LastHarvest,
		BreedReadyAt: c.BreedReadyAt,
	}
}

func creatureFromModel(m *models.Creature) (engine.Creature, error) {
	dna, err := engine.ParseDNA(m.DNA)
	if err != nil {
		return engine.Creature{}, fmt.Errorf("creature %d: %w", m.TokenID, err)
	}
	return engine.Creature{
		ID:           m.TokenID,
		Owner:        m.Owner,
		Name:         m.Name,
		DNA:          dna,
		Level:        m.Level,
		Rarity:       m.Rarity,
		Morale:       m.Morale,
		Energy:       m.Energy,
		Skill:        m.Skill,
		Produced:     m.Produced,
		LastTrained:  m.LastTrained,
		LastGroomed:  m.LastGroomed,
		LastHarvest:  m.LastHarvest,
		BreedReadyAt: m.BreedReadyAt,
	}, nil
}

func structureToModel(realm string, s engine.Structure) *models.Structure {
	return &models.Structure{
		Realm:          realm,
		TokenID:        s.ID,
		Owner:          s.Owner,
		Name:           s.Name,
		Capacity:       s.Capacity,
		Size:           s.Size,
		Active:         s.Active,
		SubType:        s.SubType,
		PlantedAt:      s.PlantedAt,
		ReadyAt:        s.ReadyAt,
		LastMaintained: s.LastMaintained,
	}
}

func structureFromModel(m *models.Structure) engine.Structure {
	return engine.Structure{
		ID:             m.TokenID,
		Owner:          m.Owner,
		Name:           m.Name,
		Capacity:       m.Capacity,
		Size:           m.Size,
		Active:         m.Active,
		SubType:        m.SubType,
		PlantedAt:      m.PlantedAt,
		ReadyAt:        m.ReadyAt,
		LastMaintained: m.LastMaintained,
	}
}
