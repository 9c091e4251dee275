package menagerie

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eldermoor/menagerie/menagerie/database"
	"github.com/eldermoor/menagerie/menagerie/engine"
	"github.com/eldermoor/menagerie/menagerie/search"
	"github.com/eldermoor/menagerie/menagerie/services"
	"github.com/eldermoor/menagerie/menagerie/utils"
)

const searchIndexTTL = 30 * time.Second

// Realm bundles one economy's engine with its persistence and search
// services. The farm and the academy are two Realms over the same database.
type Realm struct {
	Engine      *engine.Engine
	Persistence *services.PersistenceService
	Search      *search.Service
}

type App struct {
	Cfg       Config
	Version   string
	Commit    string
	DB        *database.DB
	Farm      *Realm
	Academy   *Realm
	Processes *utils.BackgroundProcessManager
}

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:       cfg,
		Version:   version,
		Commit:    commit,
		Processes: utils.NewBackgroundProcessManager(),
	}
}

// SetupRealms builds both realm engines from their presets, laying the
// config file's overrides on top. Requires DB to be connected first.
func (a *App) SetupRealms() {
	clock := engine.SystemClock()

	a.Farm = a.newRealm(a.Cfg.Farm.Apply(engine.FarmEconomy()), clock)
	a.Academy = a.newRealm(a.Cfg.Academy.Apply(engine.AcademyEconomy()), clock)
}

func (a *App) newRealm(cfg *engine.EconomyConfig, clock engine.Clock) *Realm {
	eng := engine.New(cfg, clock)
	return &Realm{
		Engine:      eng,
		Persistence: services.NewPersistenceService(a.DB, eng, a.Cfg.FlushInterval()),
		Search:      search.NewService(eng, searchIndexTTL, clock),
	}
}

// LoadState restores both realms from the database in parallel.
func (a *App) LoadState(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, realm := range []*Realm{a.Farm, a.Academy} {
		realm := realm
		g.Go(func() error {
			return realm.Persistence.Load(ctx)
		})
	}
	return g.Wait()
}

// StartFlushers launches the write-behind loop for each realm.
func (a *App) StartFlushers() {
	for _, realm := range []*Realm{a.Farm, a.Academy} {
		name := fmt.Sprintf("%s-flusher", realm.Engine.Realm())
		a.Processes.StartProcess(name, "write-behind state persistence", realm.Persistence.Run)
	}
}

// Shutdown stops the flushers, waiting out their final flush, then closes
// the database.
func (a *App) Shutdown(timeout time.Duration) error {
	err := a.Processes.Shutdown(timeout)
	if a.DB != nil {
		a.DB.Close()
	}
	return err
}
