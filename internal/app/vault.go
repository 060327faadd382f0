package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/prompt-vault/internal/adapter/memstore"
	"github.com/heartmarshall/prompt-vault/internal/adapter/postgres"
	"github.com/heartmarshall/prompt-vault/internal/adapter/postgres/category"
	"github.com/heartmarshall/prompt-vault/internal/adapter/postgres/prompt"
	"github.com/heartmarshall/prompt-vault/internal/adapter/postgres/suggestion"
	"github.com/heartmarshall/prompt-vault/internal/adapter/s3backup"
	"github.com/heartmarshall/prompt-vault/internal/auth"
	"github.com/heartmarshall/prompt-vault/internal/cache"
	"github.com/heartmarshall/prompt-vault/internal/config"
	"github.com/heartmarshall/prompt-vault/internal/lifecycle"
	"github.com/heartmarshall/prompt-vault/internal/seed"
	authsvc "github.com/heartmarshall/prompt-vault/internal/service/auth"
	"github.com/heartmarshall/prompt-vault/internal/service/backup"
	"github.com/heartmarshall/prompt-vault/internal/service/catalog"
)

// Pinger checks connectivity of the catalog store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// txRunner stays nil for stores without transactions.
type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Vault holds the services shared by the HTTP server and vaultctl.
type Vault struct {
	Config  *config.Config
	Catalog *catalog.Service
	Backup  *backup.Service
	Auth    *authsvc.Service

	// Store is nil for the in-memory driver.
	Store Pinger

	closers []func()
}

// Open connects the configured store and wires the services. The cache
// starts from the bundled dataset; call Catalog.Refresh to load the store.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Vault, error) {
	ds, err := seed.Load()
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}

	v := &Vault{Config: cfg}

	var (
		repos catalog.Repos
		tx    txRunner
	)

	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := memstore.New()
		repos = catalog.Repos{
			Categories:  store.Categories(),
			Prompts:     store.Prompts(),
			Suggestions: store.Suggestions(),
		}
		logger.Warn("using in-memory catalog store; data is lost on exit")

	default:
		if cfg.Database.MigrateOnStart {
			n, err := postgres.Migrate(ctx, cfg.Database.DSN, logger)
			if err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied", slog.Int("count", n))
		}

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect store: %w", err)
		}
		v.closers = append(v.closers, pool.Close)
		v.Store = pool

		tx = postgres.NewTxManager(pool)
		repos = catalog.Repos{
			Categories:  category.New(pool),
			Prompts:     prompt.New(pool),
			Suggestions: suggestion.New(pool),
		}
	}

	engine := lifecycle.New(lifecycle.WithCascadePersistence(cfg.Catalog.PersistCascades))

	v.Catalog = catalog.NewService(logger, repos, tx, engine, cache.New(ds), ds)
	v.Backup = backup.NewService(logger, v.Catalog)

	jwtMgr := auth.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.JWTIssuer, cfg.Admin.SessionTTL)
	v.Auth = authsvc.NewService(logger, jwtMgr, auth.NewPassphraseChecker(cfg.Admin.Passphrase, cfg.Admin.PassphraseHash))

	return v, nil
}

// Sink returns the configured backup destination: the S3 bucket when one is
// set, the local backup directory otherwise.
func (v *Vault) Sink(ctx context.Context) (backup.Sink, error) {
	if v.Config.Backup.S3.Enabled() {
		store, err := s3backup.New(ctx, v.Config.Backup.S3)
		if err != nil {
			return nil, fmt.Errorf("open backup bucket: %w", err)
		}
		return store, nil
	}
	return backup.FileSink{Dir: v.Config.Backup.Dir}, nil
}

// Close releases the store connection.
func (v *Vault) Close() {
	for i := len(v.closers) - 1; i >= 0; i-- {
		v.closers[i]()
	}
}
