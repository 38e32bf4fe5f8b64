// Package store defines the relational store contracts shared by the
// generator and the ETL pipeline, and selects a backend from configuration.
package store

import (
	"context"
	"fmt"

	"github.com/dvloznov/finance-etl/internal/config"
	"github.com/dvloznov/finance-etl/internal/domain"
	"github.com/dvloznov/finance-etl/internal/logger"
	"github.com/dvloznov/finance-etl/internal/secrets"
	"github.com/dvloznov/finance-etl/internal/store/bigquery"
	"github.com/dvloznov/finance-etl/internal/store/postgres"
	"github.com/dvloznov/finance-etl/internal/store/sqlite"
)

// Writer replaces table contents. Each call discards what the table held
// before.
type Writer interface {
	ReplaceAccounts(ctx context.Context, accounts []domain.Account) error
	ReplaceTransactions(ctx context.Context, txs []domain.Transaction) error
}

// Reader reads full tables. The two reads are independent; there is no
// snapshot across them.
type Reader interface {
	ReadAccounts(ctx context.Context) ([]domain.Account, error)
	ReadTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// Store is a backend that can both read and write.
type Store interface {
	Reader
	Writer
	Close() error
}

var (
	_ Store = (*postgres.Store)(nil)
	_ Store = (*bigquery.Store)(nil)
	_ Store = (*sqlite.Store)(nil)
)

// Open connects to the backend named by cfg.Store.Backend. The postgres
// backend resolves its credentials through the configured secrets provider
// first; nothing is connected if that fails.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	log := logger.FromContext(ctx)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		provider, closeProvider, err := newSecretsProvider(ctx, cfg.Secrets)
		if err != nil {
			return nil, fmt.Errorf("store.Open: %w", err)
		}
		defer closeProvider()
		return OpenPostgres(ctx, provider, cfg.Secrets.SecretID)

	case config.BackendBigQuery:
		log.Info().
			Str("project", cfg.Store.BigQueryProject).
			Str("dataset", cfg.Store.BigQueryDataset).
			Msg("Opening BigQuery store")
		s, err := bigquery.New(ctx, cfg.Store.BigQueryProject, cfg.Store.BigQueryDataset)
		if err != nil {
			return nil, fmt.Errorf("store.Open: %w", err)
		}
		return s, nil

	case config.BackendSQLite:
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("Opening SQLite store")
		s, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("store.Open: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("store.Open: unknown backend %q", cfg.Store.Backend)
	}
}

// OpenPostgres fetches credentials for secretID from provider and connects.
func OpenPostgres(ctx context.Context, provider secrets.Provider, secretID string) (*postgres.Store, error) {
	creds, err := provider.Credentials(ctx, secretID)
	if err != nil {
		return nil, fmt.Errorf("OpenPostgres: resolving credentials: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("host", creds.Host).
		Int("port", int(creds.Port)).
		Str("dbname", creds.DBName).
		Msg("Connecting to PostgreSQL")

	s, err := postgres.New(ctx, creds.DSN())
	if err != nil {
		return nil, fmt.Errorf("OpenPostgres: %w", err)
	}
	return s, nil
}

func newSecretsProvider(ctx context.Context, cfg config.SecretsConfig) (secrets.Provider, func(), error) {
	switch cfg.Provider {
	case config.SecretsEnv:
		return secrets.NewEnvProvider(), func() {}, nil
	case config.SecretsSecretManager:
		p, err := secrets.NewSecretManagerProvider(ctx, cfg.GCPProject)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { _ = p.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown secrets provider %q", cfg.Provider)
	}
}
