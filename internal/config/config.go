package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendBigQuery = "bigquery"
	BackendSQLite   = "sqlite"
)

// Secret providers.
const (
	SecretsSecretManager = "secretmanager"
	SecretsEnv           = "env"
)

// DefaultSecretID names the Secret Manager secret holding the database
// credentials.
const DefaultSecretID = "dataops-hub-rds-credentials"

// Config is shared by the generate and etl commands. Both take no flags; all
// settings come from the environment, optionally seeded from a .env file.
type Config struct {
	LogLevel string

	Secrets   SecretsConfig
	Store     StoreConfig
	Generator GeneratorConfig
	ETL       ETLConfig
}

type SecretsConfig struct {
	Provider   string
	SecretID   string
	GCPProject string
}

type StoreConfig struct {
	Backend         string
	BigQueryProject string
	BigQueryDataset string
	SQLitePath      string
}

type GeneratorConfig struct {
	CustomersPerCountry     int
	TransactionsPerCustomer int
	Seed                    uint64
}

type ETLConfig struct {
	OutputLocation string
	Workers        int
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	seed, err := getEnvAsUint64("GENERATOR_SEED", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Secrets: SecretsConfig{
			Provider:   strings.ToLower(getEnv("SECRETS_PROVIDER", SecretsSecretManager)),
			SecretID:   getEnv("SECRET_ID", ""),
			GCPProject: getEnv("GCP_PROJECT", ""),
		},
		Store: StoreConfig{
			Backend:         strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
			BigQueryProject: getEnv("BIGQUERY_PROJECT", getEnv("GCP_PROJECT", "")),
			BigQueryDataset: getEnv("BIGQUERY_DATASET", "dataops_hub"),
			SQLitePath:      getEnv("SQLITE_PATH", "./data/dataops.db"),
		},
		Generator: GeneratorConfig{
			CustomersPerCountry:     getEnvAsInt("CUSTOMERS_PER_COUNTRY", 2),
			TransactionsPerCustomer: getEnvAsInt("TRANSACTIONS_PER_CUSTOMER", 10),
			Seed:                    seed,
		},
		ETL: ETLConfig{
			OutputLocation: getEnv("OUTPUT_LOCATION", "gs://dataops-hub-data/processed/transactions"),
			Workers:        getEnvAsInt("ETL_WORKERS", 4),
		},
	}

	// the env provider reads plain DB_* variables unless a secret id is set
	if cfg.Secrets.Provider == SecretsSecretManager && cfg.Secrets.SecretID == "" {
		cfg.Secrets.SecretID = DefaultSecretID
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerations and counts.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendPostgres:
		if c.Secrets.Provider != SecretsSecretManager && c.Secrets.Provider != SecretsEnv {
			return fmt.Errorf("config: unknown SECRETS_PROVIDER %q", c.Secrets.Provider)
		}
		if c.Secrets.Provider == SecretsSecretManager && c.Secrets.GCPProject == "" {
			return fmt.Errorf("config: GCP_PROJECT is required for the %s secrets provider", SecretsSecretManager)
		}
	case BackendBigQuery:
		if c.Store.BigQueryProject == "" {
			return fmt.Errorf("config: BIGQUERY_PROJECT or GCP_PROJECT is required for the %s backend", BackendBigQuery)
		}
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH is required for the %s backend", BackendSQLite)
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Generator.CustomersPerCountry <= 0 {
		return fmt.Errorf("config: CUSTOMERS_PER_COUNTRY must be positive")
	}
	if c.Generator.TransactionsPerCustomer <= 0 {
		return fmt.Errorf("config: TRANSACTIONS_PER_CUSTOMER must be positive")
	}
	if c.ETL.Workers <= 0 {
		return fmt.Errorf("config: ETL_WORKERS must be positive")
	}
	if c.ETL.OutputLocation == "" {
		return fmt.Errorf("config: OUTPUT_LOCATION is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt maps unparseable values to -1 so Validate rejects them.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return -1
	}
	return value
}

func getEnvAsUint64(key string, defaultValue uint64) (uint64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return value, nil
}
