package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/finance-etl/internal/config"
	"github.com/dvloznov/finance-etl/internal/generator"
	"github.com/dvloznov/finance-etl/internal/logger"
	"github.com/dvloznov/finance-etl/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("info")
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.Component(logger.New(cfg.LogLevel), "generate")

	// Create context with timeout so the job doesn't hang on a dead database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	s, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer s.Close()

	gen := generator.New(
		generator.DefaultLocales(),
		generator.NewRand(cfg.Generator.Seed),
		generator.WithCounts(cfg.Generator.CustomersPerCountry, cfg.Generator.TransactionsPerCustomer),
	)

	ds, err := gen.Run(ctx, s)
	if err != nil {
		s.Close()
		log.Fatal().Err(err).Msg("Generation failed")
	}

	fmt.Printf("Generated %d customers and %d transactions\n", len(ds.Accounts), len(ds.Transactions))
}
