package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/finance-etl/internal/config"
	"github.com/dvloznov/finance-etl/internal/etl"
	"github.com/dvloznov/finance-etl/internal/logger"
	"github.com/dvloznov/finance-etl/internal/sink"
	"github.com/dvloznov/finance-etl/internal/store"
)

var stageMessages = map[etl.Stage]string{
	etl.StageReading:      "Extracting data...",
	etl.StageTransforming: "Transforming data...",
	etl.StageWriting:      "Loading data...",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("info")
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.Component(logger.New(cfg.LogLevel), "etl")

	loc, err := sink.ParseLocation(cfg.ETL.OutputLocation)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid output location")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	if err := run(ctx, cfg, loc); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("ETL job failed")
	}

	fmt.Println("ETL job completed successfully!")
}

func run(ctx context.Context, cfg *config.Config, loc sink.Location) error {
	log := logger.FromContext(ctx)

	s, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	objects, err := sink.OpenObjectStore(ctx, loc)
	if err != nil {
		return err
	}
	defer objects.Close()

	job := &etl.Job{
		Reader:  s,
		Writer:  sink.NewWriter(objects, loc, ""),
		Workers: cfg.ETL.Workers,
		OnStage: func(st etl.Stage) {
			if msg, ok := stageMessages[st]; ok {
				fmt.Println(msg)
			}
		},
	}

	state, err := job.Run(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Int("rows", len(state.Result.Rows)).
		Int("dropped", state.Result.Dropped).
		Int("partitions", state.Partitions).
		Time("processed_at", state.ProcessedAt).
		Str("location", loc.String()).
		Msg("ETL job finished")
	return nil
}
