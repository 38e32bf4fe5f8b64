package etl

import (
	"context"
	"time"

	"github.com/dvloznov/finance-etl/internal/logger"
	"github.com/dvloznov/finance-etl/internal/sink"
	"github.com/dvloznov/finance-etl/internal/store"
)

// Job is one ETL run over a store and an output location.
type Job struct {
	Reader  store.Reader
	Writer  *sink.Writer
	Workers int

	// OnStage is passed to the pipeline.
	OnStage func(Stage)

	// Now stamps processed_at. Defaults to time.Now.
	Now func() time.Time
	// NewEngine acquires the compute engine. Defaults to NewEngine.
	NewEngine func(workers int) *Engine
}

// Run acquires the engine, executes the pipeline and releases the engine on
// every exit path. The returned state is non-nil even on failure.
func (j *Job) Run(ctx context.Context) (*PipelineState, error) {
	now := j.Now
	if now == nil {
		now = time.Now
	}
	newEngine := j.NewEngine
	if newEngine == nil {
		newEngine = NewEngine
	}

	processedAt := now().UTC()
	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"run_id":       j.Writer.RunID(),
		"processed_at": processedAt,
	})
	ctx = logger.WithContext(ctx, log)

	engine := newEngine(j.Workers)
	defer func() {
		engine.Release()
		log.Debug().Msg("Compute engine released")
	}()
	log.Debug().Int("workers", engine.Workers()).Msg("Compute engine acquired")

	state := &PipelineState{
		Stage:       StageIdle,
		ProcessedAt: processedAt,
	}

	p := NewEnrichmentPipeline(engine, j.Reader, j.Writer)
	p.OnStage = j.OnStage
	if err := p.Execute(ctx, state); err != nil {
		return state, err
	}
	return state, nil
}
