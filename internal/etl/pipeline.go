package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/finance-etl/internal/domain"
	"github.com/dvloznov/finance-etl/internal/logger"
	"github.com/dvloznov/finance-etl/internal/sink"
	"github.com/dvloznov/finance-etl/internal/store"
)

// Stage is the position of a run in Idle → Reading → Transforming →
// Writing → Done. Failed is reachable from any stage.
type Stage int

const (
	StageIdle Stage = iota
	StageReading
	StageTransforming
	StageWriting
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageReading:
		return "reading"
	case StageTransforming:
		return "transforming"
	case StageWriting:
		return "writing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// PipelineStep is one stage of the ETL run.
type PipelineStep interface {
	Stage() Stage
	Execute(ctx context.Context, state *PipelineState) error
}

// PipelineState holds the shared state across all pipeline steps.
type PipelineState struct {
	Stage       Stage
	ProcessedAt time.Time

	Transactions []domain.Transaction
	Accounts     []domain.Account

	Result     Result
	Partitions int
}

// ReadInputs reads both tables. The reads are independent.
func ReadInputs(ctx context.Context, r store.Reader) ([]domain.Transaction, []domain.Account, error) {
	txs, err := r.ReadTransactions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("ReadInputs: %w", err)
	}
	accounts, err := r.ReadAccounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("ReadInputs: %w", err)
	}
	return txs, accounts, nil
}

// WriteOutput overwrites the writer's location with rows: clear, one file
// per partition fanned out over the engine, then the success marker. It
// returns the number of partitions written.
func WriteOutput(ctx context.Context, e *Engine, w *sink.Writer, rows []domain.EnrichedTransaction) (int, error) {
	if err := w.Reset(ctx); err != nil {
		return 0, fmt.Errorf("WriteOutput: %w", err)
	}

	parts := sink.SplitPartitions(rows)
	tasks := make([]func(context.Context) error, len(parts))
	for i, p := range parts {
		p := p
		tasks[i] = func(ctx context.Context) error {
			key, err := w.WritePartition(ctx, p)
			if err != nil {
				return err
			}
			log := logger.FromContext(ctx)
			log.Debug().
				Str("object", key).
				Int("rows", len(p.Rows)).
				Msg("Wrote partition")
			return nil
		}
	}
	if err := e.Go(ctx, tasks...); err != nil {
		return 0, fmt.Errorf("WriteOutput: %w", err)
	}

	if err := w.Commit(ctx); err != nil {
		return 0, fmt.Errorf("WriteOutput: %w", err)
	}
	return len(parts), nil
}

// ReadInputsStep loads transactions and accounts from the relational store.
type ReadInputsStep struct {
	Reader store.Reader
}

func (s *ReadInputsStep) Stage() Stage { return StageReading }

func (s *ReadInputsStep) Execute(ctx context.Context, state *PipelineState) error {
	txs, accounts, err := ReadInputs(ctx, s.Reader)
	if err != nil {
		return err
	}
	state.Transactions = txs
	state.Accounts = accounts

	log := logger.FromContext(ctx)
	log.Info().
		Int("transactions", len(txs)).
		Int("accounts", len(accounts)).
		Msg("Read inputs")
	return nil
}

// TransformStep joins and enriches the inputs on the engine.
type TransformStep struct {
	Engine *Engine
}

func (s *TransformStep) Stage() Stage { return StageTransforming }

func (s *TransformStep) Execute(ctx context.Context, state *PipelineState) error {
	res, err := s.Engine.Transform(ctx, state.Transactions, state.Accounts, state.ProcessedAt)
	if err != nil {
		return err
	}
	state.Result = res

	log := logger.FromContext(ctx)
	log.Info().
		Int("rows", len(res.Rows)).
		Int("dropped", res.Dropped).
		Msg("Transformed transactions")
	if res.Dropped > 0 {
		log.Warn().Int("dropped", res.Dropped).Msg("Transactions without a matching account were dropped")
	}
	return nil
}

// WriteOutputStep writes the enriched rows as partitioned Parquet.
type WriteOutputStep struct {
	Engine *Engine
	Writer *sink.Writer
}

func (s *WriteOutputStep) Stage() Stage { return StageWriting }

func (s *WriteOutputStep) Execute(ctx context.Context, state *PipelineState) error {
	n, err := WriteOutput(ctx, s.Engine, s.Writer, state.Result.Rows)
	if err != nil {
		return err
	}
	state.Partitions = n

	log := logger.FromContext(ctx)
	log.Info().
		Str("location", s.Writer.Location().String()).
		Int("partitions", n).
		Msg("Wrote output")
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []PipelineStep

	// OnStage, if set, is called on every stage transition.
	OnStage func(Stage)
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...PipelineStep) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially. The state ends in
// StageDone, or StageFailed at the first error.
func (p *Pipeline) Execute(ctx context.Context, state *PipelineState) error {
	for _, step := range p.steps {
		p.enter(ctx, state, step.Stage())
		if err := step.Execute(ctx, state); err != nil {
			failedAt := state.Stage
			p.enter(ctx, state, StageFailed)
			return fmt.Errorf("pipeline stage %s failed: %w", failedAt, err)
		}
	}
	p.enter(ctx, state, StageDone)
	return nil
}

func (p *Pipeline) enter(ctx context.Context, state *PipelineState, s Stage) {
	log := logger.FromContext(ctx)
	log.Debug().
		Stringer("from", state.Stage).
		Stringer("to", s).
		Msg("Stage transition")
	state.Stage = s
	if p.OnStage != nil {
		p.OnStage(s)
	}
}

// NewEnrichmentPipeline creates the standard read, transform, write pipeline.
func NewEnrichmentPipeline(e *Engine, r store.Reader, w *sink.Writer) *Pipeline {
	return NewPipeline(
		&ReadInputsStep{Reader: r},
		&TransformStep{Engine: e},
		&WriteOutputStep{Engine: e, Writer: w},
	)
}
