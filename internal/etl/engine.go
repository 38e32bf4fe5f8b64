package etl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/dvloznov/finance-etl/internal/domain"
)

// DefaultWorkers is the engine size when none is configured.
const DefaultWorkers = 4

// ErrEngineReleased is returned when work is submitted after Release.
var ErrEngineReleased = errors.New("compute engine released")

// Engine is the compute engine of one ETL run: a bounded worker pool
// acquired at run start and released when the run ends, whatever the
// outcome.
type Engine struct {
	pool    pond.Pool
	workers int

	releaseOnce sync.Once
}

// NewEngine starts a pool of workers goroutines. Values below 1 fall back to
// DefaultWorkers.
func NewEngine(workers int) *Engine {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Engine{
		pool:    pond.NewPool(workers, pond.WithQueueSize(workers*4)),
		workers: workers,
	}
}

// Workers is the pool size.
func (e *Engine) Workers() int { return e.workers }

// Released reports whether Release has run.
func (e *Engine) Released() bool { return e.pool.Stopped() }

// Release stops the pool after queued tasks finish. Safe to call more than
// once.
func (e *Engine) Release() {
	e.releaseOnce.Do(func() {
		e.pool.StopAndWait()
	})
}

// Go runs tasks on the pool and waits for all of them. The first error
// cancels the context handed to the remaining tasks and is returned.
func (e *Engine) Go(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	if e.Released() {
		return ErrEngineReleased
	}
	if len(tasks) == 0 {
		return nil
	}

	group := e.pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	for _, task := range tasks {
		task := task
		group.SubmitErr(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return task(groupCtx)
		})
	}

	if err := group.Wait(); err != nil {
		if errors.Is(err, pond.ErrGroupStopped) {
			return fmt.Errorf("Engine.Go: %w", context.Cause(groupCtx))
		}
		return err
	}
	return nil
}

// Transform runs the join over chunks of txs in parallel. The result is the
// same as Transform(txs, accounts, processedAt), rows in input order.
func (e *Engine) Transform(ctx context.Context, txs []domain.Transaction, accounts []domain.Account, processedAt time.Time) (Result, error) {
	index := indexAccounts(accounts)

	chunks := chunkBounds(len(txs), e.workers)
	results := make([]Result, len(chunks))
	tasks := make([]func(context.Context) error, len(chunks))
	for i, b := range chunks {
		i, b := i, b
		tasks[i] = func(ctx context.Context) error {
			results[i] = join(txs[b[0]:b[1]], index, processedAt)
			return nil
		}
	}
	if err := e.Go(ctx, tasks...); err != nil {
		return Result{}, fmt.Errorf("Engine.Transform: %w", err)
	}

	var out Result
	for _, r := range results {
		out.Rows = append(out.Rows, r.Rows...)
		out.Dropped += r.Dropped
	}
	return out, nil
}

// chunkBounds splits n items into at most parts contiguous [start, end)
// ranges of near-equal size.
func chunkBounds(n, parts int) [][2]int {
	if n == 0 {
		return nil
	}
	if parts > n {
		parts = n
	}
	size := (n + parts - 1) / parts
	var bounds [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		bounds = append(bounds, [2]int{start, end})
	}
	return bounds
}
