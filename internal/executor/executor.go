// Package executor applies migration plans in transactional batches.
package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/graphplane/graphplane/database"
	"github.com/graphplane/graphplane/internal/planner"
)

// DefaultBatchSize is the number of executable statements committed per
// transaction when the caller does not choose one.
const DefaultBatchSize = 50

// Executor runs migration plans against a graph database, committing every
// batchSize-th executed statement. Execution is sequential: the plan's
// ordering is a correctness requirement, not an optimization. An Executor
// holds no per-run state, so independent Run calls may proceed in parallel
// as long as the opener hands out independent sessions.
type Executor struct {
	opener    database.SessionOpener
	batchSize int
	log       *zap.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger attaches a structured logger for batch progress and failures.
func WithLogger(log *zap.Logger) Option {
	return func(e *Executor) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an Executor. A batch size below one is a construction error,
// not a recoverable execution failure.
func New(opener database.SessionOpener, batchSize int, opts ...Option) (*Executor, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("batch size must be at least 1, got %d", batchSize)
	}

	e := &Executor{
		opener:    opener,
		batchSize: batchSize,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes the plan and reports the outcome. Database-level failures
// never surface as an error from Run; they roll back the open transaction,
// stop further processing, and land in Result.Failures. Batches committed
// before the failure stay committed: the design is checkpointed best-effort,
// not plan-wide atomicity.
//
// With dryRun set, no session is opened and every action counts as skipped.
// Informational actions are never sent to the database and never consume a
// transaction slot. Result.Executed counts only statements whose batch
// committed.
func (e *Executor) Run(ctx context.Context, plan *planner.Plan, dryRun bool) *planner.Result {
	result := &planner.Result{}
	if plan.IsEmpty() {
		return result
	}
	if dryRun {
		result.Skipped = len(plan.Actions)
		return result
	}

	session, err := e.opener.OpenSession(ctx)
	if err != nil {
		result.Failures = append(result.Failures, err.Error())
		return result
	}
	defer func() { _ = session.Close(ctx) }()

	// tx transitions closed -> open on the first executable action of a
	// batch, then open -> closed via commit at a batch boundary or
	// end-of-plan, or via rollback on failure. No other transitions.
	var tx database.Transaction
	inBatch := 0

	fail := func(err error) *planner.Result {
		if tx != nil {
			_ = tx.Rollback(ctx)
		}
		result.Failures = append(result.Failures, err.Error())
		e.log.Warn("migration stopped",
			zap.Int("executed", result.Executed),
			zap.Error(err))
		return result
	}

	for _, action := range plan.Actions {
		if action.Informational() {
			continue
		}

		if tx == nil {
			tx, err = session.BeginTransaction(ctx)
			if err != nil {
				tx = nil
				return fail(err)
			}
		}

		if err := tx.Run(ctx, action.Statement, action.Parameters); err != nil {
			return fail(err)
		}
		inBatch++

		if inBatch == e.batchSize {
			if err := tx.Commit(ctx); err != nil {
				return fail(err)
			}
			result.Executed += inBatch
			e.log.Debug("batch committed", zap.Int("statements", inBatch))
			inBatch = 0
			tx = nil
		}
	}

	if tx != nil {
		if err := tx.Commit(ctx); err != nil {
			return fail(err)
		}
		result.Executed += inBatch
		e.log.Debug("batch committed", zap.Int("statements", inBatch))
	}

	return result
}
