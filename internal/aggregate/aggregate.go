// Package aggregate fans a search query out to every registered source
// adapter, merges whatever came back, and removes cross-source duplicates.
// Any subset of sources may fail; failures degrade the result, they never
// abort it.
package aggregate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/source"
)

// Result is one aggregation run's outcome: the deduplicated job list plus a
// labeled error string per source that contributed nothing.
type Result struct {
	Jobs   []jobs.Job
	Errors []string
}

type Aggregator struct {
	adapters []source.Adapter
	logger   *zap.Logger
}

// New builds an aggregator over the given adapters. Registration order
// matters: it fixes the concatenation order and therefore which source wins
// when duplicates collide.
func New(adapters []source.Adapter, log *zap.Logger) *Aggregator {
	return &Aggregator{
		adapters: adapters,
		logger:   logger.WithFields(log),
	}
}

// Aggregate runs every adapter concurrently and waits for all of them to
// settle; it never cancels the rest when one fails. Per-source failures are
// converted into labeled error strings, not propagated.
func (a *Aggregator) Aggregate(ctx context.Context, query jobs.Query) Result {
	runID := uuid.NewString()
	log := a.logger.With(zap.String(logger.FieldRunID, runID))

	log.Info("starting aggregation",
		zap.String("keywords", query.Keywords),
		zap.String("location", query.Location),
		zap.Bool("remote_only", query.RemoteOnly),
		zap.Int("sources", len(a.adapters)),
	)

	// One slot per adapter keeps the merge deterministic regardless of
	// which source answers first.
	found := make([][]jobs.Job, len(a.adapters))
	failures := make([]string, len(a.adapters))

	var g errgroup.Group
	for i, adapter := range a.adapters {
		g.Go(func() error {
			listings, err := adapter.Fetch(ctx, query)
			if err != nil {
				failures[i] = fmt.Sprintf("%s: %v", adapter.Name(), err)
				return nil
			}
			found[i] = listings
			return nil
		})
	}
	// Goroutines report failures through their slot, never as errors, so
	// Wait is a settle-all join.
	_ = g.Wait()

	var merged []jobs.Job
	var errs []string
	for i, adapter := range a.adapters {
		if failures[i] != "" {
			log.Warn("source unavailable",
				zap.String(logger.FieldSource, adapter.Name()),
				zap.String("cause", failures[i]),
			)
			errs = append(errs, failures[i])
			continue
		}

		log.Info("source responded",
			zap.String(logger.FieldSource, adapter.Name()),
			zap.Int("count", len(found[i])),
		)
		merged = append(merged, found[i]...)
	}

	deduped := Deduplicate(merged)

	log.Info("aggregation finished",
		zap.Int("total", len(merged)),
		zap.Int("after_dedup", len(deduped)),
		zap.Int("duplicates_dropped", len(merged)-len(deduped)),
		zap.Int("failed_sources", len(errs)),
	)

	return Result{Jobs: deduped, Errors: errs}
}
