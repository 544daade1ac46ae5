// Package selector reduces per-batch parse results to one best plan.
package selector

import (
	"context"
	"log/slog"
	"sync"

	"github.com/screenact/screenact/internal/plan"
)

// BatchParser is what the selector needs from the parsing stage. Parse must
// be total; the selector never sees an error.
type BatchParser interface {
	Parse(ctx context.Context, text, currentDate string) plan.ActionPlan
}

type Option func(*Selector)

// WithWorkers bounds how many batches are parsed concurrently.
func WithWorkers(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.workers = n
		}
	}
}

type Selector struct {
	parser  BatchParser
	logger  *slog.Logger
	workers int
}

func New(parser BatchParser, logger *slog.Logger, opts ...Option) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Selector{parser: parser, logger: logger, workers: 4}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SelectBest parses every batch and returns the highest-confidence
// actionable plan. Batches are evaluated concurrently, one goroutine per
// batch gated by the worker bound; each goroutine writes only its own slot
// of the results slice, and the reduction runs single-threaded after the
// join, so the outcome never depends on completion order.
//
// If no batch yields an actionable plan, or the context is cancelled before
// the join completes, the fallback plan built from fallbackText is returned
// so the caller keeps the complete text for manual handling.
func (s *Selector) SelectBest(ctx context.Context, batches []string, currentDate, fallbackText string) plan.ActionPlan {
	if len(batches) == 0 {
		return plan.Fallback(fallbackText)
	}

	results := make([]plan.ActionPlan, len(batches))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, batchText := range batches {
		wg.Add(1)
		go func(idx int, text string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = s.parser.Parse(ctx, text, currentDate)
		}(i, batchText)
	}
	wg.Wait()

	if ctx.Err() != nil {
		// The caller abandoned the run; discard whatever the workers
		// produced instead of applying it.
		s.logger.Warn("selector.cancelled", "batches", len(batches))
		return plan.Fallback(fallbackText)
	}

	return s.reduce(results, fallbackText)
}

// reduce applies the deterministic update rule over index-ordered results:
// a candidate wins only if actionable AND strictly more confident than the
// current best (initially zero), so equal confidences keep the earlier batch
// and zero-confidence candidates never win.
func (s *Selector) reduce(results []plan.ActionPlan, fallbackText string) plan.ActionPlan {
	var best plan.ActionPlan
	bestConfidence := 0.0
	found := false

	for i, candidate := range results {
		if !candidate.Actionable() {
			s.logger.Debug("selector.batch.unknown", "batch", i)
			continue
		}
		s.logger.Debug("selector.batch.candidate",
			"batch", i, "type", candidate.Type, "confidence", candidate.Confidence)

		if candidate.Confidence > bestConfidence {
			best = candidate
			bestConfidence = candidate.Confidence
			found = true
		}
	}

	if !found {
		s.logger.Info("selector.no_actionable_plan", "batches", len(results))
		return plan.Fallback(fallbackText)
	}

	s.logger.Info("selector.best", "type", best.Type, "confidence", bestConfidence)
	return best
}
