// Package pipeline coordinates the full text-to-action flow: structure the
// recognized document, group it into batches, parse each batch, and reduce
// to one best plan.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/screenact/screenact/constants"
	"github.com/screenact/screenact/internal/batch"
	"github.com/screenact/screenact/internal/ocr"
	"github.com/screenact/screenact/internal/plan"
	"github.com/screenact/screenact/internal/selector"
)

// minFragmentRunes: shorter fragments are OCR noise and never reach the
// model.
const minFragmentRunes = 2

type Pipeline struct {
	structurer *ocr.Structurer
	parser     selector.BatchParser
	selector   *selector.Selector
	logger     *slog.Logger
	now        func() time.Time
}

func New(structurer *ocr.Structurer, batchParser selector.BatchParser, sel *selector.Selector, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		structurer: structurer,
		parser:     batchParser,
		selector:   sel,
		logger:     logger,
		now:        time.Now,
	}
}

// ProcessDocument runs the whole pipeline on a recognized document and
// returns the single best plan. It is total: an empty or unusable document
// yields the Unknown fallback plan, never an error. The model calls inside
// are the only blocking work; run this off any latency-sensitive loop.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc *ocr.Document) plan.ActionPlan {
	_, plain := p.structurer.Structure(doc)

	fragments := p.validFragments(doc)
	if len(fragments) == 0 {
		p.logger.Info("pipeline.no_usable_text")
		return plan.Fallback(plain)
	}

	batches := batch.MakeBatches(fragments)
	p.logger.Info("pipeline.batched", "fragments", len(fragments), "batches", len(batches))

	currentDate := p.now().Format(constants.DateLayout)
	return p.selector.SelectBest(ctx, batches, currentDate, plain)
}

// ProcessText parses free-form text (pasted or shared) directly, without
// spatial structuring or batching.
func (p *Pipeline) ProcessText(ctx context.Context, text string) plan.ActionPlan {
	currentDate := p.now().Format(constants.DateLayout)
	return p.parser.Parse(ctx, text, currentDate)
}

// validFragments returns the reading-ordered fragment texts with noise
// dropped.
func (p *Pipeline) validFragments(doc *ocr.Document) []string {
	if doc == nil {
		return nil
	}
	ordered := p.structurer.Order(doc)
	out := make([]string, 0, len(ordered))
	for _, f := range ordered {
		text := strings.TrimSpace(f.Text)
		if utf8.RuneCountInString(text) < minFragmentRunes {
			continue
		}
		out = append(out, text)
	}
	return out
}
