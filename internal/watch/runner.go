package watch

import (
	"context"
	"log/slog"

	"github.com/screenact/screenact/internal/dispatch"
	"github.com/screenact/screenact/internal/ocr"
	"github.com/screenact/screenact/internal/pipeline"
)

// Runner consumes watched image paths and pushes each through the full
// recognize-plan-dispatch flow.
type Runner struct {
	recognizer *ocr.Recognizer
	pipeline   *pipeline.Pipeline
	dispatcher *dispatch.Dispatcher
	autoRun    bool
	logger     *slog.Logger
}

// NewRunner builds a runner. When autoRun is false the runner only logs each
// plan's summary; actions still need an explicit execute call elsewhere.
func NewRunner(recognizer *ocr.Recognizer, pipe *pipeline.Pipeline, dispatcher *dispatch.Dispatcher, autoRun bool, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		recognizer: recognizer,
		pipeline:   pipe,
		dispatcher: dispatcher,
		autoRun:    autoRun,
		logger:     logger,
	}
}

// Run loops over the watched paths until ctx is cancelled or the channel
// closes. Per-image failures are logged and skipped.
func (r *Runner) Run(ctx context.Context, paths <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-paths:
			if !ok {
				return
			}
			r.handle(ctx, path)
		}
	}
}

func (r *Runner) handle(ctx context.Context, path string) {
	doc, err := r.recognizer.Recognize(ctx, path)
	if err != nil {
		r.logger.Warn("watch.recognize.failed", "path", path, "error", err)
		return
	}

	p := r.pipeline.ProcessDocument(ctx, doc)
	r.logger.Info("watch.planned", "path", path, "type", p.Type, "confidence", p.Confidence,
		"summary", dispatch.Summarize(p))

	if !r.autoRun || !p.Actionable() {
		return
	}
	result := r.dispatcher.Execute(ctx, p)
	r.logger.Info("watch.executed", "path", path, "success", result.Success, "message", result.Message)
}
