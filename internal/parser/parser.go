// Package parser turns one batch of text into a typed ActionPlan via a
// language-model call. Parse is total: whatever the model or the network
// does, the caller always gets a valid plan back.
package parser

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/screenact/screenact/constants"
	"github.com/screenact/screenact/internal/llm"
	"github.com/screenact/screenact/internal/plan"
)

type PlanParser struct {
	completer llm.ChatCompleter
	logger    *slog.Logger
	schema    map[string]any
}

func NewPlanParser(completer llm.ChatCompleter, logger *slog.Logger) *PlanParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanParser{
		completer: completer,
		logger:    logger,
		schema:    llm.BuildPlanJSONSchema(),
	}
}

// Parse classifies text into an ActionPlan. Exactly one model call per
// invocation, no retries. Every failure path resolves to the Unknown
// fallback plan carrying the input text; Parse never returns an error.
func (p *PlanParser) Parse(ctx context.Context, text, currentDate string) plan.ActionPlan {
	p.logger.Debug("parser.parse.start", "text_len", len(text), "current_date", currentDate)

	sys := llm.BuildSystemPrompt(currentDate)
	reply, err := p.completer.ChatCompletion(ctx, sys, text)
	if err != nil {
		p.logger.Warn("parser.parse.completion_failed", "error", err)
		return plan.Fallback(text)
	}

	return p.decode(reply, text)
}

// decode strips fences, sanitizes, schema-validates, and unmarshals the
// model reply. Any malformation falls back to the Unknown plan.
func (p *PlanParser) decode(reply, originalText string) plan.ActionPlan {
	cleaned := []byte(llm.StripCodeFences(reply))

	sanitized, _, err := llm.NormalizeAndSanitizeJSON(cleaned, p.logger)
	if err != nil {
		p.logger.Warn("parser.parse.sanitize_failed", "error", err)
		return plan.Fallback(originalText)
	}

	if err := llm.ValidateJSONAgainstSchema(p.schema, sanitized); err != nil {
		p.logger.Warn("parser.parse.schema_validation_failed", "error", err)
		return plan.Fallback(originalText)
	}

	var w struct {
		Type       string            `json:"type"`
		Slots      map[string]string `json:"slots"`
		Confidence *float64          `json:"confidence"`
	}
	if err := json.Unmarshal(sanitized, &w); err != nil {
		p.logger.Warn("parser.parse.unmarshal_failed", "error", err)
		return plan.Fallback(originalText)
	}

	t, ok := constants.Canonicalize(w.Type)
	if !ok || t == constants.Unknown {
		// Unknown is normalized to the canonical fallback shape: empty
		// slots, zero confidence.
		return plan.Fallback(originalText)
	}

	// The model's self-reported confidence is authoritative once well
	// formed; a well-formed reply that omits it counts as fully confident.
	confidence := 1.0
	if w.Confidence != nil {
		confidence = *w.Confidence
	}
	if w.Slots == nil {
		w.Slots = map[string]string{}
	}

	out := plan.ActionPlan{
		Type:         t,
		Slots:        w.Slots,
		OriginalText: originalText,
		Confidence:   confidence,
	}
	p.logger.Debug("parser.parse.ok", "type", out.Type, "confidence", out.Confidence, "slots", len(out.Slots))
	return out
}
