package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenact/screenact/constants"
)

type stubCompleter struct {
	reply string
	err   error

	gotSystem string
	gotUser   string
	calls     int
}

func (s *stubCompleter) ChatCompletion(_ context.Context, systemPrompt, userMessage string) (string, error) {
	s.calls++
	s.gotSystem = systemPrompt
	s.gotUser = userMessage
	return s.reply, s.err
}

func TestParseFencedNavigateReply(t *testing.T) {
	completer := &stubCompleter{reply: "```json\n" +
		`{"type":"NAVIGATE","slots":{"location":"Airport"},"original_text":"Flight LH 454 Terminal 2","confidence":0.9}` +
		"\n```"}
	p := NewPlanParser(completer, nil)

	got := p.Parse(context.Background(), "Flight LH 454 Terminal 2", "2026-08-28")

	assert.Equal(t, constants.Navigate, got.Type)
	assert.Equal(t, "Airport", got.Slots["location"])
	assert.Equal(t, "Flight LH 454 Terminal 2", got.OriginalText, "original text comes from the input, not the reply")
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)

	assert.Equal(t, 1, completer.calls)
	assert.Contains(t, completer.gotSystem, "2026-08-28")
	assert.Equal(t, "Flight LH 454 Terminal 2", completer.gotUser)
}

func TestParseCompletionErrorFallsBack(t *testing.T) {
	p := NewPlanParser(&stubCompleter{err: errors.New("connection refused")}, nil)

	got := p.Parse(context.Background(), "some screen text", "2026-08-28")

	assert.Equal(t, constants.Unknown, got.Type)
	assert.Equal(t, "some screen text", got.OriginalText)
	assert.Zero(t, got.Confidence)
}

func TestParseMalformedJSONFallsBack(t *testing.T) {
	p := NewPlanParser(&stubCompleter{reply: "Sure! Here is the plan you asked for."}, nil)

	got := p.Parse(context.Background(), "text", "2026-08-28")
	assert.Equal(t, constants.Unknown, got.Type)
	assert.Equal(t, "text", got.OriginalText)
}

func TestParseUnknownTypeNormalizedToFallback(t *testing.T) {
	p := NewPlanParser(&stubCompleter{reply: `{"type":"UNKNOWN","slots":{"title":"x"},"confidence":0.8}`}, nil)

	got := p.Parse(context.Background(), "text", "2026-08-28")

	assert.Equal(t, constants.Unknown, got.Type)
	assert.Empty(t, got.Slots)
	assert.Zero(t, got.Confidence)
}

func TestParseMissingConfidenceDefaultsToOne(t *testing.T) {
	p := NewPlanParser(&stubCompleter{reply: `{"type":"ADD_TODO","slots":{"title":"Buy milk"}}`}, nil)

	got := p.Parse(context.Background(), "Buy milk", "2026-08-28")

	assert.Equal(t, constants.AddTodo, got.Type)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestParseMissingSlotsBecomesEmptyMap(t *testing.T) {
	p := NewPlanParser(&stubCompleter{reply: `{"type":"COPY_TEXT","confidence":0.6}`}, nil)

	got := p.Parse(context.Background(), "just words", "2026-08-28")

	require.NotNil(t, got.Slots)
	assert.Empty(t, got.Slots)
	assert.Equal(t, constants.CopyText, got.Type)
}

func TestParseSurvivesChattyReplyWithExtraKeys(t *testing.T) {
	p := NewPlanParser(&stubCompleter{reply: `{"type":"create_calendar","slots":{"title":"Standup","time":"2026-08-29T09:30:00"},"reasoning":"looks like a meeting","confidence":0.75}`}, nil)

	got := p.Parse(context.Background(), "Standup tomorrow 9:30", "2026-08-28")

	assert.Equal(t, constants.CreateCalendar, got.Type)
	assert.Equal(t, "Standup", got.Slots["title"])
	assert.InDelta(t, 0.75, got.Confidence, 1e-9)
}
