package server

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenact/screenact/internal/dispatch"
	"github.com/screenact/screenact/internal/ocr"
	"github.com/screenact/screenact/internal/parser"
	"github.com/screenact/screenact/internal/pipeline"
	"github.com/screenact/screenact/internal/plan"
	"github.com/screenact/screenact/internal/selector"
)

type fixedCompleter struct {
	reply string
	err   error
}

func (f fixedCompleter) ChatCompletion(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func newTestService(reply string) *Service {
	planParser := parser.NewPlanParser(fixedCompleter{reply: reply}, nil)
	sel := selector.New(planParser, nil, selector.WithWorkers(1))
	pipe := pipeline.New(ocr.NewStructurer(), planParser, sel, nil)
	dispatcher := dispatch.NewDispatcher(nil, nil, nil, failingClipboard{}, nil)
	return NewService(pipe, dispatcher, ocr.NewRecognizer(ocr.Config{}, nil), nil, nil)
}

type failingClipboard struct{}

func (failingClipboard) WriteClipboard(string) error { return errors.New("no clipboard in test") }

func request(t *testing.T, method string, params any) *jsonrpc2.Request {
	t.Helper()
	req := &jsonrpc2.Request{Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		require.NoError(t, err)
		msg := json.RawMessage(raw)
		req.Params = &msg
	}
	return req
}

func TestHandleTextProcess(t *testing.T) {
	svc := newTestService(`{"type":"NAVIGATE","slots":{"location":"Harbor"},"confidence":0.9}`)

	res, err := svc.handle(context.Background(), nil, request(t, "text/process", processTextParams{Text: "Harbor cruise at pier 3"}))
	require.NoError(t, err)

	got, ok := res.(planResult)
	require.True(t, ok)
	assert.Equal(t, "Harbor", got.Plan.Slots["location"])
	assert.Equal(t, "Harbor cruise at pier 3", got.Plan.OriginalText)
	assert.Contains(t, got.Summary, "Harbor")
}

func TestHandleDocumentProcess(t *testing.T) {
	svc := newTestService(`{"type":"ADD_TODO","slots":{"title":"Buy milk"},"confidence":0.8}`)

	params := processDocumentParams{
		Width:  200,
		Height: 100,
		Fragments: []wireFragment{
			{Text: "Buy milk", Box: [4]int{10, 10, 90, 30}, Confidence: 0.95},
		},
	}
	res, err := svc.handle(context.Background(), nil, request(t, "document/process", params))
	require.NoError(t, err)

	got := res.(planResult)
	assert.Equal(t, "Buy milk", got.Plan.Slots["title"])
}

func TestHandlePlanExecuteReturnsFailureAsResult(t *testing.T) {
	svc := newTestService("{}")

	p := plan.ActionPlan{Type: "COPY_TEXT", Slots: map[string]string{"content": "x"}}
	res, err := svc.handle(context.Background(), nil, request(t, "plan/execute", executeParams{Plan: p}))
	require.NoError(t, err, "provider failures are results, not RPC errors")

	got := res.(plan.ExecutionResult)
	assert.False(t, got.Success)
	assert.Contains(t, got.Message, "could not copy text")
}

func TestHandlePlanSummary(t *testing.T) {
	svc := newTestService("{}")

	p := plan.ActionPlan{Type: "NAVIGATE", Slots: map[string]string{"location": "Airport"}}
	res, err := svc.handle(context.Background(), nil, request(t, "plan/summary", executeParams{Plan: p}))
	require.NoError(t, err)
	assert.Contains(t, res.(string), "Airport")
}

func TestHandleMissingParams(t *testing.T) {
	svc := newTestService("{}")

	_, err := svc.handle(context.Background(), nil, request(t, "text/process", nil))
	require.Error(t, err)

	var rpcErr *jsonrpc2.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, int64(jsonrpc2.CodeInvalidParams), rpcErr.Code)
}

func TestHandleUnknownMethod(t *testing.T) {
	svc := newTestService("{}")

	_, err := svc.handle(context.Background(), nil, request(t, "nope/nothing", nil))
	require.Error(t, err)

	var rpcErr *jsonrpc2.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, int64(jsonrpc2.CodeMethodNotFound), rpcErr.Code)
}
