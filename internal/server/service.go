// Package server exposes the pipeline and dispatcher over JSON-RPC 2.0 so a
// capture/overlay front end can drive them out of process.
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/screenact/screenact/internal/common"
	"github.com/screenact/screenact/internal/dispatch"
	"github.com/screenact/screenact/internal/export"
	"github.com/screenact/screenact/internal/ocr"
	"github.com/screenact/screenact/internal/pipeline"
	"github.com/screenact/screenact/internal/plan"
)

type Service struct {
	pipeline   *pipeline.Pipeline
	dispatcher *dispatch.Dispatcher
	recognizer *ocr.Recognizer
	exporter   *export.Service
	logger     *slog.Logger
}

func NewService(p *pipeline.Pipeline, d *dispatch.Dispatcher, r *ocr.Recognizer, e *export.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pipeline: p, dispatcher: d, recognizer: r, exporter: e, logger: logger}
}

// Handler returns the jsonrpc2 handler for one client connection.
func (s *Service) Handler() jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(s.handle)
}

// Wire shapes. Fragment boxes travel as [x0,y0,x1,y1].

type wireFragment struct {
	Text       string  `json:"text"`
	Box        [4]int  `json:"box"`
	Confidence float64 `json:"confidence"`
}

type processDocumentParams struct {
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Fragments []wireFragment `json:"fragments"`
}

type processTextParams struct {
	Text string `json:"text"`
}

type processImageParams struct {
	Path string `json:"path"`
}

type planResult struct {
	Plan    plan.ActionPlan `json:"plan"`
	Summary string          `json:"summary"`
}

type executeParams struct {
	Plan plan.ActionPlan `json:"plan"`
}

type exportResult struct {
	XLSXBase64 string `json:"xlsx_base64"`
}

func (s *Service) handle(ctx context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	ctx = common.WithRequestID(ctx, uuid.New().String())
	s.logger.Info("rpc.request", "method", req.Method, "req_id", common.RequestIDFromContext(ctx))

	switch req.Method {
	case "document/process":
		var p processDocumentParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		doc := ocr.NewDocument(p.Width, p.Height)
		for _, f := range p.Fragments {
			doc.AddFragment(f.Text, ocr.Rect{X0: f.Box[0], Y0: f.Box[1], X1: f.Box[2], Y1: f.Box[3]}, f.Confidence)
		}
		selected := s.pipeline.ProcessDocument(ctx, doc)
		return planResult{Plan: selected, Summary: dispatch.Summarize(selected)}, nil

	case "text/process":
		var p processTextParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		selected := s.pipeline.ProcessText(ctx, p.Text)
		return planResult{Plan: selected, Summary: dispatch.Summarize(selected)}, nil

	case "image/process":
		var p processImageParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		doc, err := s.recognizer.Recognize(ctx, p.Path)
		if err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: "ocr failed: " + err.Error()}
		}
		selected := s.pipeline.ProcessDocument(ctx, doc)
		return planResult{Plan: selected, Summary: dispatch.Summarize(selected)}, nil

	case "plan/execute":
		var p executeParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		// Execution outcomes, including failures, are normal results.
		return s.dispatcher.Execute(ctx, p.Plan), nil

	case "plan/summary":
		var p executeParams
		if err := decodeParams(req, &p); err != nil {
			return nil, err
		}
		return dispatch.Summarize(p.Plan), nil

	case "export/xlsx":
		data, err := s.exporter.ExportXLSX(ctx)
		if err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: "export failed: " + err.Error()}
		}
		return exportResult{XLSXBase64: base64.StdEncoding.EncodeToString(data)}, nil

	default:
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "unknown method: " + req.Method}
	}
}

func decodeParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "bad params: " + err.Error()}
	}
	return nil
}
