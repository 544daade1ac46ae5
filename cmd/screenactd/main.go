package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/screenact/screenact/internal/common"
	"github.com/screenact/screenact/internal/dispatch"
	"github.com/screenact/screenact/internal/export"
	"github.com/screenact/screenact/internal/llm/openai"
	"github.com/screenact/screenact/internal/ocr"
	"github.com/screenact/screenact/internal/parser"
	"github.com/screenact/screenact/internal/pipeline"
	"github.com/screenact/screenact/internal/providers/calendar"
	"github.com/screenact/screenact/internal/providers/clipboard"
	"github.com/screenact/screenact/internal/providers/nav"
	"github.com/screenact/screenact/internal/providers/todo"
	"github.com/screenact/screenact/internal/selector"
	"github.com/screenact/screenact/internal/server"
	"github.com/screenact/screenact/internal/watch"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Effect stores
	events, err := calendar.Open(ctx, cfg.Store.CalendarPath, logger)
	if err != nil {
		logger.Error("open calendar store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = events.Close() }()

	todos, err := todo.Open(ctx, cfg.Store.TodoPath, logger)
	if err != nil {
		logger.Error("open todo store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = todos.Close() }()

	// Pipeline wiring
	completer := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	planParser := parser.NewPlanParser(completer, logger)
	sel := selector.New(planParser, logger, selector.WithWorkers(cfg.LLM.Workers))
	structurer := ocr.NewStructurer()
	pipe := pipeline.New(structurer, planParser, sel, logger)

	recognizer := ocr.NewRecognizer(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
	}, logger)

	dispatcher := dispatch.NewDispatcher(events, nav.NewOpener(logger), todos, clipboard.NewWriter(logger), logger)
	exporter := export.NewService(events, todos, logger)
	svc := server.NewService(pipe, dispatcher, recognizer, exporter, logger)

	// Optional screenshot watcher alongside the RPC surface.
	if len(cfg.Watch.Dirs) > 0 {
		paths, errs, err := watch.Start(ctx, watch.Config{
			Roots:    cfg.Watch.Dirs,
			Debounce: cfg.Watch.Debounce,
		}, logger)
		if err != nil {
			logger.Error("start watcher", "dirs", cfg.Watch.Dirs, "error", err)
			os.Exit(1)
		}
		go func() {
			for err := range errs {
				logger.Warn("watcher error", "error", err)
			}
		}()
		runner := watch.NewRunner(recognizer, pipe, dispatcher, cfg.Watch.AutoRun, logger)
		go runner.Run(ctx, paths)
	}

	lis, err := net.Listen("tcp", cfg.Server.ListenAddr)
	if err != nil {
		logger.Error("listen", "addr", cfg.Server.ListenAddr, "error", err)
		os.Exit(1)
	}
	logger.Info("screenactd serving", "addr", cfg.Server.ListenAddr)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down...")
		_ = lis.Close()
	}()

	for {
		nc, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("stopped")
				return
			}
			logger.Warn("accept failed", "error", err)
			continue
		}

		stream := jsonrpc2.NewBufferedStream(nc, jsonrpc2.VSCodeObjectCodec{})
		conn := jsonrpc2.NewConn(ctx, stream, svc.Handler())
		go func() {
			<-conn.DisconnectNotify()
			logger.Debug("client disconnected")
		}()
	}
}
