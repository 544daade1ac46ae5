// Command screenact runs the text-to-action pipeline from the terminal,
// without the daemon: parse text or an image into a plan, optionally execute
// it, or export the stored results.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/screenact/screenact/internal/common"
	"github.com/screenact/screenact/internal/dispatch"
	"github.com/screenact/screenact/internal/export"
	"github.com/screenact/screenact/internal/llm/openai"
	"github.com/screenact/screenact/internal/ocr"
	"github.com/screenact/screenact/internal/parser"
	"github.com/screenact/screenact/internal/pipeline"
	"github.com/screenact/screenact/internal/plan"
	"github.com/screenact/screenact/internal/providers/calendar"
	"github.com/screenact/screenact/internal/providers/clipboard"
	"github.com/screenact/screenact/internal/providers/nav"
	"github.com/screenact/screenact/internal/providers/todo"
	"github.com/screenact/screenact/internal/selector"
	"github.com/screenact/screenact/internal/watch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg        *common.Config
	logger     *slog.Logger
	pipeline   *pipeline.Pipeline
	recognizer *ocr.Recognizer
	events     *calendar.Store
	todos      *todo.Store
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "screenact",
		Short:         "Turn recognized screen text into executable actions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newPlanCmd(&verbose),
		newOCRCmd(&verbose),
		newRunCmd(&verbose),
		newWatchCmd(&verbose),
		newExportCmd(&verbose),
	)
	return root
}

func newApp(verbose bool) (*app, func(), error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	completer := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	planParser := parser.NewPlanParser(completer, logger)
	sel := selector.New(planParser, logger, selector.WithWorkers(cfg.LLM.Workers))
	pipe := pipeline.New(ocr.NewStructurer(), planParser, sel, logger)

	recognizer := ocr.NewRecognizer(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
	}, logger)

	ctx := context.Background()
	events, err := calendar.Open(ctx, cfg.Store.CalendarPath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open calendar store: %w", err)
	}
	todos, err := todo.Open(ctx, cfg.Store.TodoPath, logger)
	if err != nil {
		_ = events.Close()
		return nil, nil, fmt.Errorf("open todo store: %w", err)
	}

	a := &app{
		cfg:        cfg,
		logger:     logger,
		pipeline:   pipe,
		recognizer: recognizer,
		events:     events,
		todos:      todos,
	}
	closeAll := func() {
		_ = events.Close()
		_ = todos.Close()
	}
	return a, closeAll, nil
}

func (a *app) dispatcher() *dispatch.Dispatcher {
	return dispatch.NewDispatcher(a.events, nav.NewOpener(a.logger), a.todos, clipboard.NewWriter(a.logger), a.logger)
}

func newPlanCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <text>",
		Short: "Parse text into an action plan (no side effects)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeAll, err := newApp(*verbose)
			if err != nil {
				return err
			}
			defer closeAll()

			p := a.pipeline.ProcessText(cmd.Context(), args[0])
			return printPlan(p)
		},
	}
}

func newOCRCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "ocr <image>",
		Short: "Recognize an image and parse the result into a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeAll, err := newApp(*verbose)
			if err != nil {
				return err
			}
			defer closeAll()

			doc, err := a.recognizer.Recognize(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := a.pipeline.ProcessDocument(cmd.Context(), doc)
			return printPlan(p)
		},
	}
}

func newRunCmd(verbose *bool) *cobra.Command {
	var fromImage bool

	cmd := &cobra.Command{
		Use:   "run <text|image>",
		Short: "Parse the input and execute the resulting action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeAll, err := newApp(*verbose)
			if err != nil {
				return err
			}
			defer closeAll()

			var p plan.ActionPlan
			if fromImage {
				doc, err := a.recognizer.Recognize(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				p = a.pipeline.ProcessDocument(cmd.Context(), doc)
			} else {
				p = a.pipeline.ProcessText(cmd.Context(), args[0])
			}

			fmt.Println(dispatch.Summarize(p))
			result := a.dispatcher().Execute(cmd.Context(), p)
			fmt.Println(result.Message)
			if !result.Success {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&fromImage, "image", "i", false, "treat the argument as an image path to OCR first")
	return cmd
}

func newWatchCmd(verbose *bool) *cobra.Command {
	var (
		autoRun     bool
		initialScan bool
	)

	cmd := &cobra.Command{
		Use:   "watch <dir> [dir...]",
		Short: "Watch directories for new screenshots and plan each one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeAll, err := newApp(*verbose)
			if err != nil {
				return err
			}
			defer closeAll()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			paths, errs, err := watch.Start(ctx, watch.Config{
				Roots:       args,
				InitialScan: initialScan,
				Debounce:    500 * time.Millisecond,
			}, a.logger)
			if err != nil {
				return err
			}
			go func() {
				for err := range errs {
					a.logger.Warn("watch error", "error", err)
				}
			}()

			runner := watch.NewRunner(a.recognizer, a.pipeline, a.dispatcher(), autoRun, a.logger)
			runner.Run(ctx, paths)
			return nil
		},
	}
	cmd.Flags().BoolVar(&autoRun, "execute", false, "execute each plan instead of only printing its summary")
	cmd.Flags().BoolVar(&initialScan, "scan", false, "also process images already present in the directories")
	return cmd
}

func newExportCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "export <out.xlsx>",
		Short: "Export stored calendar events and todos to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeAll, err := newApp(*verbose)
			if err != nil {
				return err
			}
			defer closeAll()

			data, err := export.NewService(a.events, a.todos, a.logger).ExportXLSX(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d bytes)\n", args[0], len(data))
			return nil
		},
	}
}

func printPlan(p plan.ActionPlan) error {
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	fmt.Println(dispatch.Summarize(p))
	return nil
}
