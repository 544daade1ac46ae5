// Package export produces XLSX workbooks from the local effect stores so
// created events and todos can be reviewed outside the tool.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/screenact/screenact/internal/providers/calendar"
	"github.com/screenact/screenact/internal/providers/todo"
)

// Service is a tiny façade over the stores that produces XLSX bytes.
type Service struct {
	events *calendar.Store
	todos  *todo.Store
	logger *slog.Logger
}

func NewService(events *calendar.Store, todos *todo.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{events: events, todos: todos, logger: logger}
}

// ExportXLSX returns a workbook with one sheet of calendar events and one of
// todos.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	todos, err := s.todos.ListTodos(ctx)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}

	f := excelize.NewFile()

	if err := writeEventsSheet(f, events); err != nil {
		return nil, err
	}
	if err := writeTodosSheet(f, todos); err != nil {
		return nil, err
	}

	// Drop the default sheet excelize creates.
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"events", len(events), "todos", len(todos),
		"bytes", buf.Len(), "elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeEventsSheet(f *excelize.File, events []calendar.Event) error {
	const sheet = "Events"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Title", "Start", "End", "Location", "Description", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, e := range events {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, e.Title)
		write(2, e.StartAt.Local().Format("2006-01-02 15:04"))
		write(3, e.EndAt.Local().Format("2006-01-02 15:04"))
		write(4, e.Location)
		write(5, e.Description)
		write(6, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func writeTodosSheet(f *excelize.File, items []todo.Item) error {
	const sheet = "Todos"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Title", "Content", "Done", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, it := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, it.Title)
		write(2, it.Content)
		write(3, it.Done)
		write(4, it.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
