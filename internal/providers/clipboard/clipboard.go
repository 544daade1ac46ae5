// Package clipboard implements the clipboard effect provider.
package clipboard

import (
	"log/slog"

	"github.com/atotto/clipboard"
)

type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// WriteClipboard implements dispatch.ClipboardProvider.
func (w *Writer) WriteClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		w.logger.Error("clipboard.write.failed", "error", err)
		return err
	}
	w.logger.Debug("clipboard.write.ok", "bytes", len(text))
	return nil
}
