package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/screenact/screenact/constants"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang        string // default "eng"
	TessdataDir string

	PSM int // e.g., 6 is good for a uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default
}

// Recognizer produces a Document from an image file by running tesseract in
// TSV mode, which reports a bounding box and confidence per word.
type Recognizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRecognizer(cfg Config, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	return &Recognizer{cfg: cfg, runner: newExecRunner(logger), logger: logger}
}

// Recognize runs OCR on the image at path and returns the recognized
// document. Word rows with no reported confidence are skipped.
func (r *Recognizer) Recognize(ctx context.Context, path string) (*Document, error) {
	ext := filepath.Ext(path)
	if !constants.IsImageExt(ext) {
		r.logger.Error("unsupported ocr extension", "extension", ext)
		return nil, fmt.Errorf("unsupported extension: %q", ext)
	}

	args := []string{path, "stdout", "-l", r.cfg.Lang}
	if r.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(r.cfg.PSM))
	}
	if r.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(r.cfg.OEM))
	}
	if r.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", r.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := r.runner.Run(ctx, r.cfg.Tesseract, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract TSV: %w (%s)", err, truncate(string(errb), 512))
	}

	doc, err := parseTSV(string(out))
	if err != nil {
		return nil, err
	}
	r.logger.Debug("ocr recognize ok", "path", path, "fragments", len(doc.Fragments),
		"width", doc.Width, "height", doc.Height)
	return doc, nil
}

// TSV columns: level page_num block_num par_num line_num word_num
// left top width height conf text. The level-1 (page) row carries the page
// dimensions; level-5 (word) rows carry recognized words.
func parseTSV(tsv string) (*Document, error) {
	doc := NewDocument(0, 0)

	lines := strings.Split(tsv, "\n")
	for i, ln := range lines {
		if i == 0 || len(ln) == 0 { // skip header
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue // malformed row
		}

		level, err := strconv.Atoi(cols[0])
		if err != nil {
			continue
		}
		left, _ := strconv.Atoi(cols[6])
		top, _ := strconv.Atoi(cols[7])
		width, _ := strconv.Atoi(cols[8])
		height, _ := strconv.Atoi(cols[9])

		switch level {
		case 1:
			doc.Width = width
			doc.Height = height
		case 5:
			conf, err := strconv.ParseFloat(cols[10], 64)
			if err != nil || conf < 0 {
				continue
			}
			text := strings.TrimSpace(strings.Join(cols[11:], "\t"))
			if text == "" {
				continue
			}
			box := Rect{X0: left, Y0: top, X1: left + width, Y1: top + height}
			doc.AddFragment(text, box, conf/100.0)
		}
	}

	if doc.Width == 0 || doc.Height == 0 {
		return nil, fmt.Errorf("tesseract TSV: no page dimensions in output")
	}
	return doc, nil
}
