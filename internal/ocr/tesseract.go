package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/reliantpm/docfiler/internal/common"
)

// TesseractConfig configures the local tesseract backend.
type TesseractConfig struct {
	Binary      string // binary name or absolute path; if empty -> "tesseract"
	Lang        string // default "eng"
	TessdataDir string
}

// TesseractDetector shells out to tesseract for text detection.
type TesseractDetector struct {
	cfg    TesseractConfig
	runner common.Runner
	logger *slog.Logger
}

func NewTesseractDetector(cfg TesseractConfig, logger *slog.Logger) *TesseractDetector {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	return &TesseractDetector{cfg: cfg, runner: common.ExecRunner{}, logger: logger}
}

func (d *TesseractDetector) DetectText(ctx context.Context, png []byte) (string, error) {
	tmp, err := os.CreateTemp("", "df-crop-*.png")
	if err != nil {
		return "", err
	}
	defer func() {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil {
			d.logger.Warn("failed to remove temp crop", "path", tmp.Name(), "error", rmErr)
		}
	}()
	if _, err := tmp.Write(png); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	args := []string{tmp.Name(), "stdout", "-l", d.cfg.Lang}
	if d.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", d.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, _, err := d.runner.Run(ctx, d.cfg.Binary, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract %s: %w", filepath.Base(tmp.Name()), err)
	}
	return Normalize(string(out)), nil
}
