package raster

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/disintegration/imaging"

	"github.com/reliantpm/docfiler/constants"
	"github.com/reliantpm/docfiler/internal/common"
)

type Config struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	DPI      int    // rasterization DPI, default 150
	Pages    int    // pages to render from the front of the document, default 1
	Timeout  time.Duration
}

// Rasterizer renders the leading pages of a source document into bitmaps.
// The source file is never mutated or moved.
type Rasterizer struct {
	cfg    Config
	runner common.Runner
	logger *slog.Logger
}

func NewRasterizer(cfg Config, logger *slog.Logger) *Rasterizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 150
	}
	if cfg.Pages <= 0 {
		cfg.Pages = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Rasterizer{cfg: cfg, runner: common.ExecRunner{}, logger: logger}
}

// Rasterize picks a strategy based on file extension and returns page images
// in order. Unreadable or unsupported input yields ErrInput; a conversion that
// outlives the deadline yields ErrTimedOut, which may succeed on retry.
func (r *Rasterizer) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	r.logger.Debug("rasterizing document", "path", path, "ext", ext)

	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		return common.RunWithDeadline(ctx, r.cfg.Timeout, func(ctx context.Context) ([]image.Image, error) {
			return r.rasterizePDF(ctx, path)
		})
	case constants.IMAGE:
		img, err := imaging.Open(path)
		if err != nil {
			return nil, common.NewAppError("RASTER_DECODE", fmt.Sprintf("decode %q", path), common.ErrInput)
		}
		return []image.Image{img}, nil
	default:
		return nil, common.NewAppError("RASTER_EXT", fmt.Sprintf("unsupported extension %q", ext), common.ErrInput)
	}
}

func (r *Rasterizer) rasterizePDF(ctx context.Context, path string) ([]image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "df-pp-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			r.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png -f 1 -l <pages> <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", r.cfg.DPI),
		"-png",
		"-f", "1",
		"-l", fmt.Sprintf("%d", r.cfg.Pages),
		path, prefix)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, common.NewAppError("RASTER_CONVERT", string(errb), common.ErrInput)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, common.NewAppError("RASTER_EMPTY", "pdftoppm produced no images", common.ErrInput)
	}
	if len(matches) > r.cfg.Pages {
		matches = matches[:r.cfg.Pages]
	}

	pages := make([]image.Image, 0, len(matches))
	for _, p := range matches {
		img, err := imaging.Open(p)
		if err != nil {
			return nil, common.NewAppError("RASTER_DECODE", fmt.Sprintf("decode %q", p), common.ErrInput)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
