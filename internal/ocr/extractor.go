package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"

	"github.com/reliantpm/docfiler/internal/common"
)

// RegionExtractor crops a percentage-defined region out of a page bitmap and
// hands it to the text detector. Detection is best-effort: failures and
// timeouts degrade to empty text so a single region never aborts a document.
type RegionExtractor struct {
	detector TextDetector
	timeout  time.Duration
	enhance  bool
	logger   *slog.Logger
}

func NewRegionExtractor(detector TextDetector, timeout time.Duration, enhance bool, logger *slog.Logger) *RegionExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &RegionExtractor{detector: detector, timeout: timeout, enhance: enhance, logger: logger}
}

// Extract returns the raw text detected inside region, or "" when the crop is
// invalid, encoding fails, or the detector errors or times out.
func (e *RegionExtractor) Extract(ctx context.Context, img image.Image, region Region) string {
	if err := region.Validate(); err != nil {
		e.logger.Warn("region.invalid", "region", region.Name, "error", err)
		return ""
	}

	bounds := img.Bounds()
	box := region.PixelBounds(bounds.Dx(), bounds.Dy())
	crop := imaging.Crop(img, box.Add(bounds.Min))

	if e.enhance {
		crop = imaging.AdjustContrast(imaging.Grayscale(crop), 20)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, crop, imaging.PNG); err != nil {
		e.logger.Warn("region.encode_failed", "region", region.Name, "error", err)
		return ""
	}

	text, err := common.RunWithDeadline(ctx, e.timeout, func(ctx context.Context) (string, error) {
		return e.detector.DetectText(ctx, buf.Bytes())
	})
	if err != nil {
		e.logger.Warn("region.detect_degraded",
			"region", region.Name,
			"timed_out", errors.Is(err, common.ErrTimedOut),
			"error", err,
		)
		return ""
	}
	return text
}
