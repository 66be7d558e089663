package pipeline

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/reliantpm/docfiler/constants"
	"github.com/reliantpm/docfiler/internal/common"
	"github.com/reliantpm/docfiler/internal/entity"
	"github.com/reliantpm/docfiler/internal/filename"
	"github.com/reliantpm/docfiler/internal/ocr"
	"github.com/reliantpm/docfiler/internal/resolve"
)

// Rasterizer renders the leading pages of one document.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string) ([]image.Image, error)
}

// RegionExtractor returns best-effort text for one region of one page.
type RegionExtractor interface {
	Extract(ctx context.Context, img image.Image, region ocr.Region) string
}

// DateWriter accepts the expiration-date write-back. Failures are logged and
// never block filename synthesis.
type DateWriter interface {
	WriteResolvedDate(ctx context.Context, vendorName string, d time.Time) error
}

// Processor runs the field-extraction and filing pipeline for one document at
// a time. The vendor and code snapshots are fetched once per batch and are
// read-only here.
type Processor struct {
	logger  *slog.Logger
	raster  Rasterizer
	regions RegionExtractor
	profile ocr.Profile
	vendors []entity.VendorRecord
	codes   []entity.CodeRecord
	matcher resolve.Matcher // optional tier-3 collaborator
	writer  DateWriter      // optional write-back
	doneDir string
	now     func() time.Time
}

func NewProcessor(
	logger *slog.Logger,
	raster Rasterizer,
	regions RegionExtractor,
	profile ocr.Profile,
	vendors []entity.VendorRecord,
	codes []entity.CodeRecord,
	matcher resolve.Matcher,
	writer DateWriter,
	doneDir string,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:  logger,
		raster:  raster,
		regions: regions,
		profile: profile,
		vendors: vendors,
		codes:   codes,
		matcher: matcher,
		writer:  writer,
		doneDir: doneDir,
		now:     time.Now,
	}
}

// ProcessDocument runs the full pipeline for one file and returns the
// journaled outcome. No failure here is fatal to the batch: unreadable input
// and filesystem trouble come back as terminal statuses, and unresolved
// fields surface as placeholders in the synthesized name.
func (p *Processor) ProcessDocument(ctx context.Context, path string) entity.RunRecord {
	// A document that has started always finishes. Caller cancellation takes
	// effect between documents only; the per-call deadlines inside raster and
	// OCR still bound every external call.
	ctx = context.WithoutCancel(ctx)

	rec := entity.RunRecord{
		ID:         uuid.New(),
		SourcePath: path,
		StartedAt:  p.now(),
	}

	pages, err := p.raster.Rasterize(ctx, path)
	if err != nil {
		rec.Status = constants.DocStatusInputFailed
		rec.Error = err.Error()
		rec.FinishedAt = p.now()
		p.logger.Error("pipeline.raster.failed",
			"path", path,
			"retryable", errors.Is(err, common.ErrTimedOut),
			"error", err,
		)
		return rec
	}
	first := pages[0]

	// The two region extractions are independent; run them concurrently but
	// always wait for both. Extract degrades to "" on its own, so neither can
	// cancel the other.
	var dateText, vendorText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dateText = p.regions.Extract(gctx, first, p.profile.Date)
		return nil
	})
	g.Go(func() error {
		vendorText = p.regions.Extract(gctx, first, p.profile.Vendor)
		return nil
	})
	_ = g.Wait()

	fullText := vendorText
	if p.profile.Vendor != ocr.FullPage {
		fullText = p.regions.Extract(ctx, first, ocr.FullPage)
	}
	for _, page := range pages[1:] {
		if t := p.regions.Extract(ctx, page, ocr.FullPage); t != "" {
			fullText += "\n" + t
		}
	}

	fields := p.resolveFields(ctx, dateText, vendorText, fullText)

	name := filename.Synthesize(fields)
	p.logger.Info("pipeline.fields.resolved",
		"path", path,
		"name", name,
		"missing", fields.Missing(),
	)

	newPath, err := filename.RenameInPlace(path, name)
	if err != nil {
		rec.Status = constants.DocStatusFSFailed
		rec.Error = err.Error()
		rec.FinishedAt = p.now()
		p.logger.Error("pipeline.rename.failed", "path", path, "error", err)
		return rec
	}

	if fields.Complete() && p.doneDir != "" {
		moved, mvErr := filename.Relocate(newPath, p.doneDir)
		if mvErr != nil {
			rec.Status = constants.DocStatusFSFailed
			rec.Error = mvErr.Error()
			rec.FinalName = filepath.Base(newPath)
			rec.FinishedAt = p.now()
			p.logger.Error("pipeline.relocate.failed", "path", newPath, "error", mvErr)
			return rec
		}
		newPath = moved
		rec.Status = constants.DocStatusResolved
	} else if fields.Complete() {
		rec.Status = constants.DocStatusResolved
	} else {
		rec.Status = constants.DocStatusPartial
	}

	if p.writer != nil && fields.Vendor != "" && fields.Date != nil {
		if wbErr := p.writer.WriteResolvedDate(ctx, fields.Vendor, *fields.Date); wbErr != nil {
			p.logger.Warn("pipeline.writeback.failed", "vendor", fields.Vendor, "error", wbErr)
		}
	}

	rec.FinalName = filepath.Base(newPath)
	rec.Missing = fields.Missing()
	rec.FinishedAt = p.now()
	return rec
}

// resolveFields applies the resolvers in dependency order: the invoice-number
// search needs both the resolved vendor's sample and the date's position in
// the full text.
func (p *Processor) resolveFields(ctx context.Context, dateText, vendorText, fullText string) entity.ExtractedFields {
	var fields entity.ExtractedFields

	cand := resolve.ResolveDate(dateText, p.now())
	if cand != nil {
		v := cand.Value
		fields.Date = &v
	}

	fields.Vendor = resolve.ResolveVendor(ctx, vendorText, p.vendors, p.matcher, p.logger)
	fields.PropertyCode = resolve.ResolvePropertyCode(fullText, p.codes)

	if fields.Vendor != "" && cand != nil {
		sample := ""
		for _, v := range p.vendors {
			if v.CanonicalName == fields.Vendor {
				sample = v.SampleInvoiceNumber
				break
			}
		}
		if anchor := strings.Index(fullText, cand.Matched); anchor >= 0 && sample != "" {
			fields.InvoiceNumber = resolve.ResolveInvoiceNumber(fullText, sample, anchor)
		}
	}
	return fields
}
