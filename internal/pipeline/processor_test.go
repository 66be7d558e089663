package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliantpm/docfiler/constants"
	"github.com/reliantpm/docfiler/internal/common"
	"github.com/reliantpm/docfiler/internal/entity"
	"github.com/reliantpm/docfiler/internal/ocr"
)

type stubRaster struct {
	pages []image.Image
	err   error
}

func (s *stubRaster) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	return s.pages, s.err
}

// stubRegions answers per region name, defaulting to the full-page text.
type stubRegions struct {
	byRegion map[string]string
}

func (s *stubRegions) Extract(ctx context.Context, img image.Image, region ocr.Region) string {
	return s.byRegion[region.Name]
}

type stubWriter struct {
	vendor string
	date   time.Time
	err    error
	calls  int
}

func (s *stubWriter) WriteResolvedDate(ctx context.Context, vendorName string, d time.Time) error {
	s.calls++
	s.vendor = vendorName
	s.date = d
	return s.err
}

var (
	pipelineVendors = []entity.VendorRecord{
		{CanonicalName: "Acme Supply", SampleInvoiceNumber: "INV-1234"},
		{CanonicalName: "Blue River Plumbing", SampleInvoiceNumber: "BR-0001"},
	}
	pipelineCodes = []entity.CodeRecord{
		{Code: "100", Keywords: []string{"northgate", "12 Elm Street"}},
	}
)

func onePage() []image.Image {
	return []image.Image{imaging.New(10, 10, color.White)}
}

func stageFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0o644))
	return path
}

func newTestProcessor(raster Rasterizer, regions RegionExtractor, writer DateWriter, doneDir string) *Processor {
	return NewProcessor(nil, raster, regions,
		ocr.InvoiceProfile, pipelineVendors, pipelineCodes, nil, writer, doneDir)
}

func TestProcessDocumentFullyResolved(t *testing.T) {
	dir := t.TempDir()
	doneDir := filepath.Join(dir, "NAMED")
	src := stageFile(t, dir, "scan001.pdf")

	regions := &stubRegions{byRegion: map[string]string{
		ocr.FullPage.Name: "Acme Supply northgate Invoice 03/15/2099 INV-5678",
	}}
	p := newTestProcessor(&stubRaster{pages: onePage()}, regions, nil, doneDir)

	rec := p.ProcessDocument(context.Background(), src)

	assert.Equal(t, constants.DocStatusResolved, rec.Status)
	assert.Equal(t, "100_ACME_SUPPLY_031599_5678.pdf", rec.FinalName)
	assert.Empty(t, rec.Missing)
	assert.NoFileExists(t, src)
	assert.FileExists(t, filepath.Join(doneDir, rec.FinalName))
}

func TestProcessDocumentPartialStaysInStaging(t *testing.T) {
	dir := t.TempDir()
	doneDir := filepath.Join(dir, "NAMED")
	src := stageFile(t, dir, "scan002.pdf")

	// No vendor resolves, so no sample and no invoice number either.
	regions := &stubRegions{byRegion: map[string]string{
		ocr.FullPage.Name: "northgate remittance 03/15/2099",
	}}
	p := newTestProcessor(&stubRaster{pages: onePage()}, regions, nil, doneDir)

	rec := p.ProcessDocument(context.Background(), src)

	assert.Equal(t, constants.DocStatusPartial, rec.Status)
	assert.Equal(t, "100_MISSING_VENDOR_031599_MISSING_NUMBER.pdf", rec.FinalName)
	assert.ElementsMatch(t, []string{"vendor", "invoice_number"}, rec.Missing)
	assert.FileExists(t, filepath.Join(dir, rec.FinalName))
	assert.NoDirExists(t, doneDir)
}

func TestProcessDocumentEmptyOCRRenamesWithPlaceholders(t *testing.T) {
	dir := t.TempDir()
	src := stageFile(t, dir, "blank.pdf")

	p := newTestProcessor(&stubRaster{pages: onePage()},
		&stubRegions{byRegion: map[string]string{}}, nil, filepath.Join(dir, "NAMED"))

	rec := p.ProcessDocument(context.Background(), src)

	assert.Equal(t, constants.DocStatusPartial, rec.Status)
	assert.Equal(t,
		"MISSING_PROPERTY_CODE_MISSING_VENDOR_MISSING_DATE_MISSING_NUMBER.pdf",
		rec.FinalName)
	assert.Len(t, rec.Missing, 4)
}

func TestProcessDocumentRasterFailure(t *testing.T) {
	dir := t.TempDir()
	src := stageFile(t, dir, "corrupt.pdf")

	rasterErr := common.NewAppError("RASTER_DECODE", "decode failed", common.ErrInput)
	p := newTestProcessor(&stubRaster{err: rasterErr}, &stubRegions{}, nil, "")

	rec := p.ProcessDocument(context.Background(), src)

	assert.Equal(t, constants.DocStatusInputFailed, rec.Status)
	assert.Contains(t, rec.Error, "RASTER_DECODE")
	assert.FileExists(t, src, "failed input is left untouched")
}

func TestProcessDocumentRegionScopedDate(t *testing.T) {
	dir := t.TempDir()
	src := stageFile(t, dir, "cert.pdf")

	// The expiration box yields only the date; the page body carries the
	// vendor. The date resolver must never see the body's stale date.
	regions := &stubRegions{byRegion: map[string]string{
		ocr.COIExpiration.Name: "EXP DATE 06/30/2099",
		ocr.FullPage.Name:      "Blue River Plumbing certificate issued 01/01/2020",
	}}
	p := NewProcessor(nil, &stubRaster{pages: onePage()}, regions,
		ocr.COIProfile, pipelineVendors, pipelineCodes, nil, nil, "")

	rec := p.ProcessDocument(context.Background(), src)

	assert.Contains(t, rec.FinalName, "_063099_")
	assert.Contains(t, rec.FinalName, "BLUE_RIVER_PLUMBING")
}

func TestProcessDocumentWriteBack(t *testing.T) {
	dir := t.TempDir()
	src := stageFile(t, dir, "scan003.pdf")

	writer := &stubWriter{}
	regions := &stubRegions{byRegion: map[string]string{
		ocr.FullPage.Name: "Acme Supply northgate 03/15/2099 INV-5678",
	}}
	p := newTestProcessor(&stubRaster{pages: onePage()}, regions, writer, filepath.Join(dir, "NAMED"))

	p.ProcessDocument(context.Background(), src)

	assert.Equal(t, 1, writer.calls)
	assert.Equal(t, "Acme Supply", writer.vendor)
	assert.Equal(t, time.Date(2099, time.March, 15, 0, 0, 0, 0, time.UTC), writer.date)
}

func TestProcessDocumentWriteBackFailureDoesNotChangeStatus(t *testing.T) {
	dir := t.TempDir()
	src := stageFile(t, dir, "scan004.pdf")

	writer := &stubWriter{err: errors.New("workbook locked")}
	regions := &stubRegions{byRegion: map[string]string{
		ocr.FullPage.Name: "Acme Supply northgate 03/15/2099 INV-5678",
	}}
	p := newTestProcessor(&stubRaster{pages: onePage()}, regions, writer, filepath.Join(dir, "NAMED"))

	rec := p.ProcessDocument(context.Background(), src)

	assert.Equal(t, constants.DocStatusResolved, rec.Status)
}

// ctxAwareRaster fails like the real rasterizer would once its context is
// cancelled.
type ctxAwareRaster struct {
	pages []image.Image
}

func (s *ctxAwareRaster) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.pages, nil
}

// ctxAwareRegions degrades to empty text like the real extractor would once
// its context is cancelled.
type ctxAwareRegions struct {
	byRegion map[string]string
}

func (s *ctxAwareRegions) Extract(ctx context.Context, img image.Image, region ocr.Region) string {
	if ctx.Err() != nil {
		return ""
	}
	return s.byRegion[region.Name]
}

// A document that has started must run to completion even when the caller's
// context is already cancelled: cancellation is honored between documents,
// never mid-pipeline, so nothing gets placeholder-renamed or mis-recorded as
// an input failure just because a shutdown arrived while it was in flight.
func TestProcessDocumentRunsToCompletionWhenCallerCancels(t *testing.T) {
	dir := t.TempDir()
	doneDir := filepath.Join(dir, "NAMED")
	src := stageFile(t, dir, "scan006.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	regions := &ctxAwareRegions{byRegion: map[string]string{
		ocr.FullPage.Name: "Acme Supply northgate Invoice 03/15/2099 INV-5678",
	}}
	p := newTestProcessor(&ctxAwareRaster{pages: onePage()}, regions, nil, doneDir)

	rec := p.ProcessDocument(ctx, src)

	assert.Equal(t, constants.DocStatusResolved, rec.Status)
	assert.Equal(t, "100_ACME_SUPPLY_031599_5678.pdf", rec.FinalName)
	assert.Empty(t, rec.Missing)
	assert.FileExists(t, filepath.Join(doneDir, rec.FinalName))
}

func TestProcessDocumentNoWriteBackWithoutDate(t *testing.T) {
	dir := t.TempDir()
	src := stageFile(t, dir, "scan005.pdf")

	writer := &stubWriter{}
	regions := &stubRegions{byRegion: map[string]string{
		ocr.FullPage.Name: "Acme Supply northgate, no dates here",
	}}
	p := newTestProcessor(&stubRaster{pages: onePage()}, regions, writer, "")

	p.ProcessDocument(context.Background(), src)

	assert.Equal(t, 0, writer.calls)
}
