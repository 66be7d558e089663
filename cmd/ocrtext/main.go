package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/reliantpm/docfiler/internal/common"
	"github.com/reliantpm/docfiler/internal/ocr"
	"github.com/reliantpm/docfiler/internal/raster"
)

// ocrtext rasterizes one document and prints the detected text, optionally
// scoped to a named region. Useful for tuning region boxes against real scans.
func main() {
	var (
		file   = flag.String("file", "", "document to read (required)")
		region = flag.String("region", "full-page", "region: full-page | coi-expiration")
		pages  = flag.Int("pages", 1, "pages to rasterize")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}
	cfg := common.LoadConfig()
	if *pages > 0 {
		cfg.Raster.Pages = *pages
	}

	var box ocr.Region
	switch *region {
	case "full-page":
		box = ocr.FullPage
	case "coi-expiration":
		box = ocr.COIExpiration
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown region %q\n", *region)
		os.Exit(1)
	}

	ctx := context.Background()

	rasterizer := raster.NewRasterizer(raster.Config{
		Pdftoppm: cfg.Raster.Pdftoppm,
		DPI:      cfg.Raster.DPI,
		Pages:    cfg.Raster.Pages,
		Timeout:  cfg.Raster.Timeout,
	}, logger)

	imgs, err := rasterizer.Rasterize(ctx, *file)
	if err != nil {
		logger.Error("rasterization failed", "path", *file, "error", err)
		os.Exit(1)
	}

	var detector ocr.TextDetector
	if cfg.OCR.Backend == "azure" {
		detector = ocr.NewAzureDetector(cfg.OCR.AzureEndpoint, cfg.OCR.AzureKey, logger)
	} else {
		detector = ocr.NewTesseractDetector(ocr.TesseractConfig{
			Binary:      cfg.OCR.Tesseract,
			Lang:        cfg.OCR.TesseractLang,
			TessdataDir: cfg.OCR.TessdataDir,
		}, logger)
	}
	extractor := ocr.NewRegionExtractor(detector, cfg.OCR.Timeout, cfg.OCR.Enhance, logger)

	for i, img := range imgs {
		fmt.Printf("--- page %d (%s) ---\n", i+1, box.Name)
		fmt.Println(extractor.Extract(ctx, img, box))
	}
}
