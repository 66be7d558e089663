package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/reliantpm/docfiler/internal/common"
	"github.com/reliantpm/docfiler/internal/journal"
	"github.com/reliantpm/docfiler/internal/llm/openai"
	"github.com/reliantpm/docfiler/internal/ocr"
	"github.com/reliantpm/docfiler/internal/pipeline"
	"github.com/reliantpm/docfiler/internal/raster"
	"github.com/reliantpm/docfiler/internal/registry"
	"github.com/reliantpm/docfiler/internal/resolve"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		in         = flag.String("in", "", "intake directory to process (required)")
		done       = flag.String("done", "", "destination for fully resolved documents (default <in>/../NAMED)")
		docType    = flag.String("type", "invoice", "document type: invoice | coi")
		regPath    = flag.String("registry", "", "vendor registry workbook (overrides REGISTRY_WORKBOOK)")
		journalDSN = flag.String("journal", "docfiler.db", "journal SQLite path (empty disables)")
		pages      = flag.Int("pages", 0, "pages to rasterize per document (overrides RASTER_PAGES)")
		writeBack  = flag.Bool("writeback", false, "write resolved dates back to the vendor registry")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *in == "" {
		printError("Error: --in is required\n")
		os.Exit(1)
	}
	if *done == "" {
		*done = defaultDoneDir(*in)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}

	cfg := common.LoadConfig()
	if *regPath != "" {
		cfg.Registry.WorkbookPath = *regPath
	}
	if *pages > 0 {
		cfg.Raster.Pages = *pages
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Cancellation is honored at document boundaries only.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway := registry.NewXLSXGateway(registry.XLSXConfig{
		Path:        cfg.Registry.WorkbookPath,
		VendorSheet: cfg.Registry.VendorSheet,
		CodeSheet:   cfg.Registry.CodeSheet,
	}, logger)

	vendors, err := gateway.FetchVendors(ctx)
	if err != nil {
		logger.Error("failed to fetch vendor registry", "error", err)
		os.Exit(1)
	}
	codes, err := gateway.FetchCodes(ctx)
	if err != nil {
		logger.Error("failed to fetch property codes", "error", err)
		os.Exit(1)
	}
	logger.Info("registry snapshot loaded", "vendors", len(vendors), "codes", len(codes))

	rasterizer := raster.NewRasterizer(raster.Config{
		Pdftoppm: cfg.Raster.Pdftoppm,
		DPI:      cfg.Raster.DPI,
		Pages:    cfg.Raster.Pages,
		Timeout:  cfg.Raster.Timeout,
	}, logger)

	detector, err := buildDetector(cfg, logger)
	if err != nil {
		logger.Error("failed to build text detector", "error", err)
		os.Exit(1)
	}
	regions := ocr.NewRegionExtractor(detector, cfg.OCR.Timeout, cfg.OCR.Enhance, logger)

	// Assisted vendor matching is optional; without an API key the substring
	// tiers still run.
	var matcher resolve.Matcher
	if cfg.LLM.APIKey != "" {
		matcher = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		logger.Info("assisted vendor matching enabled", "model", cfg.LLM.Model)
	} else {
		logger.Warn("OPENAI_API_KEY not configured, assisted vendor matching disabled")
	}

	var writer pipeline.DateWriter
	if *writeBack {
		writer = gateway
	}

	var rec pipeline.Recorder
	if *journalDSN != "" {
		j, err := journal.Open(ctx, *journalDSN, logger)
		if err != nil {
			logger.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := j.Close(); cerr != nil {
				logger.Warn("failed to close journal", "error", cerr)
			}
		}()
		rec = j
	}

	proc := pipeline.NewProcessor(logger, rasterizer, regions,
		ocr.ProfileByName(*docType), vendors, codes, matcher, writer, *done)
	batch := pipeline.NewBatch(logger, proc, rec)

	start := time.Now()
	stats, err := batch.Run(ctx, *in)
	if err != nil {
		logger.Error("batch halted", "error", err,
			"scanned", stats.Scanned, "elapsed", time.Since(start).String())
	}

	fmt.Printf("Batch complete in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("- Scanned:      %d\n", stats.Scanned)
	fmt.Printf("- Resolved:     %d\n", stats.Resolved)
	fmt.Printf("- Partial:      %d\n", stats.Partial)
	fmt.Printf("- Input failed: %d\n", stats.InputFailed)
	fmt.Printf("- FS failed:    %d\n", stats.FSFailed)
	if err != nil {
		os.Exit(1)
	}
}

func defaultDoneDir(in string) string {
	return in + string(os.PathSeparator) + ".." + string(os.PathSeparator) + "NAMED"
}

func buildDetector(cfg *common.Config, logger *slog.Logger) (ocr.TextDetector, error) {
	switch cfg.OCR.Backend {
	case "azure":
		return ocr.NewAzureDetector(cfg.OCR.AzureEndpoint, cfg.OCR.AzureKey, logger), nil
	case "tesseract", "":
		return ocr.NewTesseractDetector(ocr.TesseractConfig{
			Binary:      cfg.OCR.Tesseract,
			Lang:        cfg.OCR.TesseractLang,
			TessdataDir: cfg.OCR.TessdataDir,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown OCR backend %q", cfg.OCR.Backend)
	}
}
