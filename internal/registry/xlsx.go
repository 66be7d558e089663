package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/reliantpm/docfiler/internal/common"
	"github.com/reliantpm/docfiler/internal/entity"
)

// Workbook column layout, one-based. The VENDORS sheet keeps canonical names
// in column B, the tracked expiration date in column G (MMDDYY), and a sample
// invoice number in column H. The code sheet keeps the property code in
// column A and its keywords in the columns after it.
const (
	vendorNameCol    = 1 // B
	vendorExpDateCol = 6 // G
	vendorSampleCol  = 7 // H
)

// expDateLayout is the 6-digit MMDDYY the registry stores.
const expDateLayout = "010206"

type XLSXConfig struct {
	Path        string
	VendorSheet string // default "VENDORS"
	CodeSheet   string // default "CODE1"
}

// XLSXGateway reads and writes the vendor-management workbook.
type XLSXGateway struct {
	cfg    XLSXConfig
	logger *slog.Logger
}

func NewXLSXGateway(cfg XLSXConfig, logger *slog.Logger) *XLSXGateway {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.VendorSheet == "" {
		cfg.VendorSheet = "VENDORS"
	}
	if cfg.CodeSheet == "" {
		cfg.CodeSheet = "CODE1"
	}
	return &XLSXGateway{cfg: cfg, logger: logger}
}

func (g *XLSXGateway) FetchVendors(ctx context.Context) ([]entity.VendorRecord, error) {
	f, err := excelize.OpenFile(g.cfg.Path)
	if err != nil {
		return nil, common.WrapError(err, "open registry workbook")
	}
	defer g.close(f)

	rows, err := f.GetRows(g.cfg.VendorSheet)
	if err != nil {
		return nil, common.WrapError(err, "read vendor sheet")
	}

	var vendors []entity.VendorRecord
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		name := cell(row, vendorNameCol)
		if name == "" {
			continue
		}
		vendors = append(vendors, entity.VendorRecord{
			CanonicalName:       name,
			SampleInvoiceNumber: cell(row, vendorSampleCol),
		})
	}
	g.logger.Debug("registry vendors fetched", "count", len(vendors))
	return vendors, nil
}

func (g *XLSXGateway) FetchCodes(ctx context.Context) ([]entity.CodeRecord, error) {
	f, err := excelize.OpenFile(g.cfg.Path)
	if err != nil {
		return nil, common.WrapError(err, "open registry workbook")
	}
	defer g.close(f)

	rows, err := f.GetRows(g.cfg.CodeSheet)
	if err != nil {
		return nil, common.WrapError(err, "read code sheet")
	}

	var codes []entity.CodeRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		code := cell(row, 0)
		if code == "" {
			continue
		}
		var keywords []string
		for c := 1; c < len(row); c++ {
			keywords = append(keywords, strings.TrimSpace(row[c]))
		}
		codes = append(codes, entity.CodeRecord{Code: code, Keywords: keywords})
	}
	g.logger.Debug("registry codes fetched", "count", len(codes))
	return codes, nil
}

func (g *XLSXGateway) WriteResolvedDate(ctx context.Context, vendorName string, d time.Time) error {
	f, err := excelize.OpenFile(g.cfg.Path)
	if err != nil {
		return common.NewAppError("REGISTRY_OPEN", "open registry workbook", common.ErrRegistryWrite)
	}
	defer g.close(f)

	rows, err := f.GetRows(g.cfg.VendorSheet)
	if err != nil {
		return common.NewAppError("REGISTRY_READ", "read vendor sheet", common.ErrRegistryWrite)
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if cell(row, vendorNameCol) != vendorName {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(vendorExpDateCol+1, i+1)
		if err != nil {
			return common.NewAppError("REGISTRY_AXIS", err.Error(), common.ErrRegistryWrite)
		}
		if err := f.SetCellValue(g.cfg.VendorSheet, axis, d.Format(expDateLayout)); err != nil {
			return common.NewAppError("REGISTRY_SET", err.Error(), common.ErrRegistryWrite)
		}
		if err := f.Save(); err != nil {
			return common.NewAppError("REGISTRY_SAVE", err.Error(), common.ErrRegistryWrite)
		}
		g.logger.Info("registry date written", "vendor", vendorName, "date", d.Format(expDateLayout))
		return nil
	}
	return common.NewAppError("REGISTRY_MISS", fmt.Sprintf("vendor %q not in registry", vendorName), common.ErrRegistryWrite)
}

func (g *XLSXGateway) close(f *excelize.File) {
	if err := f.Close(); err != nil {
		g.logger.Warn("failed to close registry workbook", "error", err)
	}
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
