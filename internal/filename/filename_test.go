package filename

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/reliantpm/docfiler/internal/entity"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSynthesizeAllFields(t *testing.T) {
	name := Synthesize(entity.ExtractedFields{
		PropertyCode:  "100",
		Vendor:        "Acme Supply",
		Date:          datePtr(2025, time.October, 5),
		InvoiceNumber: "INV-1234",
	})
	assert.Equal(t, "100_ACME_SUPPLY_100525_1234", name)
}

func TestSynthesizePlaceholders(t *testing.T) {
	name := Synthesize(entity.ExtractedFields{})
	assert.Equal(t, "MISSING_PROPERTY_CODE_MISSING_VENDOR_MISSING_DATE_MISSING_NUMBER", name)
}

func TestSynthesizePartialFields(t *testing.T) {
	name := Synthesize(entity.ExtractedFields{
		Vendor: "Blue River Plumbing",
		Date:   datePtr(2026, time.January, 5),
	})
	assert.Equal(t, "MISSING_PROPERTY_CODE_BLUE_RIVER_PLUMBING_010526_MISSING_NUMBER", name)
}

func TestSynthesizeVendorPunctuationStripped(t *testing.T) {
	name := Synthesize(entity.ExtractedFields{Vendor: "O'Brien & Sons, Inc."})
	assert.Contains(t, name, "_OBRIEN_SONS_INC_")
}

func TestSynthesizeInvoiceDigitsOnly(t *testing.T) {
	name := Synthesize(entity.ExtractedFields{InvoiceNumber: "AB-12x34"})
	assert.Contains(t, name, "_1234")
}

func TestSynthesizeDeterministic(t *testing.T) {
	f := entity.ExtractedFields{
		PropertyCode:  "200",
		Vendor:        "Acme Supply",
		Date:          datePtr(2026, time.March, 2),
		InvoiceNumber: "INV-9",
	}
	assert.Equal(t, Synthesize(f), Synthesize(f))
}
