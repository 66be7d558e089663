package filename

import (
	"strings"
	"unicode"

	"github.com/reliantpm/docfiler/internal/entity"
)

// Placeholders rendered for unresolved fields. A filename containing any of
// them marks the document incomplete: renamed in place but not relocated.
const (
	MissingPropertyCode = "MISSING_PROPERTY_CODE"
	MissingVendor       = "MISSING_VENDOR"
	MissingDate         = "MISSING_DATE"
	MissingNumber       = "MISSING_NUMBER"
)

// dateLayout renders a resolved date as 6-digit MMDDYY.
const dateLayout = "010206"

// Synthesize composes the canonical filename from whichever fields resolved:
// propertyCode_VENDOR_MMDDYY_digits, each part independently falling back to
// its placeholder. Pure: identical fields always yield the identical string.
func Synthesize(f entity.ExtractedFields) string {
	parts := []string{
		MissingPropertyCode,
		MissingVendor,
		MissingDate,
		MissingNumber,
	}
	if f.PropertyCode != "" {
		parts[0] = f.PropertyCode
	}
	if f.Vendor != "" {
		parts[1] = formatVendor(f.Vendor)
	}
	if f.Date != nil {
		parts[2] = f.Date.Format(dateLayout)
	}
	if f.InvoiceNumber != "" {
		parts[3] = digitsOnly(f.InvoiceNumber)
	}
	return strings.Join(parts, "_")
}

// formatVendor uppercases the name with non-alphanumerics stripped and
// whitespace runs collapsed to single underscores.
func formatVendor(name string) string {
	var b strings.Builder
	for _, ch := range name {
		switch {
		case unicode.IsLetter(ch) || unicode.IsDigit(ch):
			b.WriteRune(unicode.ToUpper(ch))
		case unicode.IsSpace(ch):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
