package resolve

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/reliantpm/docfiler/internal/common"
)

// StructuralPattern generalizes a sample invoice number into an anchored
// regexp: each digit becomes a digit class, each letter a letter class, and
// everything else is kept literal. The pattern preserves length and
// punctuation skeleton, so "INV-1234" matches "INV-5678" but not "INVOICE-99"
// or a bare "1234".
func StructuralPattern(sample string) (*regexp.Regexp, error) {
	if strings.TrimSpace(sample) == "" {
		return nil, common.NewAppError("RESOLVE_SAMPLE", "empty sample invoice number", common.ErrResolution)
	}
	var b strings.Builder
	b.WriteString("^")
	for _, ch := range sample {
		switch {
		case unicode.IsDigit(ch):
			b.WriteString(`\d`)
		case unicode.IsLetter(ch):
			b.WriteString(`[A-Za-z]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// ResolveInvoiceNumber searches the document text for a whitespace token whose
// shape matches the vendor's sample, expanding outward from the resolved
// date. dateOffset is the byte offset of the date substring within text; the
// anchor is the token just past the date. At each offset the forward token is
// checked before the backward one — that ordering is part of the contract.
// The returned token is always drawn verbatim from text.
func ResolveInvoiceNumber(text, sample string, dateOffset int) string {
	if dateOffset < 0 || dateOffset > len(text) {
		return ""
	}
	pattern, err := StructuralPattern(sample)
	if err != nil {
		return ""
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	anchor := len(strings.Fields(text[:dateOffset])) + 1

	for offset := 0; offset <= len(words); offset++ {
		for _, idx := range []int{anchor + offset, anchor - offset} {
			if idx >= 0 && idx < len(words) && pattern.MatchString(words[idx]) {
				return words[idx]
			}
		}
	}
	return ""
}
