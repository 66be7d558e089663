package ocr

import (
	"context"
	"regexp"
	"strings"
)

// TextDetector is the OCR collaborator: given an encoded PNG it returns
// whatever text it can read, possibly none. Implementations may fail with
// transient service errors; callers treat those as degradable, never fatal.
type TextDetector interface {
	DetectText(ctx context.Context, png []byte) (string, error)
}

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
	reBoxNoise   = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)
)

// Normalize collapses noisy whitespace from detector output. Conservative:
// keeps line breaks and never rewrites characters, since digits and
// punctuation are load-bearing for date and invoice-number matching.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	s = reBoxNoise.ReplaceAllString(s, "")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
