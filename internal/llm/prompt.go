package llm

import (
	"fmt"
	"strings"
)

// BuildVendorSystemPrompt constrains the model to the numbered vendor list.
// The reply must be JSON with a single "vendor" key whose value is either one
// listed name, copied exactly, or the no-match sentinel.
func BuildVendorSystemPrompt(noMatch string) string {
	parts := []string{
		"You match business-document text to a known vendor list. Return ONLY JSON of the form {\"vendor\": \"...\"}.",
		"The value MUST be copied character-for-character from the numbered list you are given, or be exactly " + noMatch + " when no listed vendor plausibly issued the document.",
		"Never invent, abbreviate, re-case, or correct a vendor name.",
		"When several vendors seem plausible, pick the one whose full legal name appears closest to verbatim in the text.",
	}
	return strings.Join(parts, " ")
}

// BuildVendorUserPrompt packages the numbered list and a bounded excerpt of
// the document text.
func BuildVendorUserPrompt(vendors []string, excerpt string) string {
	var b strings.Builder
	b.WriteString("Vendor list:\n")
	for i, name := range vendors {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	b.WriteString("\nDocument text:\n")
	b.WriteString(excerpt)
	return b.String()
}
