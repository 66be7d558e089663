package entity

import "time"

// ExtractedFields is built incrementally as a document moves through the
// pipeline. Any field may remain unresolved; that is a normal terminal state,
// not an error. Placeholder rendering happens only at filename synthesis.
type ExtractedFields struct {
	PropertyCode  string // "" = unresolved
	Vendor        string // "" = unresolved; always a registry member when set
	Date          *time.Time
	InvoiceNumber string // "" = unresolved; verbatim token from document text when set
}

// Complete reports whether every field resolved.
func (f ExtractedFields) Complete() bool {
	return f.PropertyCode != "" && f.Vendor != "" && f.Date != nil && f.InvoiceNumber != ""
}

// Missing lists the unresolved field names, in filename order.
func (f ExtractedFields) Missing() []string {
	var out []string
	if f.PropertyCode == "" {
		out = append(out, "property_code")
	}
	if f.Vendor == "" {
		out = append(out, "vendor")
	}
	if f.Date == nil {
		out = append(out, "date")
	}
	if f.InvoiceNumber == "" {
		out = append(out, "invoice_number")
	}
	return out
}
