package entity

// VendorRecord is one row of the vendor registry. CanonicalName is unique
// within the registry and registry order is a meaningful tie-break.
type VendorRecord struct {
	CanonicalName       string
	SampleInvoiceNumber string
}

// CodeRecord maps a property code to the keywords that identify it in
// document text. The second keyword carries extra weight during scoring.
type CodeRecord struct {
	Code     string
	Keywords []string
}
