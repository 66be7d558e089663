package constants

// DocStatus is the canonical terminal status for a document run.
type DocStatus string

// Stable values (store these exact strings in the journal).
const (
	DocStatusResolved    DocStatus = "RESOLVED"     // every field resolved, relocated to done
	DocStatusPartial     DocStatus = "PARTIAL"      // renamed with placeholders, kept in staging
	DocStatusInputFailed DocStatus = "INPUT_FAILED" // unreadable/unsupported source, no page rendered
	DocStatusFSFailed    DocStatus = "FS_FAILED"    // rename or relocation failed; nothing overwritten, a completed in-place rename is not rolled back
)
