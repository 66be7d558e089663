package registry

import (
	"context"
	"time"

	"github.com/reliantpm/docfiler/internal/entity"
)

// Gateway supplies the vendor and property-code reference data and accepts
// the expiration-date write-back. Fetches happen once per batch; the snapshot
// is treated as immutable for the rest of the run.
type Gateway interface {
	FetchVendors(ctx context.Context) ([]entity.VendorRecord, error)
	FetchCodes(ctx context.Context) ([]entity.CodeRecord, error)
	// WriteResolvedDate records d against the vendor row whose canonical name
	// matches exactly.
	WriteResolvedDate(ctx context.Context, vendorName string, d time.Time) error
}
