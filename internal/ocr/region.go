package ocr

import (
	"fmt"
	"image"
)

// Region is a percentage-defined rectangular crop of a rasterized page, used
// to scope text detection to a known field location. Bounds are percentages
// in [0,100] with V0<V1 and H0<H1.
type Region struct {
	Name string
	V0   float64
	V1   float64
	H0   float64
	H1   float64
}

// Validate checks the percentage invariants.
func (r Region) Validate() error {
	if r.V0 < 0 || r.V1 > 100 || r.V0 >= r.V1 {
		return fmt.Errorf("region %q: vertical range (%v,%v) out of order or bounds", r.Name, r.V0, r.V1)
	}
	if r.H0 < 0 || r.H1 > 100 || r.H0 >= r.H1 {
		return fmt.Errorf("region %q: horizontal range (%v,%v) out of order or bounds", r.Name, r.H0, r.H1)
	}
	return nil
}

// PixelBounds converts the percentage ranges to a pixel rectangle inside a
// width×height image, truncating toward zero. For any valid region and image
// the result is a non-empty rectangle inside image bounds.
func (r Region) PixelBounds(width, height int) image.Rectangle {
	left := int(float64(width) * r.H0 / 100)
	right := int(float64(width) * r.H1 / 100)
	top := int(float64(height) * r.V0 / 100)
	bottom := int(float64(height) * r.V1 / 100)
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}
	return image.Rect(left, top, right, bottom)
}

// FullPage covers the entire page.
var FullPage = Region{Name: "full-page", V0: 0, V1: 100, H0: 0, H1: 100}

// COIExpiration is the box on an ACORD certificate where expiration dates
// cluster.
var COIExpiration = Region{Name: "coi-expiration", V0: 35, V1: 45, H0: 50, H1: 69}

// Profile names the regions consulted for one document type.
type Profile struct {
	Name   string
	Date   Region
	Vendor Region
}

var (
	// COIProfile scopes the date search to the expiration box; vendor names
	// appear anywhere on the certificate.
	COIProfile = Profile{Name: "coi", Date: COIExpiration, Vendor: FullPage}

	// InvoiceProfile reads the whole page for both fields.
	InvoiceProfile = Profile{Name: "invoice", Date: FullPage, Vendor: FullPage}
)

// ProfileByName returns the named profile, defaulting to InvoiceProfile.
func ProfileByName(name string) Profile {
	if name == "coi" {
		return COIProfile
	}
	return InvoiceProfile
}
