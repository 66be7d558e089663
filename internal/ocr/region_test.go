package ocr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionValidate(t *testing.T) {
	assert.NoError(t, FullPage.Validate())
	assert.NoError(t, COIExpiration.Validate())

	bad := []Region{
		{Name: "inverted-v", V0: 50, V1: 40, H0: 0, H1: 100},
		{Name: "inverted-h", V0: 0, V1: 100, H0: 70, H1: 60},
		{Name: "over-100", V0: 0, V1: 101, H0: 0, H1: 100},
		{Name: "negative", V0: -1, V1: 10, H0: 0, H1: 100},
		{Name: "empty", V0: 10, V1: 10, H0: 0, H1: 100},
	}
	for _, r := range bad {
		assert.Error(t, r.Validate(), r.Name)
	}
}

func TestPixelBoundsFullPage(t *testing.T) {
	box := FullPage.PixelBounds(1700, 2200)
	assert.Equal(t, 0, box.Min.X)
	assert.Equal(t, 0, box.Min.Y)
	assert.Equal(t, 1700, box.Max.X)
	assert.Equal(t, 2200, box.Max.Y)
}

func TestPixelBoundsTruncates(t *testing.T) {
	r := Region{Name: "box", V0: 35, V1: 45, H0: 50, H1: 69}
	box := r.PixelBounds(1000, 1000)
	assert.Equal(t, 500, box.Min.X)
	assert.Equal(t, 690, box.Max.X)
	assert.Equal(t, 350, box.Min.Y)
	assert.Equal(t, 450, box.Max.Y)
}

// Tiny images must still yield a usable crop: valid regions never collapse to
// an empty rectangle regardless of page size.
func TestPixelBoundsNeverEmpty(t *testing.T) {
	regions := []Region{FullPage, COIExpiration,
		{Name: "sliver", V0: 0, V1: 0.1, H0: 99.9, H1: 100}}
	for _, r := range regions {
		require.NoError(t, r.Validate())
		for _, dim := range []int{1, 2, 7, 100, 2200} {
			box := r.PixelBounds(dim, dim)
			name := fmt.Sprintf("%s@%d", r.Name, dim)
			assert.False(t, box.Empty(), name)
			assert.GreaterOrEqual(t, box.Min.X, 0, name)
			assert.GreaterOrEqual(t, box.Min.Y, 0, name)
		}
	}
}

func TestProfileByName(t *testing.T) {
	assert.Equal(t, COIProfile, ProfileByName("coi"))
	assert.Equal(t, InvoiceProfile, ProfileByName("invoice"))
	assert.Equal(t, InvoiceProfile, ProfileByName("anything-else"))
}

func TestNormalize(t *testing.T) {
	in := "ACME  SUPPLY\t\tINC\r\nInvoice   INV-5678  \n\n\n\n06/01/2026\n----------\n"
	got := Normalize(in)
	assert.Equal(t, "ACME SUPPLY INC\nInvoice INV-5678\n\n06/01/2026", got)
}

func TestNormalizeKeepsDigitsVerbatim(t *testing.T) {
	assert.Equal(t, "O0O 10/05/25", Normalize("O0O 10/05/25"))
}
