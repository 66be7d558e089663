package resolve

import (
	"strings"

	"github.com/reliantpm/docfiler/internal/entity"
)

// ResolvePropertyCode scores each code's keywords against the text and picks
// the highest total. The registry puts the most distinctive keyword second,
// so that column counts five-fold. Zero matches means unresolved.
func ResolvePropertyCode(text string, codes []entity.CodeRecord) string {
	lower := strings.ToLower(text)

	best := ""
	bestScore := 0
	for _, rec := range codes {
		score := 0
		for i, kw := range rec.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(kw)) {
				if i == 1 {
					score += 5
				} else {
					score++
				}
			}
		}
		if score > bestScore {
			bestScore = score
			best = rec.Code
		}
	}
	return best
}
