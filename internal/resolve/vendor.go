package resolve

import (
	"context"
	"log/slog"
	"strings"

	"github.com/reliantpm/docfiler/internal/entity"
)

// Matcher is the optional free-text vendor-matching collaborator consulted
// when the substring tiers find nothing. It must answer with one of the
// supplied names or report no match.
type Matcher interface {
	MatchVendor(ctx context.Context, vendors []string, excerpt string) (string, error)
}

// excerptLimit bounds the text handed to the assisted matcher.
const excerptLimit = 3000

// ResolveVendor matches raw text against the registry using a tiered
// strategy. Tier 1 is a case-insensitive substring test in registry order;
// tier 2 requires every whitespace token of a name to appear somewhere in the
// text; tier 3 delegates to the matcher when one is supplied. The result is
// always a registry member or "" — never a fabricated name.
func ResolveVendor(ctx context.Context, text string, vendors []entity.VendorRecord, matcher Matcher, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	lower := strings.ToLower(text)

	for _, v := range vendors {
		if strings.Contains(lower, strings.ToLower(v.CanonicalName)) {
			return v.CanonicalName
		}
	}

	for _, v := range vendors {
		tokens := strings.Fields(strings.ToLower(v.CanonicalName))
		if len(tokens) == 0 {
			continue
		}
		all := true
		for _, tok := range tokens {
			if !strings.Contains(lower, tok) {
				all = false
				break
			}
		}
		if all {
			return v.CanonicalName
		}
	}

	if matcher == nil {
		return ""
	}

	names := make([]string, 0, len(vendors))
	for _, v := range vendors {
		names = append(names, v.CanonicalName)
	}
	excerpt := text
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit]
	}

	answer, err := matcher.MatchVendor(ctx, names, excerpt)
	if err != nil {
		logger.Warn("vendor.assisted_match_failed", "error", err)
		return ""
	}
	// Anything not byte-identical to a listed name is no match, including a
	// plausible-looking but unlisted name.
	for _, name := range names {
		if answer == name {
			return name
		}
	}
	if answer != "" && answer != NoMatch {
		logger.Warn("vendor.assisted_match_unlisted", "answer", answer)
	}
	return ""
}

// NoMatch is the sentinel an assisted matcher returns when no listed vendor
// fits the text.
const NoMatch = "NO_MATCH"
