package resolve

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateCandidate is one calendar date found in raw text. Offset is the byte
// offset of the matched substring, used later to anchor the invoice-number
// search.
type DateCandidate struct {
	Value   time.Time
	Matched string
	Offset  int
}

// Pattern-priority order is fixed: numeric slash, numeric dash, then the
// spelled-month forms.
var (
	reSlashDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	reDashDate  = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{2,4})\b`)
	reDayMonth  = regexp.MustCompile(`\b(\d{1,2})\s+((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*)\s+(\d{4})\b`)
	reMonthDay  = regexp.MustCompile(`\b((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*)\s+(\d{1,2}),\s*(\d{4})\b`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ResolveDate scans raw text for calendar dates, keeps those strictly after
// today, and returns the furthest-future one. It never falls back to a past
// date: an empty candidate set yields nil. Two-digit years expand to 20YY.
func ResolveDate(text string, today time.Time) *DateCandidate {
	var best *DateCandidate
	consider := func(c DateCandidate) {
		if !c.Value.After(today) {
			return
		}
		if best == nil || c.Value.After(best.Value) {
			cc := c
			best = &cc
		}
	}

	for _, re := range []*regexp.Regexp{reSlashDate, reDashDate} {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			month, _ := strconv.Atoi(text[loc[2]:loc[3]])
			day, _ := strconv.Atoi(text[loc[4]:loc[5]])
			year := expandYear(text[loc[6]:loc[7]])
			if d, ok := makeDate(year, month, day); ok {
				consider(DateCandidate{Value: d, Matched: text[loc[0]:loc[1]], Offset: loc[0]})
			}
		}
	}

	for _, loc := range reDayMonth.FindAllStringSubmatchIndex(text, -1) {
		day, _ := strconv.Atoi(text[loc[2]:loc[3]])
		month, ok := monthFromName(text[loc[4]:loc[5]])
		if !ok {
			continue
		}
		year, _ := strconv.Atoi(text[loc[6]:loc[7]])
		if d, ok := makeDate(year, int(month), day); ok {
			consider(DateCandidate{Value: d, Matched: text[loc[0]:loc[1]], Offset: loc[0]})
		}
	}

	for _, loc := range reMonthDay.FindAllStringSubmatchIndex(text, -1) {
		month, ok := monthFromName(text[loc[2]:loc[3]])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(text[loc[4]:loc[5]])
		year, _ := strconv.Atoi(text[loc[6]:loc[7]])
		if d, ok := makeDate(year, int(month), day); ok {
			consider(DateCandidate{Value: d, Matched: text[loc[0]:loc[1]], Offset: loc[0]})
		}
	}

	return best
}

func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if len(s) == 2 {
		return 2000 + y
	}
	return y
}

func monthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if len(name) < 3 {
		return 0, false
	}
	m, ok := monthsByPrefix[name[:3]]
	return m, ok
}

// makeDate rejects malformed matches like month 13 or Feb 30 instead of
// letting time.Date normalize them into different days.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}
