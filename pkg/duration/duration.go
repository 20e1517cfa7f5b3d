// Package duration parses free-form date and tenure strings into a
// normalized interval. Three grammars are tried in order; the first that
// matches wins, and an unparseable string produces Empty() rather than an
// error.
package duration

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parsed is a normalized employment interval. Month fields are 1-12 with 0
// meaning unknown; year fields use 0 for unknown; TotalMonths is -1 when no
// tenure could be derived.
//
// When Ongoing is true the end fields reflect the injected resolution-time
// "now", never a value scraped from text.
type Parsed struct {
	StartYear   int
	StartMonth  int
	EndYear     int
	EndMonth    int
	Ongoing     bool
	TotalMonths int
}

// Empty returns the all-unknown result.
func Empty() Parsed {
	return Parsed{TotalMonths: -1}
}

// HasStart reports whether a start date was resolved.
func (p Parsed) HasStart() bool { return p.StartYear != 0 }

// HasEnd reports whether an end date was resolved.
func (p Parsed) HasEnd() bool { return p.EndYear != 0 }

// HasTotal reports whether a tenure in months was derived.
func (p Parsed) HasTotal() bool { return p.TotalMonths >= 0 }

// resolver is one grammar attempt. It returns ok=false when the grammar does
// not match, leaving the next resolver in the chain to try.
type resolver func(s string, now time.Time) (Parsed, bool)

// resolvers are tried in documented precedence order:
//  1. month-precision range ("Jan 2020 - Mar 2022", "Jan 2020 - Present")
//  2. year-precision range ("2019 - 2021", "2019 - Present")
//  3. free-text tenure ("3 yrs 2 mos", "11 mos")
var resolvers = []resolver{
	resolveMonthRange,
	resolveYearRange,
	resolveTenure,
}

// Resolve parses s against each grammar in order. now anchors the end of any
// ongoing range so that repeated runs with the same now are reproducible.
func Resolve(s string, now time.Time) Parsed {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty()
	}
	for _, r := range resolvers {
		if p, ok := r(s, now); ok {
			return p
		}
	}
	return Empty()
}

// YearsRounded converts a month count to whole years for display, rounding
// up when the remainder is six months or more. This is a product convention;
// do not change it.
func YearsRounded(months int) int {
	years := months / 12
	if months%12 >= 6 {
		years++
	}
	return years
}

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

const monthPat = `(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?`

var (
	monthRangeRe  = regexp.MustCompile(`(?i)\b` + monthPat + `\s+(\d{4})\s*[-–—]\s*(?:(Present|Current)\b|` + monthPat + `\s+(\d{4}))`)
	yearRangeRe   = regexp.MustCompile(`(?i)\b(\d{4})\s*[-–—]\s*(?:(Present|Current)\b|(\d{4}))`)
	yearsMonthsRe = regexp.MustCompile(`(?i)\b(\d+)\s*(?:yrs?|years?)(?:\s+(\d+)\s*(?:mos?|months?))?\b`)
	monthsOnlyRe  = regexp.MustCompile(`(?i)\b(\d+)\s*(?:mos?|months?)\b`)
)

func monthNumber(name string) int {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}
	return months[key]
}

// monthsBetween computes the calendar difference in months. Unknown months
// (0) are treated as January so year-only ranges still yield a tenure.
func monthsBetween(sy, sm, ey, em int) int {
	if sm == 0 {
		sm = 1
	}
	if em == 0 {
		em = 1
	}
	return (ey-sy)*12 + em - sm
}

func resolveMonthRange(s string, now time.Time) (Parsed, bool) {
	m := monthRangeRe.FindStringSubmatch(s)
	if m == nil {
		return Parsed{}, false
	}

	p := Empty()
	p.StartMonth = monthNumber(m[1])
	p.StartYear = atoi(m[2])

	if m[3] != "" {
		p.Ongoing = true
		p.EndYear = now.Year()
		p.EndMonth = int(now.Month())
	} else {
		p.EndMonth = monthNumber(m[4])
		p.EndYear = atoi(m[5])
	}

	p.TotalMonths = explicitOrComputedTenure(s, p)
	return p, true
}

// explicitOrComputedTenure prefers tenure text appearing alongside an
// ongoing range ("Jan 2020 - Present · 4 yrs 6 mos") over arithmetic against
// now; otherwise the calendar difference is used.
func explicitOrComputedTenure(s string, p Parsed) int {
	if p.Ongoing {
		if t, ok := resolveTenure(s, time.Time{}); ok {
			return t.TotalMonths
		}
	}
	total := monthsBetween(p.StartYear, p.StartMonth, p.EndYear, p.EndMonth)
	if total < 0 {
		return -1
	}
	return total
}

func resolveYearRange(s string, now time.Time) (Parsed, bool) {
	m := yearRangeRe.FindStringSubmatch(s)
	if m == nil {
		return Parsed{}, false
	}

	p := Empty()
	p.StartYear = atoi(m[1])

	if m[2] != "" {
		p.Ongoing = true
		p.EndYear = now.Year()
		p.EndMonth = int(now.Month())
	} else {
		p.EndYear = atoi(m[3])
	}

	p.TotalMonths = explicitOrComputedTenure(s, p)
	return p, true
}

// resolveTenure handles tenure-only text with no absolute dates. Start and
// end stay unknown.
func resolveTenure(s string, _ time.Time) (Parsed, bool) {
	if m := yearsMonthsRe.FindStringSubmatch(s); m != nil {
		p := Empty()
		p.TotalMonths = atoi(m[1]) * 12
		if m[2] != "" {
			p.TotalMonths += atoi(m[2])
		}
		return p, true
	}
	if m := monthsOnlyRe.FindStringSubmatch(s); m != nil {
		p := Empty()
		p.TotalMonths = atoi(m[1])
		return p, true
	}
	return Parsed{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
