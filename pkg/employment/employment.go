// Package employment groups parsed experience entries by resolved company,
// merges multi-stint tenure, and elects the single current employer.
package employment

import (
	"sort"
	"strings"
	"time"

	"github.com/jmylchreest/prospect/pkg/company"
	"github.com/jmylchreest/prospect/pkg/entry"
)

// YearMonth is a month-precision point in time. Month is 1-12, 0 unknown.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
}

// before orders YearMonths; unknown months sort as January.
func (ym YearMonth) before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return monthOrJan(ym.Month) < monthOrJan(other.Month)
}

func monthOrJan(m int) int {
	if m == 0 {
		return 1
	}
	return m
}

// Record is the per-company aggregation of one or more stints. At most one
// Record in a Summary has IsCurrent set.
type Record struct {
	Company     string     `json:"company"`
	Titles      []string   `json:"titles"`
	FirstStart  *YearMonth `json:"firstStart"`
	LastEnd     *YearMonth `json:"lastEnd"`
	TotalMonths int        `json:"totalMonths"`
	IsCurrent   bool       `json:"isCurrent"`
}

// Summary is the aggregated employment view of a profile. TotalYears is -1
// when no entry qualified for the total-experience arithmetic.
type Summary struct {
	Current    *Record
	Past       []Record
	ByCompany  []Record
	TotalYears int
}

// electionRule decides whether an entry looks current. Rules are tried in
// priority order, each scanning entries in source order; the first hit wins.
type electionRule func(e entry.Experience, now time.Time) bool

var electionRules = []electionRule{
	// 1. Explicitly flagged ongoing by the duration resolver.
	func(e entry.Experience, _ time.Time) bool {
		return e.Duration.Ongoing
	},
	// 2. Duration text still contains an ongoing marker the resolver missed.
	func(e entry.Experience, _ time.Time) bool {
		low := strings.ToLower(e.DurationRaw)
		return strings.Contains(low, "present") || strings.Contains(low, "current")
	},
	// 3. Resolved end year at or beyond the current year (forward-dated or
	// unresolved "ongoing" text).
	func(e entry.Experience, now time.Time) bool {
		return e.Duration.HasEnd() && e.Duration.EndYear >= now.Year()
	},
}

// electCurrent returns the index of the elected current entry, or -1.
// Only entries with a resolved company are electable: a current employer
// without a name is useless downstream.
func electCurrent(entries []entry.Experience, now time.Time) int {
	for _, rule := range electionRules {
		for i, e := range entries {
			if !e.HasCompany() {
				continue
			}
			if rule(e, now) {
				return i
			}
		}
	}
	return -1
}

// Aggregate builds the employment summary. Entries arrive in source order,
// which is reverse-chronological as harvested. now anchors the current-year
// election rule and must be the same now given to the duration resolver.
func Aggregate(entries []entry.Experience, now time.Time) Summary {
	currentIdx := electCurrent(entries, now)

	type group struct {
		record Record
		order  int
	}
	groups := make(map[string]*group)
	var keys []string

	for i, e := range entries {
		if !e.HasCompany() {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(e.Company))
		g, ok := groups[key]
		if !ok {
			g = &group{record: Record{Company: strings.TrimSpace(e.Company)}, order: len(keys)}
			groups[key] = g
			keys = append(keys, key)
		}

		if e.Title != "" && !containsFold(g.record.Titles, e.Title) {
			g.record.Titles = append(g.record.Titles, e.Title)
		}
		if e.Duration.HasTotal() {
			g.record.TotalMonths += e.Duration.TotalMonths
		}
		if e.Duration.HasStart() {
			start := YearMonth{Year: e.Duration.StartYear, Month: e.Duration.StartMonth}
			if g.record.FirstStart == nil || start.before(*g.record.FirstStart) {
				g.record.FirstStart = &start
			}
		}
		if e.Duration.HasEnd() {
			end := YearMonth{Year: e.Duration.EndYear, Month: e.Duration.EndMonth}
			if g.record.LastEnd == nil || g.record.LastEnd.before(end) {
				g.record.LastEnd = &end
			}
		}
		if i == currentIdx {
			g.record.IsCurrent = true
		}
	}

	s := Summary{TotalYears: totalYears(entries)}

	// The current-employer record reflects the elected stint itself; the
	// by-company summary merges every stint at that company.
	if currentIdx >= 0 {
		s.Current = stintRecord(entries[currentIdx])
	}

	for _, key := range keys {
		rec := groups[key].record
		s.ByCompany = append(s.ByCompany, rec)
		if !rec.IsCurrent {
			s.Past = append(s.Past, rec)
		}
	}

	// Past employers are ordered by end date descending; records without an
	// end date keep their (reverse-chronological) source order at the back.
	sort.SliceStable(s.Past, func(i, j int) bool {
		a, b := s.Past[i].LastEnd, s.Past[j].LastEnd
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return b.before(*a)
		}
	})

	return s
}

// stintRecord builds a Record from a single experience entry.
func stintRecord(e entry.Experience) *Record {
	rec := &Record{Company: strings.TrimSpace(e.Company), IsCurrent: true}
	if e.Title != "" {
		rec.Titles = []string{e.Title}
	}
	if e.Duration.HasStart() {
		rec.FirstStart = &YearMonth{Year: e.Duration.StartYear, Month: e.Duration.StartMonth}
	}
	if e.Duration.HasEnd() {
		rec.LastEnd = &YearMonth{Year: e.Duration.EndYear, Month: e.Duration.EndMonth}
	}
	if e.Duration.HasTotal() {
		rec.TotalMonths = e.Duration.TotalMonths
	}
	return rec
}

// totalYears sums qualifying tenure and floors to years. Part-time,
// contract, and internship stints are excluded, as are entries whose company
// failed resolution. Returns -1 when nothing qualifies.
func totalYears(entries []entry.Experience) int {
	months := 0
	qualified := false
	for _, e := range entries {
		if !e.HasCompany() {
			continue
		}
		if !company.QualifiesForTenure(e.EmploymentType) {
			continue
		}
		qualified = true
		if e.Duration.HasTotal() {
			months += e.Duration.TotalMonths
		}
	}
	if !qualified {
		return -1
	}
	return months / 12
}

func containsFold(list []string, v string) bool {
	for _, have := range list {
		if strings.EqualFold(have, v) {
			return true
		}
	}
	return false
}
