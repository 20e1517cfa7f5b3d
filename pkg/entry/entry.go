// Package entry extracts typed entities from raw section items. Structural
// hints from the harvester are honored when present; otherwise positional
// heuristics over the item's flattened text decide which line is which.
// An item that yields no title, no company candidate, and no sufficiently
// long text is silently dropped rather than treated as an error.
package entry

import (
	"regexp"
	"strings"
	"time"

	"github.com/jmylchreest/prospect/pkg/company"
	"github.com/jmylchreest/prospect/pkg/duration"
	"github.com/jmylchreest/prospect/pkg/profile"
)

// minKeepTextLen is the "sufficiently long raw text" threshold below which
// an item with no title and no company candidate contributes nothing.
const minKeepTextLen = 40

// Experience is one parsed employment stint.
type Experience struct {
	Title             string
	CompanyCandidates []string
	DurationRaw       string
	Description       string
	Location          string
	EmploymentType    string

	// Resolved fields.
	Duration             duration.Parsed
	Company              string
	CompanyLowConfidence bool
}

// HasCompany reports whether an employer name was resolved.
func (e Experience) HasCompany() bool { return e.Company != "" }

// Education is one parsed education item.
type Education struct {
	School        string
	Degree        string
	FieldOfStudy  string
	DateRangeRaw  string
	UndergradYear int
}

var (
	durationLineRe = regexp.MustCompile(`(?i)(\b\d{4}\s*[-–—]|\bpresent\b|\bcurrent\b|\b\d+\s*(?:yrs?|mos?|years?|months?)\b)`)
	locationLineRe = regexp.MustCompile(`(?i)^[^·]+,\s*[^·]+$|\bremote\b|\bhybrid\b|\barea\b`)
	bachelorRe     = regexp.MustCompile(`(?i)\b(bachelor|b\.?\s?s\.?c?|b\.?\s?a\.?|b\.?eng|b\.?tech)\b`)
	yearRe         = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// ParseExperience extracts one Experience from a raw item. ok=false means
// the item carried too little signal and is dropped.
func ParseExperience(item profile.RawItem, rawText string, now time.Time) (Experience, bool) {
	e := Experience{}

	// Structural hints win over positional heuristics when present.
	e.Title = item.Attr("title")
	if c := item.Attr("company"); c != "" {
		e.CompanyCandidates = append(e.CompanyCandidates, c)
	}
	e.DurationRaw = item.Attr("duration")
	e.Location = item.Attr("location")
	e.Description = item.Attr("description")

	lines := splitLines(item.Text)
	var descLines []string
	for i, line := range lines {
		switch {
		case e.Title == "" && i == 0:
			e.Title = line
		case len(e.CompanyCandidates) == 0 && i <= 2 && !durationLineRe.MatchString(line):
			e.CompanyCandidates = append(e.CompanyCandidates, line)
		case e.DurationRaw == "" && durationLineRe.MatchString(line):
			e.DurationRaw = line
		case e.Location == "" && locationLineRe.MatchString(line) && len(line) <= 80:
			e.Location = line
		default:
			descLines = append(descLines, line)
		}
	}
	if e.Description == "" {
		e.Description = strings.Join(descLines, "\n")
	}
	// Later positional lines are weaker company evidence but still feed the
	// resolver's info-line heuristic.
	e.CompanyCandidates = append(e.CompanyCandidates, descLines...)

	if e.Title == "" && len(e.CompanyCandidates) == 0 && len(strings.TrimSpace(item.Text)) < minKeepTextLen {
		return Experience{}, false
	}

	e.EmploymentType = firstEmploymentType(e.CompanyCandidates, e.DurationRaw)
	e.Duration = duration.Resolve(e.DurationRaw, now)

	if res, ok := company.Resolve(company.Entry{
		Title:       e.Title,
		Candidates:  e.CompanyCandidates,
		Description: e.Description,
		Location:    e.Location,
	}, rawText); ok {
		e.Company = res.Name
		e.CompanyLowConfidence = res.LowConfidence
	}

	return e, true
}

// ParseExperiences parses every item of an experience section, dropping
// items that contribute nothing.
func ParseExperiences(items []profile.RawItem, rawText string, now time.Time) []Experience {
	out := make([]Experience, 0, len(items))
	for _, item := range items {
		if e, ok := ParseExperience(item, rawText, now); ok {
			out = append(out, e)
		}
	}
	return out
}

// ParseEducation extracts one Education from a raw item.
func ParseEducation(item profile.RawItem, now time.Time) (Education, bool) {
	ed := Education{
		School:       item.Attr("school"),
		Degree:       item.Attr("degree"),
		FieldOfStudy: item.Attr("field"),
		DateRangeRaw: item.Attr("dates"),
	}

	lines := splitLines(item.Text)
	for i, line := range lines {
		switch {
		case ed.School == "" && i == 0:
			ed.School = line
		case ed.DateRangeRaw == "" && durationLineRe.MatchString(line) && yearRe.MatchString(line):
			ed.DateRangeRaw = line
		case ed.Degree == "":
			ed.Degree, ed.FieldOfStudy = splitDegreeLine(line)
		}
	}

	if ed.School == "" && ed.Degree == "" {
		return Education{}, false
	}

	// The undergraduate year is the end year of a bachelor-level range.
	if bachelorRe.MatchString(ed.Degree) && ed.DateRangeRaw != "" {
		d := duration.Resolve(ed.DateRangeRaw, now)
		if d.HasEnd() && !d.Ongoing {
			ed.UndergradYear = d.EndYear
		}
	}

	return ed, true
}

// ParseEducations parses every item of an education section.
func ParseEducations(items []profile.RawItem, now time.Time) []Education {
	out := make([]Education, 0, len(items))
	for _, item := range items {
		if ed, ok := ParseEducation(item, now); ok {
			out = append(out, ed)
		}
	}
	return out
}

// ParseList flattens simple list sections (skills, certifications, ...) to
// deduplicated strings. Only each item's first line is kept; endorsement
// counts and similar trailers are noise.
func ParseList(items []profile.RawItem) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		lines := splitLines(item.Text)
		if len(lines) == 0 {
			continue
		}
		v := lines[0]
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// splitDegreeLine splits "Degree, Field" or "Degree · Field" lines.
func splitDegreeLine(line string) (degree, field string) {
	for _, sep := range []string{"·", ","} {
		if i := strings.Index(line, sep); i >= 0 {
			return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+len(sep):])
		}
	}
	return strings.TrimSpace(line), ""
}

func firstEmploymentType(candidates []string, durationRaw string) string {
	for _, c := range candidates {
		if t := company.EmploymentType(c); t != "" {
			return t
		}
	}
	return company.EmploymentType(durationRaw)
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
