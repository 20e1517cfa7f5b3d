// Package company disambiguates a true employer name from the noisy
// candidate strings a harvested experience item yields. Each heuristic is a
// named function with a documented precedence position; Resolve selects the
// first that produces a valid name.
package company

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Entry carries the fields of one experience item that the resolver may
// inspect. Candidates are ordered most-to-least reliable: the first is the
// primary company field, any others are secondary "info" lines.
type Entry struct {
	Title       string
	Candidates  []string
	Description string
	Location    string
}

// Resolution is a resolved employer name. LowConfidence marks names produced
// by the location-segment fallback, which is known to false-positive on
// capitalized multi-word prefixes; consumers should treat those accordingly
// rather than have the value silently corrected.
type Resolution struct {
	Name          string
	LowConfidence bool
}

// heuristic is one resolution attempt. ok=false means "nothing found here",
// never an error.
type heuristic func(e Entry, rawText string) (Resolution, bool)

// heuristics in precedence order:
//  1. primary candidate, stripped of employment-type suffix and parentheticals
//  2. secondary info lines, leading capitalized phrase before a separator
//  3. description text, capitalized phrase adjacent to a duration or
//     employment-type marker
//  4. full raw text, title followed by a company-like phrase and an
//     employment-type marker
//  5. location string, first comma segment that is not a known geographic
//     token (low confidence)
var heuristics = []heuristic{
	fromPrimary,
	fromInfo,
	fromDescription,
	fromRawText,
	fromLocation,
}

// Resolve runs the heuristic chain and post-processes the winner. ok=false
// means no candidate passed validation.
func Resolve(e Entry, rawText string) (Resolution, bool) {
	for _, h := range heuristics {
		res, ok := h(e, rawText)
		if !ok {
			continue
		}
		res.Name = stripTitlePrefix(res.Name, e.Title)
		if !IsValidName(res.Name) {
			continue
		}
		return res, true
	}
	return Resolution{}, false
}

// EmploymentType extracts a normalized employment-type token ("Full-time",
// "Internship", ...) from s, or "" when none is present.
func EmploymentType(s string) string {
	m := employmentTypeRe.FindString(s)
	if m == "" {
		return ""
	}
	m = strings.ToLower(strings.ReplaceAll(m, " ", "-"))
	if m == "intern" {
		m = "internship"
	}
	return strings.ToUpper(m[:1]) + m[1:]
}

// nonQualifying lists employment types excluded from total-experience
// arithmetic.
var nonQualifying = map[string]bool{
	"part-time":  true,
	"contract":   true,
	"contractor": true,
	"internship": true,
}

// QualifiesForTenure reports whether an employment type counts toward
// totalYearsExperience. An empty type qualifies.
func QualifiesForTenure(employmentType string) bool {
	return !nonQualifying[strings.ToLower(employmentType)]
}

const maxNameLen = 100

var (
	employmentTypeRe  = regexp.MustCompile(`(?i)\b(full[- ]time|part[- ]time|contract(?:or)?|internship|intern|freelance|self[- ]employed|temporary|apprenticeship|seasonal)\b`)
	tenureOnlyRe      = regexp.MustCompile(`(?i)^\d+\s*(yrs?|years?|mos?|months?)(\s+\d+\s*(yrs?|years?|mos?|months?))?$`)
	separatorSuffixRe = regexp.MustCompile(`\s*·.*$`)
	parentheticalRe   = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

	// Leading capitalized phrase before a separator or funding-note marker
	// ("Quantum Labs · Series B", "Acme (backed by ...)").
	leadingPhraseRe = regexp.MustCompile(`^([A-Z][\w&.'-]*(?:\s+[A-Z&][\w&.'-]*)*)\s*(?:·|\(|\bSeries\b|\bbacked by\b)`)

	// Capitalized phrase in free text next to a duration or employment-type
	// marker ("... at Quantum Labs · Full-time ...").
	descriptionPhraseRe = regexp.MustCompile(`([A-Z][\w&.'-]*(?:\s+[A-Z&][\w&.'-]*)*)\s*(?:·|,)?\s*(?i:full[- ]time|part[- ]time|contract|internship|freelance|self[- ]employed|\d+\s*(?:yrs?|mos?))`)
)

// standaloneTokens are strings that can never be an employer on their own.
var standaloneTokens = map[string]bool{
	"full-time": true, "full time": true,
	"part-time": true, "part time": true,
	"contract": true, "contractor": true,
	"internship": true, "intern": true,
	"freelance": true, "self-employed": true,
	"temporary": true, "apprenticeship": true, "seasonal": true,
	"present": true, "current": true, "remote": true,
}

// geoTokens is the closed list of geographic markers used to reject bare
// location strings and to gate the location fallback.
var geoTokens = map[string]bool{
	"united states": true, "united kingdom": true, "canada": true,
	"australia": true, "india": true, "germany": true, "france": true,
	"netherlands": true, "singapore": true, "ireland": true, "spain": true,
	"brazil": true, "mexico": true, "japan": true, "china": true,
	"switzerland": true, "sweden": true, "israel": true, "poland": true,
	"california": true, "new york": true, "texas": true, "washington": true,
	"massachusetts": true, "illinois": true, "colorado": true,
	"georgia": true, "florida": true, "oregon": true, "virginia": true,
	"greater": true, "area": true, "region": true, "metropolitan": true,
	"remote": true,
}

// IsValidName reports whether s is plausible as an employer name. It rejects
// empty or over-long strings, bare employment-type tokens, pure tenure text,
// and recognizable bare location strings.
func IsValidName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxNameLen {
		return false
	}
	if standaloneTokens[strings.ToLower(s)] {
		return false
	}
	if tenureOnlyRe.MatchString(s) {
		return false
	}
	if isBareLocation(s) {
		return false
	}
	return true
}

// isBareLocation matches "City, State" / "City, State, Country" strings with
// no other content: two or three short comma segments with a known
// geographic token among them.
func isBareLocation(s string) bool {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return false
	}
	hasGeo := false
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || len(strings.Fields(part)) > 4 {
			return false
		}
		if containsGeoToken(part) {
			hasGeo = true
		}
	}
	return hasGeo
}

func containsGeoToken(s string) bool {
	low := strings.ToLower(strings.TrimSpace(s))
	if geoTokens[low] {
		return true
	}
	for _, w := range strings.Fields(low) {
		if geoTokens[w] {
			return true
		}
	}
	return false
}

// fromPrimary cleans the primary candidate field: a trailing
// "· <EmploymentType>" suffix and trailing parenthetical notes are stripped
// before validation.
func fromPrimary(e Entry, _ string) (Resolution, bool) {
	if len(e.Candidates) == 0 {
		return Resolution{}, false
	}
	name := strings.TrimSpace(e.Candidates[0])
	name = separatorSuffixRe.ReplaceAllString(name, "")
	name = parentheticalRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if !IsValidName(name) {
		return Resolution{}, false
	}
	return Resolution{Name: name}, true
}

// fromInfo pattern-matches secondary info lines for a leading capitalized
// phrase before a separator.
func fromInfo(e Entry, _ string) (Resolution, bool) {
	if len(e.Candidates) < 2 {
		return Resolution{}, false
	}
	for _, info := range e.Candidates[1:] {
		info = strings.TrimSpace(info)
		if m := leadingPhraseRe.FindStringSubmatch(info); m != nil {
			name := strings.TrimSpace(m[1])
			if IsValidName(name) {
				return Resolution{Name: name}, true
			}
		}
	}
	return Resolution{}, false
}

// fromDescription searches the free-text description for a capitalized
// phrase adjacent to a duration or employment-type marker.
func fromDescription(e Entry, _ string) (Resolution, bool) {
	desc := strings.TrimSpace(e.Description)
	if desc == "" {
		return Resolution{}, false
	}
	if m := descriptionPhraseRe.FindStringSubmatch(desc); m != nil {
		name := strings.TrimSpace(m[1])
		if IsValidName(name) {
			return Resolution{Name: name}, true
		}
	}
	return Resolution{}, false
}

// fromRawText handles title/company adjacency in flattened page text: the
// entry's own title, then a company-like phrase, then an employment-type
// marker.
func fromRawText(e Entry, rawText string) (Resolution, bool) {
	title := strings.TrimSpace(e.Title)
	if title == "" || rawText == "" {
		return Resolution{}, false
	}
	re, err := regexp.Compile(regexp.QuoteMeta(title) + `\s*[·,]?\s*([A-Z][\w&.'-]*(?:\s+[A-Z&][\w&.'-]*)*)\s*[·,]?\s*(?i:full[- ]time|part[- ]time|contract|internship|freelance|self[- ]employed)`)
	if err != nil {
		return Resolution{}, false
	}
	if m := re.FindStringSubmatch(rawText); m != nil {
		name := strings.TrimSpace(m[1])
		if IsValidName(name) {
			return Resolution{Name: name}, true
		}
	}
	return Resolution{}, false
}

// fromLocation is the absolute fallback: the first comma segment of the
// location string, accepted only when it is not a known geographic token.
// Results are flagged low-confidence.
func fromLocation(e Entry, _ string) (Resolution, bool) {
	loc := strings.TrimSpace(e.Location)
	if loc == "" {
		return Resolution{}, false
	}
	first := strings.TrimSpace(strings.Split(loc, ",")[0])
	if first == "" || containsGeoToken(first) {
		return Resolution{}, false
	}
	if !IsValidName(first) {
		return Resolution{}, false
	}
	return Resolution{Name: first, LowConfidence: true}, true
}

// stripTitlePrefix removes the entry's own title from the front of a
// resolved name. The title may appear twice consecutively, a known
// source-formatting defect.
func stripTitlePrefix(name, title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return name
	}
	for strings.HasPrefix(name, title) {
		name = strings.TrimSpace(strings.TrimPrefix(name, title))
	}
	return name
}
