// Package section locates entity-bearing regions of a raw harvested
// document. Classification is by case-insensitive substring match of a
// section's heading against a fixed per-category vocabulary; unrecognized
// sections are preserved under an Other bucket for audit and never parsed.
package section

import (
	"strings"

	"github.com/jmylchreest/prospect/pkg/profile"
)

// vocabulary maps each category to the heading phrases that identify it.
// Matching is case-insensitive substring containment, longest-first within a
// category is unnecessary since any hit decides it.
var vocabulary = map[profile.SectionCategory][]string{
	profile.CategoryPersonalInfo:    {"about", "summary", "profile overview"},
	profile.CategoryExperience:      {"experience", "work experience", "employment", "professional experience"},
	profile.CategoryEducation:       {"education", "academic background"},
	profile.CategorySkills:          {"skills", "expertise", "endorsements"},
	profile.CategoryCertifications:  {"certification", "licenses & certifications", "licenses"},
	profile.CategoryLanguages:       {"languages"},
	profile.CategoryProjects:        {"projects"},
	profile.CategoryPublications:    {"publications"},
	profile.CategoryVolunteer:       {"volunteer", "volunteering"},
	profile.CategoryCourses:         {"courses", "coursework"},
	profile.CategoryHonorsAwards:    {"honors", "awards", "honors & awards"},
	profile.CategoryOrganizations:   {"organizations", "memberships"},
	profile.CategoryPatents:         {"patents"},
	profile.CategoryTestScores:      {"test scores"},
	profile.CategoryRecommendations: {"recommendations"},
	profile.CategoryInterests:       {"interests"},
	profile.CategoryContactInfo:     {"contact info", "contact information"},
	profile.CategorySocialLinks:     {"social links", "websites", "on the web"},
}

// classifyOrder fixes the order headings are tried in, so that overlapping
// vocabularies ("experience" vs "volunteer experience") resolve
// deterministically: more specific categories come first.
var classifyOrder = []profile.SectionCategory{
	profile.CategoryVolunteer,
	profile.CategoryContactInfo,
	profile.CategorySocialLinks,
	profile.CategoryTestScores,
	profile.CategoryHonorsAwards,
	profile.CategoryCertifications,
	profile.CategoryExperience,
	profile.CategoryEducation,
	profile.CategorySkills,
	profile.CategoryLanguages,
	profile.CategoryProjects,
	profile.CategoryPublications,
	profile.CategoryCourses,
	profile.CategoryOrganizations,
	profile.CategoryPatents,
	profile.CategoryRecommendations,
	profile.CategoryInterests,
	profile.CategoryPersonalInfo,
}

// MatchHeading classifies a heading string. ok=false means the heading
// matched no known vocabulary.
func MatchHeading(heading string) (profile.SectionCategory, bool) {
	h := strings.ToLower(strings.TrimSpace(heading))
	if h == "" {
		return "", false
	}
	for _, cat := range classifyOrder {
		for _, phrase := range vocabulary[cat] {
			if strings.Contains(h, phrase) {
				return cat, true
			}
		}
	}
	return "", false
}

// Classified is the sliced view of a document: per-category item lists ready
// for the entry parser, plus the preserved Other bucket.
type Classified struct {
	Items map[profile.SectionCategory][]profile.RawItem

	// Other holds sections with unrecognized headings, preserved verbatim
	// for audit and debugging. They are not parsed.
	Other []profile.RawSection

	// TextSignals marks categories whose vocabulary appeared only in the
	// surrounding raw text. This is a weaker fallback signal; it never
	// fabricates a section or any items.
	TextSignals map[profile.SectionCategory]bool
}

// Get returns the item list for a category (possibly nil).
func (c Classified) Get(cat profile.SectionCategory) []profile.RawItem {
	return c.Items[cat]
}

// Classify walks the document's sections (accepting the legacy flat-array
// variant transparently) and slices them into per-category item lists.
func Classify(doc *profile.RawExtraction) Classified {
	out := Classified{
		Items:       make(map[profile.SectionCategory][]profile.RawItem),
		TextSignals: make(map[profile.SectionCategory]bool),
	}

	for _, sec := range doc.EffectiveSections() {
		cat, ok := MatchHeading(sec.Heading)
		if !ok {
			// No usable heading: a known producer-assigned category is
			// trusted, anything else lands in Other.
			if sec.Heading == "" && sec.Category.Known() {
				cat = sec.Category
			} else {
				out.Other = append(out.Other, sec)
				continue
			}
		}
		out.Items[cat] = append(out.Items[cat], sec.Items...)
	}

	// Raw-text fallback: note vocabulary hits for categories that produced
	// no section at all.
	raw := strings.ToLower(doc.RawText)
	if raw != "" {
		for _, cat := range classifyOrder {
			if len(out.Items[cat]) > 0 {
				continue
			}
			for _, phrase := range vocabulary[cat] {
				if strings.Contains(raw, phrase) {
					out.TextSignals[cat] = true
					break
				}
			}
		}
	}

	return out
}
