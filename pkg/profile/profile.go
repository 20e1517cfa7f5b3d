// Package profile defines the raw harvest contract consumed by the
// normalization pipeline. A RawExtraction is produced once per harvest
// event and never mutated; everything downstream is a pure function of it.
package profile

import (
	"time"
)

// SectionCategory identifies what kind of content a harvested section holds.
type SectionCategory string

const (
	CategoryPersonalInfo    SectionCategory = "personal_info"
	CategoryExperience      SectionCategory = "experience"
	CategoryEducation       SectionCategory = "education"
	CategorySkills          SectionCategory = "skills"
	CategoryCertifications  SectionCategory = "certifications"
	CategoryLanguages       SectionCategory = "languages"
	CategoryProjects        SectionCategory = "projects"
	CategoryPublications    SectionCategory = "publications"
	CategoryVolunteer       SectionCategory = "volunteer"
	CategoryCourses         SectionCategory = "courses"
	CategoryHonorsAwards    SectionCategory = "honors_awards"
	CategoryOrganizations   SectionCategory = "organizations"
	CategoryPatents         SectionCategory = "patents"
	CategoryTestScores      SectionCategory = "test_scores"
	CategoryRecommendations SectionCategory = "recommendations"
	CategoryInterests       SectionCategory = "interests"
	CategoryContactInfo     SectionCategory = "contact_info"
	CategorySocialLinks     SectionCategory = "social_links"

	// CategoryOther holds sections whose heading matched no known
	// vocabulary. They are preserved for audit but never parsed.
	CategoryOther SectionCategory = "other"
)

// Categories lists every known category except Other, in a stable order.
var Categories = []SectionCategory{
	CategoryPersonalInfo,
	CategoryExperience,
	CategoryEducation,
	CategorySkills,
	CategoryCertifications,
	CategoryLanguages,
	CategoryProjects,
	CategoryPublications,
	CategoryVolunteer,
	CategoryCourses,
	CategoryHonorsAwards,
	CategoryOrganizations,
	CategoryPatents,
	CategoryTestScores,
	CategoryRecommendations,
	CategoryInterests,
	CategoryContactInfo,
	CategorySocialLinks,
}

// Known reports whether c is a member of the closed category enumeration.
func (c SectionCategory) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// RawItem is one harvested entry within a section. Only minimal structural
// hints survive harvesting; no rendering markup is retained.
type RawItem struct {
	Text       string            `json:"text"`
	Tag        string            `json:"tag,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Attr returns a structural hint by key, or "" when absent.
func (it RawItem) Attr(key string) string {
	if it.Attributes == nil {
		return ""
	}
	return it.Attributes[key]
}

// RawSection is one region of the harvested page.
type RawSection struct {
	Category SectionCategory `json:"category"`
	Heading  string          `json:"heading,omitempty"`
	Items    []RawItem       `json:"items"`
}

// RawExtraction is the harvester's output contract: one semi-structured
// snapshot of a professional-profile page.
//
// Two producer variants exist. The categorized form carries Sections; the
// legacy form carries flat per-category string arrays instead. The legacy
// arrays are accepted transparently via EffectiveSections.
type RawExtraction struct {
	SourceURL   string       `json:"sourceUrl" validate:"required,url"`
	ExtractedAt time.Time    `json:"extractedAt" validate:"required"`
	Sections    []RawSection `json:"sections,omitempty"`
	RawText     string       `json:"rawText,omitempty"`

	// Legacy flat arrays (older harvester builds).
	Experience     []string `json:"experience,omitempty"`
	Education      []string `json:"education,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Projects       []string `json:"projects,omitempty"`
	Publications   []string `json:"publications,omitempty"`
	Volunteer      []string `json:"volunteer,omitempty"`
	Courses        []string `json:"courses,omitempty"`
	HonorsAwards   []string `json:"honorsAwards,omitempty"`
	Organizations  []string `json:"organizations,omitempty"`
}

// EffectiveSections returns the categorized sections, synthesizing them from
// the legacy flat arrays when the categorized form is absent. The receiver is
// never modified.
func (d *RawExtraction) EffectiveSections() []RawSection {
	if len(d.Sections) > 0 {
		return d.Sections
	}

	legacy := []struct {
		category SectionCategory
		values   []string
	}{
		{CategoryExperience, d.Experience},
		{CategoryEducation, d.Education},
		{CategorySkills, d.Skills},
		{CategoryCertifications, d.Certifications},
		{CategoryLanguages, d.Languages},
		{CategoryProjects, d.Projects},
		{CategoryPublications, d.Publications},
		{CategoryVolunteer, d.Volunteer},
		{CategoryCourses, d.Courses},
		{CategoryHonorsAwards, d.HonorsAwards},
		{CategoryOrganizations, d.Organizations},
	}

	var sections []RawSection
	for _, l := range legacy {
		if len(l.values) == 0 {
			continue
		}
		items := make([]RawItem, 0, len(l.values))
		for _, v := range l.values {
			items = append(items, RawItem{Text: v})
		}
		sections = append(sections, RawSection{Category: l.category, Items: items})
	}
	return sections
}
