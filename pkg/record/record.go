// Package record emits the fixed-shape NormalizedProfile: the structured
// JSON view, the flattened legacy numbered-slot view, and the CSV encoding
// consumed by downstream spreadsheet tooling.
package record

import (
	"encoding/json"
	"time"

	"github.com/jmylchreest/prospect/pkg/employment"
	"github.com/jmylchreest/prospect/pkg/entry"
	"github.com/jmylchreest/prospect/pkg/profile"
)

// Education is the serialized education item.
type Education struct {
	School        string `json:"school,omitempty"`
	Degree        string `json:"degree,omitempty"`
	FieldOfStudy  string `json:"fieldOfStudy,omitempty"`
	DateRangeRaw  string `json:"dateRangeRaw,omitempty"`
	UndergradYear int    `json:"undergradYear,omitempty"`
}

// Profile is the normalized candidate record. It is a pure function of one
// RawExtraction and the batch timestamp; recomputing from the same inputs is
// bit-for-bit identical.
type Profile struct {
	SourceURL   string    `json:"sourceUrl"`
	ExtractedAt time.Time `json:"extractedAt"`

	FullName string `json:"fullName,omitempty"`
	Headline string `json:"headline,omitempty"`
	Location string `json:"location,omitempty"`

	CurrentEmployer            *employment.Record  `json:"currentEmployer"`
	PastEmployers              []employment.Record `json:"pastEmployers"`
	EmploymentSummaryByCompany []employment.Record `json:"employmentSummaryByCompany"`
	TotalYearsExperience       *int                `json:"totalYearsExperience"`
	ExperienceCount            int                 `json:"experienceCount"`

	Education []Education `json:"education"`

	Skills         []string `json:"skills,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Projects       []string `json:"projects,omitempty"`
	Publications   []string `json:"publications,omitempty"`
	Volunteer      []string `json:"volunteer,omitempty"`
	Courses        []string `json:"courses,omitempty"`
	HonorsAwards   []string `json:"honorsAwards,omitempty"`
	Organizations  []string `json:"organizations,omitempty"`
	Patents        []string `json:"patents,omitempty"`
	TestScores     []string `json:"testScores,omitempty"`
	Interests      []string `json:"interests,omitempty"`

	Emails      []string `json:"emails,omitempty"`
	Phones      []string `json:"phones,omitempty"`
	SocialLinks []string `json:"socialLinks,omitempty"`

	// OtherSections preserves unclassified sections for audit.
	OtherSections []profile.RawSection `json:"otherSections,omitempty"`

	Legacy LegacyView `json:"legacy"`

	Valid bool `json:"valid"`

	// rawDoc is the original extraction, kept for the CSV audit column.
	rawDoc json.RawMessage
}

// BuildInput carries the fully parsed intermediate state into the
// serializer.
type BuildInput struct {
	Doc        *profile.RawExtraction
	Personal   entry.Personal
	Experience []entry.Experience
	Education  []entry.Education
	Lists      map[profile.SectionCategory][]string
	Emails     []string
	Phones     []string
	Links      []string
	Other      []profile.RawSection
	Summary    employment.Summary
}

// Build assembles the NormalizedProfile from aggregated state.
func Build(in BuildInput) (*Profile, error) {
	rawDoc, err := json.Marshal(in.Doc)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		SourceURL:   in.Doc.SourceURL,
		ExtractedAt: in.Doc.ExtractedAt,
		FullName:    in.Personal.Name,
		Headline:    in.Personal.Headline,
		Location:    in.Personal.Location,

		CurrentEmployer:            in.Summary.Current,
		PastEmployers:              in.Summary.Past,
		EmploymentSummaryByCompany: in.Summary.ByCompany,
		ExperienceCount:            len(in.Experience),

		Skills:         in.Lists[profile.CategorySkills],
		Certifications: in.Lists[profile.CategoryCertifications],
		Languages:      in.Lists[profile.CategoryLanguages],
		Projects:       in.Lists[profile.CategoryProjects],
		Publications:   in.Lists[profile.CategoryPublications],
		Volunteer:      in.Lists[profile.CategoryVolunteer],
		Courses:        in.Lists[profile.CategoryCourses],
		HonorsAwards:   in.Lists[profile.CategoryHonorsAwards],
		Organizations:  in.Lists[profile.CategoryOrganizations],
		Patents:        in.Lists[profile.CategoryPatents],
		TestScores:     in.Lists[profile.CategoryTestScores],
		Interests:      in.Lists[profile.CategoryInterests],

		Emails:      in.Emails,
		Phones:      in.Phones,
		SocialLinks: in.Links,

		OtherSections: in.Other,
		Valid:         true,
		rawDoc:        rawDoc,
	}

	if in.Summary.TotalYears >= 0 {
		years := in.Summary.TotalYears
		p.TotalYearsExperience = &years
	}

	p.Education = make([]Education, 0, len(in.Education))
	for _, ed := range in.Education {
		p.Education = append(p.Education, Education{
			School:        ed.School,
			Degree:        ed.Degree,
			FieldOfStudy:  ed.FieldOfStudy,
			DateRangeRaw:  ed.DateRangeRaw,
			UndergradYear: ed.UndergradYear,
		})
	}

	p.Legacy = buildLegacy(p)
	return p, nil
}

// RawDocument returns the re-serialized original extraction.
func (p *Profile) RawDocument() string {
	return string(p.rawDoc)
}
