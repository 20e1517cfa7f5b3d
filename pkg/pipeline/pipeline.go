// Package pipeline runs the full normalization pass: classify a raw
// harvested document, parse its entries, resolve employers and durations,
// aggregate employment, and emit the fixed-shape record. The pass is a pure
// function of the document and the batch timestamp.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmylchreest/prospect/internal/logger"
	"github.com/jmylchreest/prospect/pkg/employment"
	"github.com/jmylchreest/prospect/pkg/entry"
	"github.com/jmylchreest/prospect/pkg/profile"
	"github.com/jmylchreest/prospect/pkg/record"
	"github.com/jmylchreest/prospect/pkg/section"
)

// DefaultMinRawTextLen is the minimum raw-text length (in runes) below which
// a document with no experience, education, or location is considered empty.
const DefaultMinRawTextLen = 200

// Options configures a Pipeline.
type Options struct {
	// MinRawTextLen overrides the empty-document raw-text threshold.
	// Zero means DefaultMinRawTextLen.
	MinRawTextLen int

	// DenyNames lists extra full names treated as placeholders, on top of
	// the built-in set. Matching is case-insensitive.
	DenyNames []string
}

// Option mutates Options.
type Option func(*Options)

// WithMinRawTextLen overrides the empty-document raw-text threshold.
func WithMinRawTextLen(n int) Option {
	return func(o *Options) { o.MinRawTextLen = n }
}

// WithDenyNames adds placeholder names to the built-in deny list.
func WithDenyNames(names ...string) Option {
	return func(o *Options) { o.DenyNames = append(o.DenyNames, names...) }
}

// Pipeline normalizes raw extractions into candidate records.
type Pipeline struct {
	opts Options
}

// New builds a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(&p.opts)
	}
	if p.opts.MinRawTextLen == 0 {
		p.opts.MinRawTextLen = DefaultMinRawTextLen
	}
	return p
}

// Normalize runs the full pass over one document. A nil error with a non-nil
// profile is an accepted record; a *RejectError means the document failed
// the validation gate.
func (p *Pipeline) Normalize(doc *profile.RawExtraction, now time.Time) (*record.Profile, error) {
	if err := profile.Validate(doc); err != nil {
		return nil, &RejectError{Reason: ReasonInvalidDocument, Err: err}
	}

	classified := section.Classify(doc)

	personal := entry.ParsePersonal(classified.Get(profile.CategoryPersonalInfo))
	experiences := entry.ParseExperiences(classified.Get(profile.CategoryExperience), doc.RawText, now)
	education := entry.ParseEducations(classified.Get(profile.CategoryEducation), now)

	contactItems := classified.Get(profile.CategoryContactInfo)
	emails, phones := entry.ParseContacts(contactItems)
	links := entry.ParseLinks(append(contactItems, classified.Get(profile.CategorySocialLinks)...))

	lists := make(map[profile.SectionCategory][]string)
	for _, cat := range listCategories {
		if items := classified.Get(cat); len(items) > 0 {
			lists[cat] = entry.ParseList(items)
		}
	}

	if err := p.validate(doc, personal, experiences, education); err != nil {
		return nil, err
	}

	summary := employment.Aggregate(experiences, now)

	rec, err := record.Build(record.BuildInput{
		Doc:        doc,
		Personal:   personal,
		Experience: experiences,
		Education:  education,
		Lists:      lists,
		Emails:     emails,
		Phones:     phones,
		Links:      links,
		Other:      classified.Other,
		Summary:    summary,
	})
	if err != nil {
		return nil, fmt.Errorf("building record for %s: %w", doc.SourceURL, err)
	}

	logger.Debug("normalized profile",
		"url", doc.SourceURL,
		"experience", rec.ExperienceCount,
		"education", len(rec.Education))
	return rec, nil
}

// listCategories are the categories whose items flatten to string lists.
var listCategories = []profile.SectionCategory{
	profile.CategorySkills,
	profile.CategoryCertifications,
	profile.CategoryLanguages,
	profile.CategoryProjects,
	profile.CategoryPublications,
	profile.CategoryVolunteer,
	profile.CategoryCourses,
	profile.CategoryHonorsAwards,
	profile.CategoryOrganizations,
	profile.CategoryPatents,
	profile.CategoryTestScores,
	profile.CategoryInterests,
}

// BatchResult is the per-document outcome of NormalizeBatch. Exactly one of
// Profile and RejectedReason is set.
type BatchResult struct {
	Index          int             `json:"index"`
	Profile        *record.Profile `json:"profile,omitempty"`
	RejectedReason string          `json:"rejectedReason,omitempty"`
}

// NormalizeBatch normalizes every document independently: a rejection or
// panic in one document never disturbs the others. Results keep input order.
func (p *Pipeline) NormalizeBatch(docs []*profile.RawExtraction, now time.Time) []BatchResult {
	results := make([]BatchResult, len(docs))
	for i, doc := range docs {
		results[i] = p.normalizeOne(i, doc, now)
	}
	return results
}

func (p *Pipeline) normalizeOne(i int, doc *profile.RawExtraction, now time.Time) BatchResult {
	return runGuarded(i, func() (*record.Profile, error) {
		return p.Normalize(doc, now)
	})
}

// runGuarded runs one normalization under a recover so a panic in a single
// document surfaces as a fault result instead of aborting the batch.
func runGuarded(i int, fn func() (*record.Profile, error)) (res BatchResult) {
	res.Index = i
	defer func() {
		if r := recover(); r != nil {
			logger.Error("normalization fault", "index", i, "panic", r)
			res.Profile = nil
			res.RejectedReason = ReasonFault
		}
	}()

	rec, err := fn()
	if err != nil {
		var rej *RejectError
		if errors.As(err, &rej) {
			logger.Info("document rejected", "index", i, "reason", rej.Reason)
			res.RejectedReason = rej.Reason
			return res
		}
		logger.Error("normalization failed", "index", i, "error", err)
		res.RejectedReason = ReasonFault
		return res
	}
	res.Profile = rec
	return res
}
