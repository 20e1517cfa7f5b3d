package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmylchreest/prospect/internal/logger"
	"github.com/jmylchreest/prospect/pkg/duration"
	"github.com/jmylchreest/prospect/pkg/record"
)

const systemPrompt = `You are a recruiting assistant. Given structured facts
about a candidate, write a short factual summary (3-5 sentences) for a
recruiter. Only use the facts given; never invent employers, dates, or
credentials. Plain prose, no headings or bullet points.`

// Summarizer writes candidate summaries, trying providers in order until
// one succeeds.
type Summarizer struct {
	providers []Provider
}

// NewSummarizer builds a Summarizer over an ordered provider chain.
func NewSummarizer(providers ...Provider) *Summarizer {
	return &Summarizer{providers: providers}
}

// Summarize produces a narrative for one normalized profile.
func (s *Summarizer) Summarize(ctx context.Context, p *record.Profile) (string, error) {
	if len(s.providers) == 0 {
		return "", fmt.Errorf("no providers configured")
	}

	req := CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: Prompt(p)},
		},
		Temperature: 0.3,
	}

	var lastErr error
	for _, provider := range s.providers {
		resp, err := provider.Complete(ctx, req)
		if err != nil {
			logger.Warn("summary provider failed, trying next",
				"provider", provider.Name(), "error", err)
			lastErr = err
			continue
		}
		logger.Debug("summary generated",
			"provider", provider.Name(),
			"model", resp.Model,
			"output_tokens", resp.Usage.OutputTokens)
		return strings.TrimSpace(resp.Content), nil
	}
	return "", fmt.Errorf("all summary providers failed: %w", lastErr)
}

// Prompt renders the candidate facts the model is allowed to use.
func Prompt(p *record.Profile) string {
	var b strings.Builder

	write := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	write("Name", p.FullName)
	write("Headline", p.Headline)
	write("Location", p.Location)

	if cur := p.CurrentEmployer; cur != nil {
		write("Current employer", cur.Company)
		write("Current titles", strings.Join(cur.Titles, ", "))
		if cur.TotalMonths >= 0 {
			write("Current tenure", fmt.Sprintf("%d years (%d months)",
				duration.YearsRounded(cur.TotalMonths), cur.TotalMonths))
		}
	}

	for _, past := range p.PastEmployers {
		line := past.Company
		if len(past.Titles) > 0 {
			line += " as " + strings.Join(past.Titles, ", ")
		}
		write("Past employer", line)
	}

	if p.TotalYearsExperience != nil {
		write("Total experience", fmt.Sprintf("%d years", *p.TotalYearsExperience))
	}

	for _, ed := range p.Education {
		parts := []string{ed.School}
		if ed.Degree != "" {
			parts = append(parts, ed.Degree)
		}
		if ed.FieldOfStudy != "" {
			parts = append(parts, ed.FieldOfStudy)
		}
		write("Education", strings.Join(parts, ", "))
	}

	if len(p.Skills) > 0 {
		limit := len(p.Skills)
		if limit > 15 {
			limit = 15
		}
		write("Skills", strings.Join(p.Skills[:limit], ", "))
	}

	return b.String()
}
