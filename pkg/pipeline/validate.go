package pipeline

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/prospect/pkg/entry"
	"github.com/jmylchreest/prospect/pkg/profile"
)

// Rejection reason codes.
const (
	ReasonInvalidDocument = "invalid_document"
	ReasonPlaceholderName = "placeholder_name"
	ReasonEmptyDocument   = "empty_document"
	ReasonFault           = "fault"
)

// RejectError reports that a document failed the validation gate.
type RejectError struct {
	Reason string
	Err    error
}

func (e *RejectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rejected (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("rejected (%s)", e.Reason)
}

func (e *RejectError) Unwrap() error { return e.Err }

// placeholderNames are full names produced by login walls and stub pages
// rather than real profiles. Matching is case-insensitive on the whole name.
var placeholderNames = map[string]bool{
	"linkedin member": true,
	"user agreement":  true,
	"accessibility":   true,
	"privacy policy":  true,
	"cookie policy":   true,
	"sign in":         true,
	"sign up":         true,
}

// placeholderPrefixes catch templated stub names like "Join LinkedIn".
var placeholderPrefixes = []string{"join "}

func (p *Pipeline) isPlaceholderName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	if placeholderNames[n] {
		return true
	}
	for _, prefix := range placeholderPrefixes {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	for _, deny := range p.opts.DenyNames {
		if strings.EqualFold(n, strings.TrimSpace(deny)) {
			return true
		}
	}
	return false
}

// validate gates out stub documents: placeholder names, and documents that
// carry no experience, no education, no location, and too little raw text
// to plausibly be a profile page.
func (p *Pipeline) validate(doc *profile.RawExtraction, personal entry.Personal, experiences []entry.Experience, education []entry.Education) error {
	if p.isPlaceholderName(personal.Name) {
		return &RejectError{Reason: ReasonPlaceholderName, Err: fmt.Errorf("name %q", personal.Name)}
	}
	if len(experiences) == 0 && len(education) == 0 && personal.Location == "" &&
		len([]rune(doc.RawText)) < p.opts.MinRawTextLen {
		return &RejectError{Reason: ReasonEmptyDocument}
	}
	return nil
}
