package entry

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/prospect/pkg/profile"
)

// Personal holds the identity fields of a profile.
type Personal struct {
	Name     string
	Headline string
	Location string
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	urlRe   = regexp.MustCompile(`https?://[^\s"']+`)
)

// ParsePersonal extracts name, headline and location from the personal-info
// section. Positionally the first item (or line) is the name, the second the
// headline, and a location-looking line the location. Structural hints win.
func ParsePersonal(items []profile.RawItem) Personal {
	p := Personal{}
	for _, item := range items {
		if p.Name == "" {
			p.Name = item.Attr("name")
		}
		if p.Headline == "" {
			p.Headline = item.Attr("headline")
		}
		if p.Location == "" {
			p.Location = item.Attr("location")
		}

		for _, line := range splitLines(item.Text) {
			switch {
			case p.Name == "":
				p.Name = line
			case p.Location == "" && locationLineRe.MatchString(line) && len(line) <= 80:
				p.Location = line
			case p.Headline == "":
				p.Headline = line
			}
		}
	}
	return p
}

// ParseContacts extracts email addresses and phone numbers from contact-info
// items.
func ParseContacts(items []profile.RawItem) (emails, phones []string) {
	for _, item := range items {
		emails = appendUnique(emails, emailRe.FindAllString(item.Text, -1)...)
		for _, m := range phoneRe.FindAllString(item.Text, -1) {
			phones = appendUnique(phones, strings.TrimSpace(m))
		}
	}
	return emails, phones
}

// ParseLinks extracts URLs from social-link items, falling back to the raw
// item text when it already is a bare link.
func ParseLinks(items []profile.RawItem) []string {
	var links []string
	for _, item := range items {
		if found := urlRe.FindAllString(item.Text, -1); len(found) > 0 {
			links = appendUnique(links, found...)
			continue
		}
		if href := item.Attr("href"); href != "" {
			links = appendUnique(links, href)
		}
	}
	return links
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		dup := false
		for _, have := range dst {
			if strings.EqualFold(have, v) {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}
