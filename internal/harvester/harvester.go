// Package harvester turns a fetched profile page into the raw extraction
// the normalization pipeline consumes. Section slicing is heading-anchored:
// every h2/h3 opens a section, and the markup between it and the next
// heading becomes that section's items. The harvester never interprets
// content; classification belongs to the pipeline.
package harvester

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/prospect/internal/logger"
	"github.com/jmylchreest/prospect/pkg/fetcher"
	"github.com/jmylchreest/prospect/pkg/profile"
)

// Harvester converts fetched pages to raw extractions.
type Harvester struct{}

// New creates a Harvester.
func New() *Harvester {
	return &Harvester{}
}

// Harvest builds a raw extraction from fetched page content.
func (h *Harvester) Harvest(content fetcher.Content, extractedAt time.Time) (*profile.RawExtraction, error) {
	return h.HarvestHTML(content.URL, content.HTML, extractedAt)
}

// HarvestHTML builds a raw extraction from page HTML.
func (h *Harvester) HarvestHTML(sourceURL, html string, extractedAt time.Time) (*profile.RawExtraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing page HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, svg, nav, footer").Remove()

	out := &profile.RawExtraction{
		SourceURL:   sourceURL,
		ExtractedAt: extractedAt,
		RawText:     cleanSpaces(doc.Find("body").Text()),
	}

	if sec := personalSection(doc); sec != nil {
		out.Sections = append(out.Sections, *sec)
	}
	out.Sections = append(out.Sections, headingSections(doc)...)

	if err := profile.Validate(out); err != nil {
		return nil, err
	}

	logger.Debug("harvested page",
		"url", sourceURL,
		"sections", len(out.Sections),
		"raw_text_len", len(out.RawText))
	return out, nil
}

// personalSection assembles the identity block: the page's first h1 plus
// the sibling markup before the first section heading.
func personalSection(doc *goquery.Document) *profile.RawSection {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return nil
	}

	lines := []string{cleanSpaces(h1.Text())}
	h1.NextUntil("h2, h3, section").Each(func(_ int, s *goquery.Selection) {
		if t := cleanSpaces(s.Text()); t != "" {
			lines = append(lines, t)
		}
	})

	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return &profile.RawSection{
		Category: profile.CategoryPersonalInfo,
		Items:    []profile.RawItem{{Text: text, Tag: "h1"}},
	}
}

// headingSections slices the document at each h2/h3 heading.
func headingSections(doc *goquery.Document) []profile.RawSection {
	var sections []profile.RawSection

	doc.Find("h2, h3").Each(func(_ int, heading *goquery.Selection) {
		// An h3 inside a section already covered by its h2 is an item
		// boundary, not a section boundary.
		if goquery.NodeName(heading) == "h3" && heading.ParentsFiltered("section").Length() > 0 {
			return
		}

		sec := profile.RawSection{
			Heading: cleanSpaces(heading.Text()),
		}
		if sec.Heading == "" {
			return
		}

		body := heading.NextUntil("h2, h3")
		if parent := heading.ParentsFiltered("section").First(); parent.Length() > 0 {
			sec.Items = sectionItems(parent)
		} else {
			body.Each(func(_ int, s *goquery.Selection) {
				sec.Items = append(sec.Items, blockItems(s)...)
			})
		}

		if len(sec.Items) > 0 {
			sections = append(sections, sec)
		}
	})

	return sections
}

// sectionItems extracts one item per list element, falling back to direct
// block children.
func sectionItems(sec *goquery.Selection) []profile.RawItem {
	var items []profile.RawItem
	sec.Find("li").Each(func(_ int, li *goquery.Selection) {
		// Skip nested lists; the outer li already carries their text.
		if li.ParentsFiltered("li").Length() > 0 {
			return
		}
		if text := blockText(li); text != "" {
			items = append(items, newItem(li, text))
		}
	})
	if len(items) > 0 {
		return items
	}

	sec.ChildrenFiltered("div, p").Each(func(_ int, s *goquery.Selection) {
		if text := blockText(s); text != "" {
			items = append(items, newItem(s, text))
		}
	})
	return items
}

// blockItems extracts items from a free-standing element between headings.
func blockItems(s *goquery.Selection) []profile.RawItem {
	switch goquery.NodeName(s) {
	case "ul", "ol":
		var items []profile.RawItem
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if text := blockText(li); text != "" {
				items = append(items, newItem(li, text))
			}
		})
		return items
	default:
		if text := blockText(s); text != "" {
			return []profile.RawItem{newItem(s, text)}
		}
		return nil
	}
}

// blockText renders an element as newline-separated lines, one per child
// block, so positional parsing downstream sees the visual line structure.
func blockText(s *goquery.Selection) string {
	children := s.Children()
	if children.Length() == 0 {
		return cleanSpaces(s.Text())
	}

	var lines []string
	children.Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "ul", "ol":
			c.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				if t := cleanSpaces(li.Text()); t != "" {
					lines = append(lines, t)
				}
			})
		default:
			if t := cleanSpaces(c.Text()); t != "" {
				lines = append(lines, t)
			}
		}
	})
	if len(lines) == 0 {
		return cleanSpaces(s.Text())
	}
	return strings.Join(lines, "\n")
}

func newItem(s *goquery.Selection, text string) profile.RawItem {
	item := profile.RawItem{Text: text, Tag: goquery.NodeName(s)}
	if href, ok := s.Find("a[href]").First().Attr("href"); ok {
		item.Attributes = map[string]string{"href": href}
	}
	return item
}

// cleanSpaces collapses runs of whitespace to single spaces.
func cleanSpaces(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
