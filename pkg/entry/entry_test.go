package entry

import (
	"testing"
	"time"

	"github.com/jmylchreest/prospect/pkg/profile"
)

var testNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// --- Experience tests ---

func TestParseExperience_Positional(t *testing.T) {
	item := profile.RawItem{Text: "Staff Engineer\nAcme Corp · Full-time\nJan 2020 - Present · 4 yrs 5 mos\nSan Francisco, California\nShipped the billing platform."}

	e, ok := ParseExperience(item, "", testNow)
	if !ok {
		t.Fatal("expected the item to parse")
	}

	if e.Title != "Staff Engineer" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Company != "Acme Corp" {
		t.Errorf("company = %q", e.Company)
	}
	if e.EmploymentType != "Full-time" {
		t.Errorf("employment type = %q", e.EmploymentType)
	}
	if e.DurationRaw != "Jan 2020 - Present · 4 yrs 5 mos" {
		t.Errorf("durationRaw = %q", e.DurationRaw)
	}
	if !e.Duration.Ongoing {
		t.Error("expected an ongoing duration")
	}
	if e.Location != "San Francisco, California" {
		t.Errorf("location = %q", e.Location)
	}
	if e.Description != "Shipped the billing platform." {
		t.Errorf("description = %q", e.Description)
	}
}

func TestParseExperience_StructuralHintsWin(t *testing.T) {
	item := profile.RawItem{
		Text: "noise line\nmore noise",
		Attributes: map[string]string{
			"title":    "Data Analyst",
			"company":  "Initech",
			"duration": "2019 - 2021",
		},
	}

	e, ok := ParseExperience(item, "", testNow)
	if !ok {
		t.Fatal("expected the item to parse")
	}
	if e.Title != "Data Analyst" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Company != "Initech" {
		t.Errorf("company = %q", e.Company)
	}
	if e.Duration.StartYear != 2019 || e.Duration.EndYear != 2021 {
		t.Errorf("duration = %+v", e.Duration)
	}
}

func TestParseExperience_EmptyItemDropped(t *testing.T) {
	if _, ok := ParseExperience(profile.RawItem{Text: "  \n  "}, "", testNow); ok {
		t.Error("an empty item must be dropped, not parsed")
	}
}

func TestParseExperiences_DropIsSilent(t *testing.T) {
	items := []profile.RawItem{
		{Text: "Engineer\nAcme · Full-time\n2020 - Present"},
		{Text: ""},
		{Text: "Manager\nHooli\n2015 - 2019"},
	}
	got := ParseExperiences(items, "", testNow)
	if len(got) != 2 {
		t.Errorf("expected 2 parsed entries, got %d", len(got))
	}
}

// --- Education tests ---

func TestParseEducation_DegreeAndField(t *testing.T) {
	item := profile.RawItem{Text: "State University\nBachelor of Science, Computer Science\n2014 - 2018"}

	ed, ok := ParseEducation(item, testNow)
	if !ok {
		t.Fatal("expected the item to parse")
	}
	if ed.School != "State University" {
		t.Errorf("school = %q", ed.School)
	}
	if ed.Degree != "Bachelor of Science" {
		t.Errorf("degree = %q", ed.Degree)
	}
	if ed.FieldOfStudy != "Computer Science" {
		t.Errorf("field = %q", ed.FieldOfStudy)
	}
	if ed.DateRangeRaw != "2014 - 2018" {
		t.Errorf("dateRangeRaw = %q", ed.DateRangeRaw)
	}
	if ed.UndergradYear != 2018 {
		t.Errorf("undergradYear = %d", ed.UndergradYear)
	}
}

func TestParseEducation_NonBachelorHasNoUndergradYear(t *testing.T) {
	item := profile.RawItem{Text: "State University\nMaster of Science · Data Science\n2019 - 2021"}

	ed, ok := ParseEducation(item, testNow)
	if !ok {
		t.Fatal("expected the item to parse")
	}
	if ed.UndergradYear != 0 {
		t.Errorf("expected no undergrad year for a master's, got %d", ed.UndergradYear)
	}
}

func TestParseEducation_EmptyDropped(t *testing.T) {
	if _, ok := ParseEducation(profile.RawItem{Text: ""}, testNow); ok {
		t.Error("an empty education item must be dropped")
	}
}

// --- List tests ---

func TestParseList_FirstLineDeduplicated(t *testing.T) {
	items := []profile.RawItem{
		{Text: "Go\n17 endorsements"},
		{Text: "Distributed Systems"},
		{Text: "go"},
		{Text: ""},
	}
	got := ParseList(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %v", got)
	}
	if got[0] != "Go" || got[1] != "Distributed Systems" {
		t.Errorf("unexpected values: %v", got)
	}
}

// --- Personal tests ---

func TestParsePersonal_Positional(t *testing.T) {
	items := []profile.RawItem{
		{Text: "Jane Doe\nStaff Engineer at Acme\nBerlin, Germany"},
	}
	p := ParsePersonal(items)

	if p.Name != "Jane Doe" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Headline != "Staff Engineer at Acme" {
		t.Errorf("headline = %q", p.Headline)
	}
	if p.Location != "Berlin, Germany" {
		t.Errorf("location = %q", p.Location)
	}
}

func TestParseContacts(t *testing.T) {
	items := []profile.RawItem{
		{Text: "Email jane@example.com\nPhone +1 (415) 555-0100"},
		{Text: "jane@example.com"},
	}
	emails, phones := ParseContacts(items)

	if len(emails) != 1 || emails[0] != "jane@example.com" {
		t.Errorf("emails = %v", emails)
	}
	if len(phones) != 1 {
		t.Errorf("phones = %v", phones)
	}
}

func TestParseLinks(t *testing.T) {
	items := []profile.RawItem{
		{Text: "https://github.com/janedoe"},
		{Text: "portfolio", Attributes: map[string]string{"href": "https://janedoe.dev"}},
	}
	links := ParseLinks(items)
	if len(links) != 2 {
		t.Errorf("links = %v", links)
	}
}
