package record

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jmylchreest/prospect/pkg/employment"
	"github.com/jmylchreest/prospect/pkg/entry"
	"github.com/jmylchreest/prospect/pkg/profile"
)

var testNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func ym(y, m int) *employment.YearMonth {
	return &employment.YearMonth{Year: y, Month: m}
}

func sampleInput() BuildInput {
	doc := &profile.RawExtraction{
		SourceURL:   "https://example.com/in/jane",
		ExtractedAt: testNow,
	}
	totalYears := 8
	return BuildInput{
		Doc:      doc,
		Personal: entry.Personal{Name: "Jane Doe", Headline: "Staff Engineer", Location: "Lisbon, Portugal"},
		Experience: []entry.Experience{
			{Title: "Staff Engineer", Company: "Acme"},
			{Title: "Engineer", Company: "Hooli"},
		},
		Education: []entry.Education{
			{School: "MIT", Degree: "BSc", FieldOfStudy: "Computer Science", UndergradYear: 2014},
		},
		Lists: map[profile.SectionCategory][]string{
			profile.CategorySkills:    {"Go", "SQL"},
			profile.CategoryLanguages: {"English"},
		},
		Emails: []string{"jane@example.com"},
		Links:  []string{"https://github.com/jane"},
		Summary: employment.Summary{
			Current: &employment.Record{
				Company: "Acme", Titles: []string{"Staff Engineer"},
				FirstStart: ym(2020, 1), TotalMonths: 53, IsCurrent: true,
			},
			Past: []employment.Record{
				{Company: "Hooli", Titles: []string{"Engineer"}, FirstStart: ym(2016, 3), LastEnd: ym(2019, 12), TotalMonths: 46},
			},
			TotalYears: totalYears,
		},
	}
}

// --- Build tests ---

func TestBuild_PopulatesSummaryAndCounts(t *testing.T) {
	p, err := Build(sampleInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.CurrentEmployer == nil || p.CurrentEmployer.Company != "Acme" {
		t.Errorf("current employer = %+v", p.CurrentEmployer)
	}
	if p.ExperienceCount != 2 {
		t.Errorf("experience count = %d", p.ExperienceCount)
	}
	if p.TotalYearsExperience == nil || *p.TotalYearsExperience != 8 {
		t.Errorf("total years = %v", p.TotalYearsExperience)
	}
	if len(p.Education) != 1 || p.Education[0].School != "MIT" {
		t.Errorf("education = %+v", p.Education)
	}
	if !p.Valid {
		t.Error("built profile must start valid")
	}
}

func TestBuild_UnknownTotalYearsStaysNull(t *testing.T) {
	in := sampleInput()
	in.Summary.TotalYears = -1
	p, err := Build(in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.TotalYearsExperience != nil {
		t.Errorf("total years = %v, want nil", p.TotalYearsExperience)
	}
	var out map[string]json.RawMessage
	b, _ := json.Marshal(p)
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if string(out["totalYearsExperience"]) != "null" {
		t.Errorf("serialized total years = %s, want null", out["totalYearsExperience"])
	}
}

func TestBuild_RawDocumentRoundTrips(t *testing.T) {
	p, err := Build(sampleInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var doc profile.RawExtraction
	if err := json.Unmarshal([]byte(p.RawDocument()), &doc); err != nil {
		t.Fatalf("raw document is not valid JSON: %v", err)
	}
	if doc.SourceURL != "https://example.com/in/jane" {
		t.Errorf("raw document source URL = %q", doc.SourceURL)
	}
}

// --- Legacy slot tests ---

func TestLegacy_CurrentCompanyFillsFirstSlot(t *testing.T) {
	p, _ := Build(sampleInput())
	if p.Legacy.Company1 != "Acme" {
		t.Errorf("Company 1 = %q", p.Legacy.Company1)
	}
	if p.Legacy.Company2 != "Hooli" {
		t.Errorf("Company 2 = %q", p.Legacy.Company2)
	}
	if p.Legacy.Company3 != "" {
		t.Errorf("Company 3 = %q, want empty", p.Legacy.Company3)
	}
	if p.Legacy.University1 != "MIT" || p.Legacy.University2 != "" {
		t.Errorf("universities = %q, %q", p.Legacy.University1, p.Legacy.University2)
	}
	if p.Legacy.FieldOfStudy1 != "Computer Science" {
		t.Errorf("field of study 1 = %q", p.Legacy.FieldOfStudy1)
	}
}

func TestLegacy_SlotKeysUseSpacedNames(t *testing.T) {
	p, _ := Build(sampleInput())
	b, _ := json.Marshal(p.Legacy)
	for _, key := range []string{`"Company 1"`, `"University 10"`, `"Field of Study 3"`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("legacy JSON missing key %s", key)
		}
	}
}

// --- CSV tests ---

func TestCSVHeader_ShapeIsFixed(t *testing.T) {
	h := CSVHeader()
	if h[0] != "LinkedURL" {
		t.Errorf("first column = %q", h[0])
	}
	if h[len(h)-1] != "RawData" {
		t.Errorf("last column = %q", h[len(h)-1])
	}
	idx := map[string]int{}
	for i, c := range h {
		if prev, dup := idx[c]; dup {
			t.Errorf("duplicate column %q at %d and %d", c, prev, i)
		}
		idx[c] = i
	}
	if idx["Company 10"]+1 != idx["PreviousTitles"] {
		t.Error("PreviousTitles must follow Company 10")
	}
	if idx["SubmittedAt"]+1 != idx["RawData"] {
		t.Error("RawData must follow SubmittedAt")
	}
}

func TestCSVRow_MatchesHeaderWidth(t *testing.T) {
	p, _ := Build(sampleInput())
	row := p.CSVRow()
	if len(row) != len(CSVHeader()) {
		t.Fatalf("row width %d, header width %d", len(row), len(CSVHeader()))
	}
	cell := map[string]string{}
	for i, name := range CSVHeader() {
		cell[name] = row[i]
	}
	if cell["CurrentCompany"] != "Acme" {
		t.Errorf("CurrentCompany = %q", cell["CurrentCompany"])
	}
	if cell["CurrentCompanyStart"] != "2020-01" {
		t.Errorf("CurrentCompanyStart = %q", cell["CurrentCompanyStart"])
	}
	if cell["CurrentCompanyTenureYears"] != "4" {
		t.Errorf("tenure years = %q", cell["CurrentCompanyTenureYears"])
	}
	if cell["CurrentCompanyTenureMonths"] != "53" {
		t.Errorf("tenure months = %q", cell["CurrentCompanyTenureMonths"])
	}
	if cell["JobTitle"] != "Staff Engineer" {
		t.Errorf("JobTitle = %q", cell["JobTitle"])
	}
	if cell["PreviousTargetCompany"] != "Hooli" {
		t.Errorf("PreviousTargetCompany = %q", cell["PreviousTargetCompany"])
	}
	if cell["TenureAtPreviousTarget"] != "46" {
		t.Errorf("TenureAtPreviousTarget = %q", cell["TenureAtPreviousTarget"])
	}
	// Normalization never fills Domains; the column belongs to the
	// downstream taxonomy layer.
	if cell["Domains"] != "" {
		t.Errorf("Domains = %q, want empty", cell["Domains"])
	}
	if cell["Company 1"] != "Acme" || cell["Company 2"] != "Hooli" || cell["Company 3"] != "" {
		t.Errorf("company slots = %q, %q, %q", cell["Company 1"], cell["Company 2"], cell["Company 3"])
	}
	if cell["CoreRoles"] != "Staff Engineer; Engineer" {
		t.Errorf("CoreRoles = %q", cell["CoreRoles"])
	}
	if cell["SkillsCount"] != "2" {
		t.Errorf("SkillsCount = %q", cell["SkillsCount"])
	}
	if cell["ExperienceCount"] != "2" {
		t.Errorf("ExperienceCount = %q", cell["ExperienceCount"])
	}
	if cell["SubmittedAt"] != "2024-06-01T00:00:00Z" {
		t.Errorf("SubmittedAt = %q", cell["SubmittedAt"])
	}
	if !strings.HasPrefix(cell["RawData"], "{") {
		t.Errorf("RawData must be a JSON object, got %q", cell["RawData"])
	}
}

func TestCSVRow_EmptyProfileStaysBlank(t *testing.T) {
	in := BuildInput{Doc: &profile.RawExtraction{SourceURL: "https://example.com/p", ExtractedAt: testNow}}
	in.Summary.TotalYears = -1
	p, _ := Build(in)
	row := p.CSVRow()
	cell := map[string]string{}
	for i, name := range CSVHeader() {
		cell[name] = row[i]
	}
	for _, name := range []string{
		"CurrentCompany", "CurrentCompanyStart", "CurrentCompanyTenureYears",
		"CurrentCompanyTenureMonths", "JobTitle", "PreviousTargetCompany",
		"TenureAtPreviousTarget", "TotalYearsExperience", "UndergradYear",
	} {
		if cell[name] != "" {
			t.Errorf("%s = %q, want empty", name, cell[name])
		}
	}
	if cell["SkillsCount"] != "0" || cell["ExperienceCount"] != "0" || cell["EducationCount"] != "0" {
		t.Errorf("counts = %q, %q, %q", cell["SkillsCount"], cell["ExperienceCount"], cell["EducationCount"])
	}
}

func TestCSVRow_YearOnlyDatesOmitMonth(t *testing.T) {
	in := sampleInput()
	in.Summary.Current.FirstStart = &employment.YearMonth{Year: 2020}
	p, _ := Build(in)
	row := p.CSVRow()
	for i, name := range CSVHeader() {
		if name == "CurrentCompanyStart" {
			if row[i] != "2020" {
				t.Errorf("CurrentCompanyStart = %q, want 2020", row[i])
			}
		}
	}
}

// --- Encoding tests ---

func TestEncodeCSVRow_QuotesOnlyWhatNeedsIt(t *testing.T) {
	got := EncodeCSVRow([]string{"plain", "has,comma", `has "quote"`, "line\nbreak", " leading space"})
	want := `plain,"has,comma","has ""quote""","line` + "\n" + `break", leading space`
	if got != want {
		t.Errorf("encoded = %q, want %q", got, want)
	}
}

func TestEncodeCSVRow_EmptyFields(t *testing.T) {
	if got := EncodeCSVRow([]string{"", "a", ""}); got != ",a," {
		t.Errorf("encoded = %q", got)
	}
}
