package employment

import (
	"testing"
	"time"

	"github.com/jmylchreest/prospect/pkg/duration"
	"github.com/jmylchreest/prospect/pkg/entry"
)

var testNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func exp(title, comp, durationRaw, employmentType string) entry.Experience {
	return entry.Experience{
		Title:          title,
		Company:        comp,
		DurationRaw:    durationRaw,
		EmploymentType: employmentType,
		Duration:       duration.Resolve(durationRaw, testNow),
	}
}

// --- Current-employer election tests ---

func TestAggregate_ElectsOngoingEntry(t *testing.T) {
	s := Aggregate([]entry.Experience{
		exp("Engineer", "Acme", "Jan 2020 - Present", ""),
		exp("Analyst", "Hooli", "2015 - 2019", ""),
	}, testNow)

	if s.Current == nil {
		t.Fatal("expected a current employer")
	}
	if s.Current.Company != "Acme" {
		t.Errorf("current company = %q", s.Current.Company)
	}
	if !s.Current.IsCurrent {
		t.Error("current record must carry IsCurrent")
	}
	if len(s.Past) != 1 || s.Past[0].Company != "Hooli" {
		t.Errorf("past = %+v", s.Past)
	}
}

func TestAggregate_PresentTextWithoutResolvedRange(t *testing.T) {
	e := entry.Experience{
		Title:       "Engineer",
		Company:     "Acme",
		DurationRaw: "since a while - Present day role",
		Duration:    duration.Empty(),
	}
	s := Aggregate([]entry.Experience{e}, testNow)

	if s.Current == nil || s.Current.Company != "Acme" {
		t.Error("an entry whose duration text says Present must be electable")
	}
}

func TestAggregate_NamelessEntryNotElectable(t *testing.T) {
	s := Aggregate([]entry.Experience{
		exp("Engineer", "", "Jan 2021 - Present", ""),
		exp("Analyst", "Hooli", "Mar 2018 - Present", ""),
	}, testNow)

	if s.Current == nil {
		t.Fatal("expected a current employer")
	}
	if s.Current.Company != "Hooli" {
		t.Errorf("current company = %q, want the named entry", s.Current.Company)
	}
}

func TestAggregate_ForwardDatedEndYear(t *testing.T) {
	s := Aggregate([]entry.Experience{
		exp("Engineer", "Acme", "2023 - 2025", ""),
	}, testNow)

	if s.Current == nil || s.Current.Company != "Acme" {
		t.Error("an end year at or beyond the current year must be electable")
	}
}

func TestAggregate_AtMostOneCurrent(t *testing.T) {
	s := Aggregate([]entry.Experience{
		exp("Engineer", "Acme", "Jan 2020 - Present", ""),
		exp("Advisor", "Hooli", "2021 - Present", ""),
	}, testNow)

	count := 0
	for _, r := range s.ByCompany {
		if r.IsCurrent {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one current record, got %d", count)
	}
	if s.Current == nil || s.Current.Company != "Acme" {
		t.Error("the first entry in source order wins the election")
	}
}

func TestAggregate_NoCurrent(t *testing.T) {
	s := Aggregate([]entry.Experience{
		exp("Engineer", "Acme", "2015 - 2019", ""),
	}, testNow)

	if s.Current != nil {
		t.Errorf("expected no current employer, got %+v", s.Current)
	}
}

// --- Grouping tests ---

func TestAggregate_MultiStintMerged(t *testing.T) {
	s := Aggregate([]entry.Experience{
		exp("Senior Engineer", "Acme", "Jan 2022 - Present", ""),
		exp("Manager", "Hooli", "Jan 2020 - Dec 2021", ""),
		exp("Engineer", "acme ", "Jan 2016 - Jan 2018", ""),
	}, testNow)

	if len(s.ByCompany) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(s.ByCompany))
	}

	var acme *Record
	for i := range s.ByCompany {
		if s.ByCompany[i].Company == "Acme" {
			acme = &s.ByCompany[i]
		}
	}
	if acme == nil {
		t.Fatalf("no merged Acme record: %+v", s.ByCompany)
	}
	// 29 ongoing months (Jan 2022 - Jun 2024) + 24 closed months.
	if acme.TotalMonths != 53 {
		t.Errorf("merged total months = %d", acme.TotalMonths)
	}
	if acme.FirstStart == nil || acme.FirstStart.Year != 2016 || acme.FirstStart.Month != 1 {
		t.Errorf("firstStart = %+v", acme.FirstStart)
	}
	if acme.LastEnd == nil || acme.LastEnd.Year != 2024 || acme.LastEnd.Month != 6 {
		t.Errorf("lastEnd = %+v", acme.LastEnd)
	}
	if len(acme.Titles) != 2 {
		t.Errorf("titles = %v", acme.Titles)
	}
	if !acme.IsCurrent {
		t.Error("the merged record must inherit IsCurrent from its elected stint")
	}

	// The current record reflects the elected stint alone.
	if s.Current == nil || len(s.Current.Titles) != 1 || s.Current.Titles[0] != "Senior Engineer" {
		t.Errorf("current = %+v", s.Current)
	}
}

func TestAggregate_PastOrderedByEndDescending(t *testing.T) {
	s := Aggregate([]entry.Experience{
		exp("A", "Oldest", "2010 - 2012", ""),
		exp("B", "Newest", "2018 - 2020", ""),
		exp("C", "Middle", "2013 - 2016", ""),
	}, testNow)

	want := []string{"Newest", "Middle", "Oldest"}
	if len(s.Past) != 3 {
		t.Fatalf("past = %+v", s.Past)
	}
	for i, w := range want {
		if s.Past[i].Company != w {
			t.Errorf("past[%d] = %q, want %q", i, s.Past[i].Company, w)
		}
	}
}

// --- Total-experience tests ---

func TestAggregate_TotalYearsExcludesInternship(t *testing.T) {
	s := Aggregate([]entry.Experience{
		exp("Engineer", "Acme", "2019 - Present", ""),
		exp("Intern", "Acme", "2018 - 2019", "Internship"),
	}, testNow)

	// Only the first entry qualifies: 2019 - now(2024-06) is 65 months.
	if s.TotalYears != 5 {
		t.Errorf("totalYears = %d, want 5", s.TotalYears)
	}
	if s.Current == nil || s.Current.Company != "Acme" {
		t.Fatalf("current = %+v", s.Current)
	}
	if len(s.Current.Titles) != 1 || s.Current.Titles[0] != "Engineer" {
		t.Errorf("current titles = %v, want [Engineer]", s.Current.Titles)
	}
	// Both stints still merge into the by-company record.
	for _, r := range s.ByCompany {
		if r.Company == "Acme" && len(r.Titles) != 2 {
			t.Errorf("merged titles = %v", r.Titles)
		}
	}
}

func TestAggregate_TotalYearsNoQualifyingEntries(t *testing.T) {
	s := Aggregate([]entry.Experience{
		exp("Intern", "Acme", "2018 - 2019", "Internship"),
	}, testNow)

	if s.TotalYears != -1 {
		t.Errorf("totalYears = %d, want -1 (unknown)", s.TotalYears)
	}
}

func TestAggregate_UnresolvedCompanySkipped(t *testing.T) {
	e := exp("Engineer", "", "2019 - 2021", "")
	s := Aggregate([]entry.Experience{e}, testNow)

	if len(s.ByCompany) != 0 {
		t.Errorf("entries without a resolved company must not group: %+v", s.ByCompany)
	}
	if s.TotalYears != -1 {
		t.Errorf("totalYears = %d, want -1", s.TotalYears)
	}
}
