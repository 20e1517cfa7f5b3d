package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/prospect/pkg/duration"
	"github.com/jmylchreest/prospect/pkg/employment"
)

// listSeparator joins array-valued fields inside one CSV cell.
const listSeparator = "; "

// CSVHeader is the fixed, ordered column list of the flat record contract.
// The order is load-bearing for downstream consumers; never reorder.
func CSVHeader() []string {
	cols := []string{
		"LinkedURL",
		"FullName",
		"CurrentCompany",
		"CurrentCompanyStart",
		"CurrentCompanyEnd",
		"CurrentCompanyTenureYears",
		"CurrentCompanyTenureMonths",
		"JobTitle",
		"Location",
		"PreviousTargetCompany",
		"PreviousTargetCompanyStart",
		"PreviousTargetCompanyEnd",
		"TenureAtPreviousTarget",
	}
	for i := 1; i <= legacySlots; i++ {
		cols = append(cols, fmt.Sprintf("Company %d", i))
	}
	cols = append(cols, "PreviousTitles", "TotalYearsExperience")
	for i := 1; i <= legacySlots; i++ {
		cols = append(cols, fmt.Sprintf("University %d", i))
	}
	for i := 1; i <= legacySlots; i++ {
		cols = append(cols, fmt.Sprintf("Field of Study %d", i))
	}
	cols = append(cols,
		"Degrees",
		"UndergradYear",
		"Certifications",
		"Languages",
		"Projects",
		"Publications",
		"VolunteerOrganizations",
		"Courses",
		"HonorsAwards",
		"Organizations",
		"Patents",
		"TestScores",
		"Emails",
		"Phones",
		"SocialLinks",
		"SkillsCount",
		"ExperienceCount",
		"EducationCount",
		"CoreRoles",
		"Domains",
		"SubmittedAt",
		"RawData",
	)
	return cols
}

// CSVRow renders the profile as one row matching CSVHeader.
func (p *Profile) CSVRow() []string {
	row := []string{
		p.SourceURL,
		p.FullName,
		currentCompany(p),
		yearMonth(currentField(p, func(r *employment.Record) *employment.YearMonth { return r.FirstStart })),
		yearMonth(currentField(p, func(r *employment.Record) *employment.YearMonth { return r.LastEnd })),
		currentTenureYears(p),
		currentTenureMonths(p),
		jobTitle(p),
		p.Location,
		previousCompany(p),
		yearMonth(previousField(p, func(r *employment.Record) *employment.YearMonth { return r.FirstStart })),
		yearMonth(previousField(p, func(r *employment.Record) *employment.YearMonth { return r.LastEnd })),
		previousTenure(p),
	}
	row = append(row, companySlots(p)...)
	row = append(row, joinList(previousTitles(p)), totalYears(p))
	row = append(row, universitySlots(p)...)
	row = append(row, fieldOfStudySlots(p)...)
	row = append(row,
		joinList(degrees(p)),
		undergradYear(p),
		joinList(p.Certifications),
		joinList(p.Languages),
		joinList(p.Projects),
		joinList(p.Publications),
		joinList(p.Volunteer),
		joinList(p.Courses),
		joinList(p.HonorsAwards),
		joinList(p.Organizations),
		joinList(p.Patents),
		joinList(p.TestScores),
		joinList(p.Emails),
		joinList(p.Phones),
		joinList(p.SocialLinks),
		strconv.Itoa(len(p.Skills)),
		strconv.Itoa(p.ExperienceCount),
		strconv.Itoa(len(p.Education)),
		joinList(coreRoles(p)),
		// Domains is always empty here: normalization never infers industry
		// domains, the column is reserved for the downstream taxonomy layer
		// that annotates exported rows in place.
		"",
		p.ExtractedAt.Format(time.RFC3339),
		p.RawDocument(),
	)
	return row
}

// EncodeCSVRow encodes fields per the flat record contract: values are
// comma-joined; a value containing a comma, quote, or newline is wrapped in
// quotes with internal quotes doubled. Nothing else is quoted.
func EncodeCSVRow(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if strings.ContainsAny(f, ",\"\n") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		} else {
			b.WriteString(f)
		}
	}
	return b.String()
}

func joinList(values []string) string {
	return strings.Join(values, listSeparator)
}

func yearMonth(ym *employment.YearMonth) string {
	switch {
	case ym == nil:
		return ""
	case ym.Month == 0:
		return strconv.Itoa(ym.Year)
	default:
		return fmt.Sprintf("%d-%02d", ym.Year, ym.Month)
	}
}

func currentField(p *Profile, f func(*employment.Record) *employment.YearMonth) *employment.YearMonth {
	if p.CurrentEmployer == nil {
		return nil
	}
	return f(p.CurrentEmployer)
}

func previousField(p *Profile, f func(*employment.Record) *employment.YearMonth) *employment.YearMonth {
	if len(p.PastEmployers) == 0 {
		return nil
	}
	return f(&p.PastEmployers[0])
}

func currentCompany(p *Profile) string {
	if p.CurrentEmployer == nil {
		return ""
	}
	return p.CurrentEmployer.Company
}

func currentTenureYears(p *Profile) string {
	if p.CurrentEmployer == nil || p.CurrentEmployer.TotalMonths < 0 {
		return ""
	}
	return strconv.Itoa(duration.YearsRounded(p.CurrentEmployer.TotalMonths))
}

func currentTenureMonths(p *Profile) string {
	if p.CurrentEmployer == nil || p.CurrentEmployer.TotalMonths < 0 {
		return ""
	}
	return strconv.Itoa(p.CurrentEmployer.TotalMonths)
}

func jobTitle(p *Profile) string {
	if p.CurrentEmployer == nil || len(p.CurrentEmployer.Titles) == 0 {
		return ""
	}
	return p.CurrentEmployer.Titles[0]
}

func previousCompany(p *Profile) string {
	if len(p.PastEmployers) == 0 {
		return ""
	}
	return p.PastEmployers[0].Company
}

func previousTenure(p *Profile) string {
	if len(p.PastEmployers) == 0 || p.PastEmployers[0].TotalMonths < 0 {
		return ""
	}
	return strconv.Itoa(p.PastEmployers[0].TotalMonths)
}

func previousTitles(p *Profile) []string {
	var titles []string
	for _, rec := range p.PastEmployers {
		titles = append(titles, rec.Titles...)
	}
	return titles
}

func totalYears(p *Profile) string {
	if p.TotalYearsExperience == nil {
		return ""
	}
	return strconv.Itoa(*p.TotalYearsExperience)
}

func degrees(p *Profile) []string {
	var out []string
	for _, ed := range p.Education {
		if ed.Degree != "" {
			out = append(out, ed.Degree)
		}
	}
	return out
}

func undergradYear(p *Profile) string {
	for _, ed := range p.Education {
		if ed.UndergradYear != 0 {
			return strconv.Itoa(ed.UndergradYear)
		}
	}
	return ""
}

// coreRoles lists the distinct titles held across all employment, current
// first.
func coreRoles(p *Profile) []string {
	var roles []string
	seen := map[string]bool{}
	add := func(titles []string) {
		for _, t := range titles {
			key := strings.ToLower(t)
			if !seen[key] {
				seen[key] = true
				roles = append(roles, t)
			}
		}
	}
	if p.CurrentEmployer != nil {
		add(p.CurrentEmployer.Titles)
	}
	for _, rec := range p.PastEmployers {
		add(rec.Titles)
	}
	return roles
}
