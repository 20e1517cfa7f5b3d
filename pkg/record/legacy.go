package record

// legacySlots is the fixed width of the numbered-slot view. Downstream
// consumers depend on exactly ten of each; do not widen.
const legacySlots = 10

// LegacyView is the flattened numbered-slot representation retained for
// consumers expecting a flat record shape. Slots beyond the available
// entries are empty strings, never omitted.
type LegacyView struct {
	Company1  string `json:"Company 1"`
	Company2  string `json:"Company 2"`
	Company3  string `json:"Company 3"`
	Company4  string `json:"Company 4"`
	Company5  string `json:"Company 5"`
	Company6  string `json:"Company 6"`
	Company7  string `json:"Company 7"`
	Company8  string `json:"Company 8"`
	Company9  string `json:"Company 9"`
	Company10 string `json:"Company 10"`

	University1  string `json:"University 1"`
	University2  string `json:"University 2"`
	University3  string `json:"University 3"`
	University4  string `json:"University 4"`
	University5  string `json:"University 5"`
	University6  string `json:"University 6"`
	University7  string `json:"University 7"`
	University8  string `json:"University 8"`
	University9  string `json:"University 9"`
	University10 string `json:"University 10"`

	FieldOfStudy1  string `json:"Field of Study 1"`
	FieldOfStudy2  string `json:"Field of Study 2"`
	FieldOfStudy3  string `json:"Field of Study 3"`
	FieldOfStudy4  string `json:"Field of Study 4"`
	FieldOfStudy5  string `json:"Field of Study 5"`
	FieldOfStudy6  string `json:"Field of Study 6"`
	FieldOfStudy7  string `json:"Field of Study 7"`
	FieldOfStudy8  string `json:"Field of Study 8"`
	FieldOfStudy9  string `json:"Field of Study 9"`
	FieldOfStudy10 string `json:"Field of Study 10"`
}

// companySlots returns the numbered company values: the current employer
// first, then past employers most-recent-first, padded to the slot width.
func companySlots(p *Profile) []string {
	slots := make([]string, 0, legacySlots)
	if p.CurrentEmployer != nil {
		slots = append(slots, p.CurrentEmployer.Company)
	}
	for _, rec := range p.PastEmployers {
		if len(slots) == legacySlots {
			break
		}
		slots = append(slots, rec.Company)
	}
	return pad(slots)
}

func universitySlots(p *Profile) []string {
	slots := make([]string, 0, legacySlots)
	for _, ed := range p.Education {
		if len(slots) == legacySlots {
			break
		}
		slots = append(slots, ed.School)
	}
	return pad(slots)
}

func fieldOfStudySlots(p *Profile) []string {
	slots := make([]string, 0, legacySlots)
	for _, ed := range p.Education {
		if len(slots) == legacySlots {
			break
		}
		slots = append(slots, ed.FieldOfStudy)
	}
	return pad(slots)
}

func pad(slots []string) []string {
	for len(slots) < legacySlots {
		slots = append(slots, "")
	}
	return slots[:legacySlots]
}

func buildLegacy(p *Profile) LegacyView {
	c := companySlots(p)
	u := universitySlots(p)
	f := fieldOfStudySlots(p)
	return LegacyView{
		Company1: c[0], Company2: c[1], Company3: c[2], Company4: c[3], Company5: c[4],
		Company6: c[5], Company7: c[6], Company8: c[7], Company9: c[8], Company10: c[9],

		University1: u[0], University2: u[1], University3: u[2], University4: u[3], University5: u[4],
		University6: u[5], University7: u[6], University8: u[7], University9: u[8], University10: u[9],

		FieldOfStudy1: f[0], FieldOfStudy2: f[1], FieldOfStudy3: f[2], FieldOfStudy4: f[3], FieldOfStudy5: f[4],
		FieldOfStudy6: f[5], FieldOfStudy7: f[6], FieldOfStudy8: f[7], FieldOfStudy9: f[8], FieldOfStudy10: f[9],
	}
}
