package extract

import "regexp"

// EducationEntry is one school or degree block. Empty fields were not found.
type EducationEntry struct {
	Institution string   `json:"institution,omitempty"`
	Degree      string   `json:"degree,omitempty"`
	Date        string   `json:"date,omitempty"`
	GPA         string   `json:"gpa,omitempty"`
	Description []string `json:"description,omitempty"`
}

func (e *EducationEntry) empty() bool {
	return e.Institution == "" && e.Degree == "" && e.Date == "" && e.GPA == "" && len(e.Description) == 0
}

var (
	institutionRe = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy)`)
	degreeRe      = regexp.MustCompile(`(?i)\b(?:bachelor|master|ph\.?d\b|m\.?tech\b|b\.?tech\b|m\.?sc\b|b\.?sc\b|m\.?com\b|b\.?com\b)`)
	gpaRe         = regexp.MustCompile(`(?i)\b(?:c?gpa|grade)\b|percentage|%`)
)

var educationRules = []rule[EducationEntry]{
	{
		field:   "institution",
		match:   institutionRe.MatchString,
		claimed: func(e *EducationEntry) bool { return e.Institution != "" },
		set:     func(e *EducationEntry, l string) { e.Institution = l },
	},
	{
		field:   "degree",
		match:   degreeRe.MatchString,
		claimed: func(e *EducationEntry) bool { return e.Degree != "" },
		set:     func(e *EducationEntry, l string) { e.Degree = l },
	},
	{
		field:   "date",
		match:   hasYearRange,
		claimed: func(e *EducationEntry) bool { return e.Date != "" },
		set:     func(e *EducationEntry, l string) { e.Date = l },
	},
	{
		field:   "gpa",
		match:   gpaRe.MatchString,
		claimed: func(e *EducationEntry) bool { return e.GPA != "" },
		set:     func(e *EducationEntry, l string) { e.GPA = l },
	},
}

// ParseEducation groups an EDUCATION section into entries. A keyword line
// alone does not open an entry: only a line that would claim a field the
// current entry already holds closes it, so "MIT University" followed by
// "Bachelor of Science" stays one entry. Lines matching no field accumulate
// in Description.
func ParseEducation(lines []string) []EducationEntry {
	out := []EducationEntry{}
	var cur EducationEntry

	for _, line := range lines {
		r, ok := pick(educationRules, line)
		if !ok {
			cur.Description = append(cur.Description, line)
			continue
		}
		if r.claimed(&cur) && !cur.empty() {
			out = append(out, cur)
			cur = EducationEntry{}
		}
		r.set(&cur, line)
	}
	if !cur.empty() {
		out = append(out, cur)
	}
	return out
}
