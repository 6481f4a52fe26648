package extract

import "strings"

// ExperienceEntry is one position held at one organization.
type ExperienceEntry struct {
	Organization string   `json:"organization,omitempty"`
	Position     string   `json:"position,omitempty"`
	Date         string   `json:"date,omitempty"`
	Descriptions []string `json:"descriptions,omitempty"`
	Notes        []string `json:"notes,omitempty"`
}

func (e *ExperienceEntry) empty() bool {
	return e.Organization == "" && e.Position == "" && e.Date == "" &&
		len(e.Descriptions) == 0 && len(e.Notes) == 0
}

func isBullet(line string) bool {
	_, ok := stripBullet(line)
	return ok
}

// setOrganization splits "Org | Position" on the first pipe.
func setOrganization(e *ExperienceEntry, line string) {
	org, pos, found := strings.Cut(line, "|")
	if !found {
		e.Organization = strings.TrimSpace(line)
		return
	}
	e.Organization = strings.TrimSpace(org)
	e.Position = strings.TrimSpace(pos)
}

// experienceRules is evaluated against a line together with the entry it
// would land in, since organization and date are only claimable once.
func experienceRules(cur *ExperienceEntry) []rule[ExperienceEntry] {
	return []rule[ExperienceEntry]{
		{
			field: "descriptions",
			match: isBullet,
			set: func(e *ExperienceEntry, l string) {
				if d, _ := stripBullet(l); d != "" {
					e.Descriptions = append(e.Descriptions, d)
				}
			},
		},
		{
			field:   "organization",
			match:   func(l string) bool { return cur.Organization == "" && !isDateOnly(l) },
			claimed: func(e *ExperienceEntry) bool { return e.Organization != "" },
			set:     setOrganization,
		},
		{
			field:   "date",
			match:   func(l string) bool { return cur.Date == "" && hasYearRange(l) },
			claimed: func(e *ExperienceEntry) bool { return e.Date != "" },
			set:     func(e *ExperienceEntry, l string) { e.Date = l },
		},
		{
			field: "notes",
			match: func(string) bool { return true },
			set:   func(e *ExperienceEntry, l string) { e.Notes = append(e.Notes, l) },
		},
	}
}

// startsEntry reports whether line opens a new entry given the current one
// and the line after it. Bullets never do. A bare date does once the date is
// taken. Otherwise the organization must be taken and the line must be a
// pipe header, carry a second date, or be a plain header directly above a
// bare date. Anything else stays in the current entry as a note.
func startsEntry(cur *ExperienceEntry, line, next string) bool {
	if cur.empty() || isBullet(line) {
		return false
	}
	if isDateOnly(line) {
		return cur.Date != ""
	}
	if cur.Organization == "" {
		return false
	}
	if strings.Contains(line, "|") {
		return true
	}
	if hasYearRange(line) {
		return cur.Date != ""
	}
	return cur.Date != "" && isDateOnly(next)
}

// ParseExperience groups an EXPERIENCE section into entries.
func ParseExperience(lines []string) []ExperienceEntry {
	out := []ExperienceEntry{}
	var cur ExperienceEntry

	for i, line := range lines {
		var next string
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		if startsEntry(&cur, line, next) {
			out = append(out, cur)
			cur = ExperienceEntry{}
		}
		if r, ok := pick(experienceRules(&cur), line); ok {
			r.set(&cur, line)
		}
	}
	if !cur.empty() {
		out = append(out, cur)
	}
	return out
}
