package extract

import "testing"

func TestParseEducation_SingleEntry(t *testing.T) {
	got := ParseEducation([]string{"MIT University", "Bachelor of Science", "2018 - 2022", "GPA: 3.9/4.0", "Dean's list"})
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(got), got)
	}
	e := got[0]
	if e.Institution != "MIT University" {
		t.Errorf("expected institution %q, got %q", "MIT University", e.Institution)
	}
	if e.Degree != "Bachelor of Science" {
		t.Errorf("expected degree %q, got %q", "Bachelor of Science", e.Degree)
	}
	if e.Date != "2018 - 2022" {
		t.Errorf("expected date %q, got %q", "2018 - 2022", e.Date)
	}
	if e.GPA != "GPA: 3.9/4.0" {
		t.Errorf("expected gpa %q, got %q", "GPA: 3.9/4.0", e.GPA)
	}
	if len(e.Description) != 1 || e.Description[0] != "Dean's list" {
		t.Errorf("expected description [Dean's list], got %q", e.Description)
	}
}

func TestParseEducation_ClaimedFieldStartsNewEntry(t *testing.T) {
	got := ParseEducation([]string{
		"State College", "B.Tech in Computer Science", "2014 - 2018",
		"Tech Institute", "M.Tech", "2018 - Present",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(got), got)
	}
	if got[0].Institution != "State College" || got[1].Institution != "Tech Institute" {
		t.Errorf("unexpected institutions: %q, %q", got[0].Institution, got[1].Institution)
	}
	if got[1].Degree != "M.Tech" || got[1].Date != "2018 - Present" {
		t.Errorf("unexpected second entry: %+v", got[1])
	}
}

func TestParseEducation_Empty(t *testing.T) {
	got := ParseEducation(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil entries, got %#v", got)
	}
}

func TestEducationRules_Priority(t *testing.T) {
	want := []string{"institution", "degree", "date", "gpa"}
	if len(educationRules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(educationRules))
	}
	for i, r := range educationRules {
		if r.field != want[i] {
			t.Errorf("rule[%d]: expected %q, got %q", i, want[i], r.field)
		}
	}
	// A line naming both a school and a degree belongs to the institution.
	r, ok := pick(educationRules, "Bachelor of Arts, Springfield University")
	if !ok || r.field != "institution" {
		t.Errorf("expected institution rule, got %q", r.field)
	}
}

func TestParseExperience_PipeHeaderAndBullets(t *testing.T) {
	got := ParseExperience([]string{
		"Acme Corp | Senior Engineer",
		"Jan 2020 - Present",
		"• Built the billing service",
		"- Cut p99 latency in half",
		"Globex | Engineer",
		"2017 - 2019",
		"• Wrote tooling",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(got), got)
	}
	first := got[0]
	if first.Organization != "Acme Corp" || first.Position != "Senior Engineer" {
		t.Errorf("unexpected org/position: %q / %q", first.Organization, first.Position)
	}
	if first.Date != "Jan 2020 - Present" {
		t.Errorf("expected date %q, got %q", "Jan 2020 - Present", first.Date)
	}
	if len(first.Descriptions) != 2 || first.Descriptions[0] != "Built the billing service" || first.Descriptions[1] != "Cut p99 latency in half" {
		t.Errorf("unexpected descriptions: %q", first.Descriptions)
	}
	if len(first.Notes) != 0 {
		t.Errorf("expected no notes after descriptions, got %q", first.Notes)
	}

	second := got[1]
	if second.Organization != "Globex" || second.Position != "Engineer" || second.Date != "2017 - 2019" {
		t.Errorf("unexpected second entry: %+v", second)
	}
	if len(second.Descriptions) != 1 {
		t.Errorf("expected 1 description, got %q", second.Descriptions)
	}
}

func TestParseExperience_NotesBeforeDescriptions(t *testing.T) {
	got := ParseExperience([]string{"Initech", "Remote", "2015 - 2016", "• TPS reports"})
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(got), got)
	}
	e := got[0]
	if e.Organization != "Initech" || e.Position != "" {
		t.Errorf("expected organization only, got %q / %q", e.Organization, e.Position)
	}
	if len(e.Notes) != 1 || e.Notes[0] != "Remote" {
		t.Errorf("expected notes [Remote], got %q", e.Notes)
	}
	if e.Date != "2015 - 2016" {
		t.Errorf("expected date %q, got %q", "2015 - 2016", e.Date)
	}
}

func TestParseExperience_DateFirstLayout(t *testing.T) {
	got := ParseExperience([]string{
		"2021 - Present", "Globex | Staff Engineer", "• Led platform team",
		"2018 - 2021", "Acme | Engineer",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(got), got)
	}
	if got[0].Date != "2021 - Present" || got[0].Organization != "Globex" {
		t.Errorf("unexpected first entry: %+v", got[0])
	}
	if got[1].Date != "2018 - 2021" || got[1].Organization != "Acme" {
		t.Errorf("unexpected second entry: %+v", got[1])
	}
}

func TestParseExperience_BulletOnlyNeverSplits(t *testing.T) {
	got := ParseExperience([]string{"• one", "• two", "* three"})
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if len(got[0].Descriptions) != 3 {
		t.Errorf("expected 3 descriptions, got %q", got[0].Descriptions)
	}
}

func TestParseExperience_NoteAfterDescriptions(t *testing.T) {
	got := ParseExperience([]string{
		"Acme Corp | Backend Engineer",
		"2019 - 2021",
		"• Built payment services",
		"Tech stack: Go, Kafka, Postgres",
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(got), got)
	}
	e := got[0]
	if e.Organization != "Acme Corp" || e.Date != "2019 - 2021" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if len(e.Notes) != 1 || e.Notes[0] != "Tech stack: Go, Kafka, Postgres" {
		t.Errorf("expected tech stack line in notes, got %q", e.Notes)
	}
}

func TestParseExperience_PlainHeaderAboveDate(t *testing.T) {
	got := ParseExperience([]string{
		"Acme Corp",
		"2019 - 2021",
		"• Built payment services",
		"Stack: Go",
		"Globex",
		"2016 - 2019",
		"• Wrote tooling",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(got), got)
	}
	if len(got[0].Notes) != 1 || got[0].Notes[0] != "Stack: Go" {
		t.Errorf("expected notes [Stack: Go], got %q", got[0].Notes)
	}
	if got[1].Organization != "Globex" || got[1].Date != "2016 - 2019" {
		t.Errorf("unexpected second entry: %+v", got[1])
	}
}
