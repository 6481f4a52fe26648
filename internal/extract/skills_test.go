package extract

import (
	"strings"
	"testing"

	"github.com/dgallion1/resumatch/internal/sections"
)

func TestParseSkills_SortedAndSplit(t *testing.T) {
	got := ParseSkills([]string{"Python, Go, Rust", "TypeScript"})
	want := []string{"Go", "Python", "Rust", "TypeScript"}
	assertStrings(t, want, got)
}

func TestParseSkills_SkipsBareLabel(t *testing.T) {
	got := ParseSkills([]string{"Programming Languages", "Go"})
	assertStrings(t, []string{"Go"}, got)
}

func TestParseSkills_LabelWithContentIsSplit(t *testing.T) {
	got := ParseSkills([]string{"Programming Languages: C++, Java"})
	assertStrings(t, []string{"Java", "Programming Languages: C++"}, got)
}

func TestParseSkills_LengthBoundary(t *testing.T) {
	ok := strings.Repeat("a", MaxSkillLen-1)
	tooLong := strings.Repeat("b", MaxSkillLen)
	got := ParseSkills([]string{ok, tooLong})
	assertStrings(t, []string{ok}, got)
}

func TestParseSkills_DropsPunctuationTokens(t *testing.T) {
	got := ParseSkills([]string{"•", "Go, -, :", "C++"})
	assertStrings(t, []string{"C++", "Go"}, got)
}

func TestParseSkills_CaseInsensitiveDedup(t *testing.T) {
	got := ParseSkills([]string{"go, Go, SQL", "sql", "Go"})
	assertStrings(t, []string{"Go", "SQL"}, got)
}

func TestSkillsFromSections_PrefersSkillsSection(t *testing.T) {
	m := sections.Segment([]string{"Jane Doe", "TECHNICAL SKILLS", "Docker", "SKILLS", "Go"})
	assertStrings(t, []string{"Go"}, SkillsFromSections(m))
}

func TestSkillsFromSections_TechnicalWhenSkillsAbsent(t *testing.T) {
	m := sections.Segment([]string{"TECHNICAL SKILLS", "Docker, Kubernetes"})
	assertStrings(t, []string{"Docker", "Kubernetes"}, SkillsFromSections(m))
}

func TestSkillsFromSections_Fallback(t *testing.T) {
	m := sections.Segment([]string{
		"Jane Doe",
		"PROJECTS",
		"Frameworks used: React",
		"Node.js",
	})
	assertStrings(t, []string{"Frameworks used: React", "Node.js"}, SkillsFromSections(m))
}

func TestSkillsFromSections_None(t *testing.T) {
	m := sections.Segment([]string{"Jane Doe", "EDUCATION", "State University"})
	got := SkillsFromSections(m)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil skills, got %#v", got)
	}
}

func assertStrings(t *testing.T, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}
