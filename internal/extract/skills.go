package extract

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/resumatch/internal/sections"
)

// MaxSkillLen bounds a skill token; tokens this long or longer are dropped.
const MaxSkillLen = 50

// skillLabels are category sub-headers inside a skills section.
var skillLabels = map[string]bool{
	"programming languages": true,
	"libraries/frameworks":  true,
	"tools / platforms":     true,
	"tools/platforms":       true,
	"databases":             true,
	"skills":                true,
	"technical skills":      true,
}

func keepSkill(tok string) bool {
	n := utf8.RuneCountInString(tok)
	return n > 0 && n < MaxSkillLen && !onlyPunct(tok)
}

// ParseSkills extracts a sorted skill list from a section's lines. Lines that are
// exactly a category label are skipped, comma-separated lines are split and
// other lines count as one skill. Duplicates are removed exactly first, then
// case-insensitively keeping the first spelling in sorted order.
func ParseSkills(lines []string) []string {
	seen := make(map[string]bool)
	var all []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || skillLabels[strings.ToLower(line)] {
			continue
		}
		toks := []string{line}
		if strings.Contains(line, ",") {
			toks = strings.Split(line, ",")
		}
		for _, tok := range toks {
			tok = strings.TrimSpace(tok)
			if !keepSkill(tok) || seen[tok] {
				continue
			}
			seen[tok] = true
			all = append(all, tok)
		}
	}
	sort.Strings(all)

	out := make([]string, 0, len(all))
	folded := make(map[string]bool, len(all))
	for _, s := range all {
		k := strings.ToLower(s)
		if folded[k] {
			continue
		}
		folded[k] = true
		out = append(out, s)
	}
	return out
}

var skillHints = []string{"skill", "tech", "programming", "framework"}

func mentionsSkills(s string) bool {
	s = strings.ToLower(s)
	for _, h := range skillHints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}

// SkillsFromSections reads SKILLS, then TECHNICAL SKILLS. If neither yields
// anything it falls back to the first section whose key or content hints at
// skills.
func SkillsFromSections(m *sections.Map) []string {
	for _, key := range []string{sections.Skills, sections.TechnicalSkills} {
		if lines := m.Lines(key); len(lines) > 0 {
			if out := ParseSkills(lines); len(out) > 0 {
				return out
			}
			break
		}
	}
	for _, key := range m.Keys() {
		lines := m.Lines(key)
		hit := mentionsSkills(key)
		for i := 0; !hit && i < len(lines); i++ {
			hit = mentionsSkills(lines[i])
		}
		if hit {
			return ParseSkills(lines)
		}
	}
	return []string{}
}
