// Package sections buckets resume lines under detected section headers.
package sections

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Profile is the implicit section holding lines seen before any header.
const Profile = "PROFILE"

// Section keys.
const (
	Education          = "EDUCATION"
	Experience         = "EXPERIENCE"
	WorkExperience     = "WORK EXPERIENCE"
	Projects           = "PROJECTS"
	ProjectsOpenSource = "PROJECTS / OPEN-SOURCE"
	Skills             = "SKILLS"
	TechnicalSkills    = "TECHNICAL SKILLS"
	Certifications     = "CERTIFICATIONS"
	Awards             = "AWARDS"
	Honors             = "HONORS"
	Volunteer          = "VOLUNTEER"
	Languages          = "LANGUAGES"
	References         = "REFERENCES"
	Contact            = "CONTACT"
	Interests          = "INTERESTS"
)

// MaxHeaderLen is the longest line still considered for a partial header match.
const MaxHeaderLen = 50

type header struct {
	key string
	// partial reports whether an uppercased short line names this section.
	partial func(upper string) bool
}

func containsKey(key string) func(string) bool {
	return func(upper string) bool { return strings.Contains(upper, key) }
}

func containsSkill(upper string) bool { return strings.Contains(upper, "SKILL") }

// headers is the closed vocabulary in match priority order.
var headers = []header{
	{Education, containsKey(Education)},
	{Experience, containsKey(Experience)},
	{WorkExperience, containsKey(WorkExperience)},
	{Projects, containsKey(Projects)},
	{ProjectsOpenSource, func(upper string) bool {
		return strings.Contains(upper, "PROJECTS") && strings.Contains(upper, "OPEN-SOURCE")
	}},
	{Skills, containsSkill},
	{TechnicalSkills, containsSkill},
	{Certifications, containsKey(Certifications)},
	{Awards, containsKey(Awards)},
	{Honors, containsKey(Honors)},
	{Volunteer, containsKey(Volunteer)},
	{Languages, containsKey(Languages)},
	{References, containsKey(References)},
	{Contact, containsKey(Contact)},
	{Interests, containsKey(Interests)},
}

// Vocabulary returns the known section keys in priority order, excluding Profile.
func Vocabulary() []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = h.key
	}
	return out
}

// IsKnown reports whether key is Profile or part of the header vocabulary.
func IsKnown(key string) bool {
	if key == Profile {
		return true
	}
	for _, h := range headers {
		if h.key == key {
			return true
		}
	}
	return false
}

// MatchHeader returns the section key a line switches to, if it is a header.
// An exact case-insensitive match wins; otherwise a line of at most
// MaxHeaderLen characters matches the first header whose keyword it contains.
func MatchHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	upper := strings.ToUpper(trimmed)
	for _, h := range headers {
		if upper == h.key {
			return h.key, true
		}
	}
	if len([]rune(trimmed)) > MaxHeaderLen {
		return "", false
	}
	for _, h := range headers {
		if h.partial(upper) {
			return h.key, true
		}
	}
	return "", false
}

// Map is an insertion-ordered mapping from section key to content lines.
type Map struct {
	keys  []string
	lines map[string][]string
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{lines: make(map[string][]string)}
}

func (m *Map) ensure(key string) {
	if _, ok := m.lines[key]; ok {
		return
	}
	m.keys = append(m.keys, key)
	m.lines[key] = []string{}
}

func (m *Map) add(key, line string) {
	m.ensure(key)
	m.lines[key] = append(m.lines[key], line)
}

// Keys returns section keys in first-appearance order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Has reports whether the section was seen, even if it has no content.
func (m *Map) Has(key string) bool {
	_, ok := m.lines[key]
	return ok
}

// Lines returns a section's content lines, or nil if the section is absent.
func (m *Map) Lines(key string) []string {
	return m.lines[key]
}

// Len returns the number of sections.
func (m *Map) Len() int { return len(m.keys) }

// First returns the first key from candidates that is present in the map.
func (m *Map) First(candidates ...string) (string, bool) {
	for _, k := range candidates {
		if m.Has(k) {
			return k, true
		}
	}
	return "", false
}

// Flatten re-emits the map as lines: profile content first, then each
// section's canonical header followed by its content. Segmenting the result
// yields an equal map.
func (m *Map) Flatten() []string {
	var out []string
	for _, k := range m.keys {
		if k != Profile {
			out = append(out, k)
		}
		out = append(out, m.lines[k]...)
	}
	return out
}

// Equal reports whether both maps have the same keys in the same order with
// the same content.
func (m *Map) Equal(o *Map) bool {
	if len(m.keys) != len(o.keys) {
		return false
	}
	for i, k := range m.keys {
		if o.keys[i] != k {
			return false
		}
		a, b := m.lines[k], o.lines[k]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.lines[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping the key order of the input.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = *NewMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var lines []string
		if err := dec.Decode(&lines); err != nil {
			return err
		}
		m.ensure(key)
		m.lines[key] = append(m.lines[key], lines...)
	}
	_, err := dec.Token()
	return err
}
