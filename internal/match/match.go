// Package match scores a candidate's skills against a job's required skills.
package match

import (
	"math"
	"strings"
)

// Result is the overlap between candidate and job skills.
type Result struct {
	// MatchScore is RawScore rounded and capped at 100.
	MatchScore int `json:"matchScore"`
	// RawScore is 100 * matched / job skills, uncapped. It exceeds 100 when
	// several candidate skills match the same job skill.
	RawScore      float64  `json:"rawScore"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

// alias maps an abbreviation to the text its expansion must contain.
type alias struct{ short, expansion string }

var aliases = []alias{
	{"js", "javascript"},
	{"css", "css"},
	{"html", "html"},
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matches reports whether two normalized skills refer to the same thing:
// either contains the other, or an alias pair links them.
func matches(c, j string) bool {
	if c == "" || j == "" {
		return false
	}
	if strings.Contains(j, c) || strings.Contains(c, j) {
		return true
	}
	for _, a := range aliases {
		if (c == a.short && strings.Contains(j, a.expansion)) ||
			(j == a.short && strings.Contains(c, a.expansion)) {
			return true
		}
	}
	return false
}

func anyMatch(s string, others []string) bool {
	for _, o := range others {
		if matches(s, o) {
			return true
		}
	}
	return false
}

// Skills compares candidate skills with job skills. Matched skills come from
// the candidate list and missing skills from the job list, each computed in
// its own pass. Output keeps the input spelling.
func Skills(candidate, job []string) Result {
	res := Result{MatchedSkills: []string{}, MissingSkills: []string{}}
	if len(job) == 0 {
		return res
	}
	if len(candidate) == 0 {
		res.MissingSkills = append(res.MissingSkills, job...)
		return res
	}

	cn := make([]string, len(candidate))
	for i, s := range candidate {
		cn[i] = normalize(s)
	}
	jn := make([]string, len(job))
	for i, s := range job {
		jn[i] = normalize(s)
	}

	for i, c := range cn {
		if anyMatch(c, jn) {
			res.MatchedSkills = append(res.MatchedSkills, candidate[i])
		}
	}
	for i, j := range jn {
		if !anyMatch(j, cn) {
			res.MissingSkills = append(res.MissingSkills, job[i])
		}
	}

	res.RawScore = 100 * float64(len(res.MatchedSkills)) / float64(len(job))
	res.MatchScore = int(math.Min(math.Round(res.RawScore), 100))
	return res
}

// DefaultJobSkills stands in for a job's requirements when the posting
// cannot be resolved.
var DefaultJobSkills = []string{
	"JavaScript", "React", "Node.js", "MongoDB", "Express", "HTML", "CSS", "Git",
	"TypeScript", "Next.js", "Python", "Java", "SQL", "Docker", "AWS",
}
