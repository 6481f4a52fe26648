package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Profile holds contact fields. Empty strings mean no match.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

// Strategy selects how profile fields are picked.
type Strategy string

const (
	// StrategyRegex takes the first match of each field in the joined text.
	StrategyRegex Strategy = "regex"
	// StrategyScored rates every line per field and keeps the best one,
	// falling back to StrategyRegex for fields with no positive candidate.
	StrategyScored Strategy = "scored"
)

// ParseStrategy validates a strategy name. Empty means StrategyRegex.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyRegex:
		return StrategyRegex, nil
	case StrategyScored:
		return StrategyScored, nil
	}
	return "", fmt.Errorf("unknown profile strategy %q", s)
}

var (
	nameRe     = regexp.MustCompile(`\b([A-Z][a-zA-Z]+ [A-Z][a-zA-Z]+)\b`)
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)+`)
	phoneRe    = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?|\b\d{1,3}[-.\s]?)?(?:\(\d{3}\)|\b\d{3})[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	locationRe = regexp.MustCompile(`[A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)* ?[,\-] ?[A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*(?:,? (?:[A-Z]{2}\b|\d{5,6}))?`)
	urlRe      = regexp.MustCompile(`https?://[^\s,;|]+`)
	hostRe     = regexp.MustCompile(`(?i)\b(?:www\.)?[a-z0-9\-]+(?:\.[a-z0-9\-]+)*\.(?:com|org|net|io|dev|me|co|ai|app|edu|info|tech|xyz|in|uk|us|ca|de)\b(?:/[^\s,;|]*)?`)
)

func findURL(text string) string {
	if m := urlRe.FindString(text); m != "" {
		return strings.TrimRight(m, ".)")
	}
	// Strip emails so their domains are not mistaken for links.
	text = emailRe.ReplaceAllString(text, " ")
	return strings.TrimRight(hostRe.FindString(text), ".)")
}

// profileField describes one contact field for both strategies.
type profileField struct {
	find  func(text string) string
	score func(line string) int
	set   func(p *Profile, v string)
}

var profileFields = []profileField{
	{
		find: func(t string) string {
			if m := nameRe.FindStringSubmatch(t); m != nil {
				return m[1]
			}
			return ""
		},
		score: ScoreName,
		set:   func(p *Profile, v string) { p.Name = v },
	},
	{
		find:  emailRe.FindString,
		score: ScoreEmail,
		set:   func(p *Profile, v string) { p.Email = v },
	},
	{
		find:  func(t string) string { return strings.TrimSpace(phoneRe.FindString(t)) },
		score: ScorePhone,
		set:   func(p *Profile, v string) { p.Phone = v },
	},
	{
		find:  locationRe.FindString,
		score: ScoreLocation,
		set:   func(p *Profile, v string) { p.Location = v },
	},
	{
		find:  findURL,
		score: ScoreURL,
		set:   func(p *Profile, v string) { p.URL = v },
	},
}

// ParseProfile reads contact fields from the profile section. Each field
// is found independently; a miss leaves it empty.
func ParseProfile(lines []string, strategy Strategy) Profile {
	var p Profile
	blob := strings.Join(lines, " ")
	for i, f := range profileFields {
		v := f.find(blob)
		if strategy == StrategyScored {
			if best := bestCandidate(lines, f, i == 0); best != "" {
				v = best
			}
		}
		f.set(&p, v)
	}
	return p
}

// bestCandidate returns the field value from the highest-scoring line. Ties
// go to the earliest line. A name is the whole line; other fields are the
// pattern match within it.
func bestCandidate(lines []string, f profileField, wholeLine bool) string {
	best, bestScore := "", 0
	for _, l := range lines {
		l = strings.TrimSpace(l)
		s := f.score(l)
		if s <= bestScore {
			continue
		}
		v := l
		if !wholeLine {
			if v = f.find(l); v == "" {
				continue
			}
		}
		best, bestScore = v, s
	}
	return best
}
