package sections

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// cursor is the fold accumulator threaded through Segment.
type cursor struct {
	key string
	m   *Map
}

func (c cursor) step(line string) cursor {
	line = strings.TrimSpace(line)
	if line == "" {
		return c
	}
	if key, ok := MatchHeader(line); ok {
		c.m.ensure(key)
		c.key = key
		return c
	}
	c.m.add(c.key, line)
	return c
}

// Segment buckets lines under the most recently seen header. Lines before
// the first header go to Profile, which is always present in the result.
func Segment(lines []string) *Map {
	acc := cursor{key: Profile, m: NewMap()}
	acc.m.ensure(Profile)
	for _, l := range lines {
		acc = acc.step(l)
	}
	return acc.m
}

// ReflowThreshold is the length a break-free text must exceed before Reflow
// is worth applying.
const ReflowThreshold = 200

// NeedsReflow reports whether text looks like a single-line extraction.
func NeedsReflow(text string) bool {
	return !strings.ContainsAny(text, "\r\n") && utf8.RuneCountInString(text) > ReflowThreshold
}

var (
	// Longer headers come first so alternation prefers them.
	reflowHeaderRe = regexp.MustCompile(`(?i)\b(WORK EXPERIENCE|TECHNICAL SKILLS|PROJECTS / OPEN-SOURCE|CERTIFICATIONS|EDUCATION|EXPERIENCE|PROJECTS|SKILLS|AWARDS|HONORS)\b`)
	reflowYearsRe  = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*[-–]\s*((?:19|20)\d{2}|present|current)\b`)
	reflowSentRe   = regexp.MustCompile(`([.!?])\s+([A-Z])`)
	reflowPipeRe   = regexp.MustCompile(`\s*\|\s*`)
)

// Reflow inserts line breaks into a single-line text dump: around header
// keywords, around year ranges, after sentence ends and at pipes. It is
// lossy and meant to run once, before SplitLines.
func Reflow(text string) string {
	text = reflowHeaderRe.ReplaceAllStringFunc(text, func(h string) string {
		return "\n" + strings.ToUpper(h) + "\n"
	})
	text = reflowYearsRe.ReplaceAllString(text, "\n$1 - $2\n")
	text = reflowSentRe.ReplaceAllString(text, "$1\n$2")
	text = reflowPipeRe.ReplaceAllString(text, "\n")
	return text
}

// SplitLines splits text on line breaks, trims each line and drops empties.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
