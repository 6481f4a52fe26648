// Package extract turns a section's lines into structured resume fields.
//
// Every extractor is a total function: a line that matches nothing lands in a
// free-text bucket and a field nobody claims stays empty.
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// rule pairs a line predicate with the setter that claims the line for one
// field of an entry E. Rules are evaluated in slice order; the first whose
// predicate matches wins.
type rule[E any] struct {
	field   string
	match   func(line string) bool
	claimed func(e *E) bool // nil for accumulating fields
	set     func(e *E, line string)
}

// pick returns the first rule whose predicate accepts line.
func pick[E any](rules []rule[E], line string) (rule[E], bool) {
	for _, r := range rules {
		if r.match(line) {
			return r, true
		}
	}
	return rule[E]{}, false
}

var (
	yearRangeRe = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\b.*\b(?:(?:19|20)\d{2}|present|current|now)\b`)
	monthRe     = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?`)
)

// hasYearRange reports whether line contains a 4-digit year followed by a
// second year or an open end such as "Present".
func hasYearRange(line string) bool { return yearRangeRe.MatchString(line) }

// isDateOnly reports whether line is nothing but a year range, optionally
// with month names and separators.
func isDateOnly(line string) bool {
	if !hasYearRange(line) {
		return false
	}
	rest := yearRangeRe.ReplaceAllString(line, "")
	rest = monthRe.ReplaceAllString(rest, "")
	return strings.Trim(rest, " \t-–—,.()/|:") == ""
}

var bulletMarkers = []string{"•", "●", "◦", "▪", "‣", "–", "-", "*"}

// stripBullet removes a leading bullet marker. ok is false if none is present.
func stripBullet(line string) (string, bool) {
	t := strings.TrimSpace(line)
	for _, m := range bulletMarkers {
		if strings.HasPrefix(t, m) {
			return strings.TrimSpace(strings.TrimPrefix(t, m)), true
		}
	}
	return t, false
}

// onlyPunct reports whether s has no letters or digits.
func onlyPunct(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
