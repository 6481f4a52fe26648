package extract

import (
	"regexp"
	"strings"
)

var (
	strictNameRe  = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
	initialNameRe = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z]\. [A-Z][a-z]+$`)
	digitRe       = regexp.MustCompile(`\d`)

	looseEmailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

	fullPhoneRe  = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?|\b\d{1,3}[-.\s]?)?(?:\(\d{3}\)|\b\d{3})[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	plainPhoneRe = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
	tenDigitRe   = regexp.MustCompile(`\d{10}`)

	cityRegionZipRe = regexp.MustCompile(`[A-Z][a-zA-Z\s]+, [A-Z]{2},? \d{5,6}`)
	cityRegionRe    = regexp.MustCompile(`[A-Z][a-zA-Z\s]+, [A-Z]{2}`)
	cityZipRe       = regexp.MustCompile(`[A-Z][a-zA-Z\s]+(?:,|-) \d{5,6}`)
	cityCountryRe   = regexp.MustCompile(`[A-Z][a-zA-Z\s]+, [A-Z][a-zA-Z\s]+`)

	schemeURLRe = regexp.MustCompile(`https?://[^\s]+`)
	looseHostRe = regexp.MustCompile(`[a-zA-Z0-9]+\.[a-zA-Z]{2,}(?:/[^\s]*)?`)
)

// ScoreName rates how much a line looks like a person's name.
func ScoreName(text string) int {
	score := 0
	if strictNameRe.MatchString(text) {
		score += 5
	}
	if initialNameRe.MatchString(text) {
		score += 4
	}
	if text == strings.ToUpper(text) && len(strings.Split(text, " ")) == 2 {
		score += 3
	}
	if strings.Contains(text, "@") {
		score -= 10
	}
	if digitRe.MatchString(text) {
		score -= 8
	}
	if strings.Contains(text, "|") {
		score -= 6
	}
	if len(text) > 30 {
		score -= 5
	}
	return score
}

// ScoreEmail rates a line as an email candidate.
func ScoreEmail(text string) int {
	switch {
	case looseEmailRe.MatchString(text):
		return 10
	case strings.Contains(text, "@"):
		return 5
	}
	return -10
}

// ScorePhone rates a line as a phone candidate.
func ScorePhone(text string) int {
	switch {
	case fullPhoneRe.MatchString(text):
		return 10
	case plainPhoneRe.MatchString(text):
		return 8
	case tenDigitRe.MatchString(text):
		return 6
	}
	return -10
}

// ScoreLocation rates a line as a location candidate.
func ScoreLocation(text string) int {
	switch {
	case cityRegionZipRe.MatchString(text):
		return 8
	case cityRegionRe.MatchString(text):
		return 6
	case cityZipRe.MatchString(text):
		return 5
	case cityCountryRe.MatchString(text):
		return 4
	}
	return -5
}

// ScoreURL rates a line as a link candidate.
func ScoreURL(text string) int {
	switch {
	case schemeURLRe.MatchString(text):
		return 8
	case looseHostRe.MatchString(text):
		return 6
	}
	return -5
}
