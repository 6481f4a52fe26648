// Package resume assembles a structured record from a parsed resume document.
package resume

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/resumatch/internal/doctree"
	"github.com/dgallion1/resumatch/internal/extract"
	"github.com/dgallion1/resumatch/internal/layout"
	"github.com/dgallion1/resumatch/internal/parser"
	"github.com/dgallion1/resumatch/internal/sections"
)

// WarnEmptyInput is reported when a document yields no text lines.
const WarnEmptyInput = "empty_input"

// Record is the structured form of one resume.
type Record struct {
	Profile    extract.Profile           `json:"profile"`
	Education  []extract.EducationEntry  `json:"education"`
	Experience []extract.ExperienceEntry `json:"experience"`
	Skills     []string                  `json:"skills"`
	Sections   *sections.Map             `json:"sections"`
	Warnings   []string                  `json:"warnings,omitempty"`
}

// Options tunes parsing.
type Options struct {
	Strategy extract.Strategy
	Parser   parser.Config
}

// DecodeError means the file could not be read as text. It is the only hard
// failure of a parse; every heuristic step downstream is total.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// experienceKeys is searched in order for the experience section.
var experienceKeys = []string{sections.Experience, sections.WorkExperience}

// ParseFile decodes a resume file and parses it.
func ParseFile(r io.Reader, filename string, opts Options) (*Record, error) {
	p, err := parser.ForFile(filename, opts.Parser)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(r, filename)
	if err != nil {
		return nil, &DecodeError{Filename: filename, Err: err}
	}
	return Parse(doc, opts), nil
}

// Parse orders a document's fragments into lines and parses them.
func Parse(doc *doctree.Document, opts Options) *Record {
	return ParseLines(layout.Itemize(doc.Fragments), opts)
}

// ParseLines runs segmentation and every extractor over reading-order lines.
// A single overlong line is reflowed once before segmentation.
func ParseLines(lines []string, opts Options) *Record {
	text := strings.Join(lines, "\n")
	if sections.NeedsReflow(text) {
		text = sections.Reflow(text)
	}
	lines = sections.SplitLines(text)

	m := sections.Segment(lines)
	rec := &Record{
		Profile:    extract.ParseProfile(m.Lines(sections.Profile), opts.Strategy),
		Education:  extract.ParseEducation(m.Lines(sections.Education)),
		Experience: []extract.ExperienceEntry{},
		Skills:     extract.SkillsFromSections(m),
		Sections:   m,
	}
	if key, ok := m.First(experienceKeys...); ok {
		rec.Experience = extract.ParseExperience(m.Lines(key))
	}
	if len(lines) == 0 {
		rec.Warnings = append(rec.Warnings, WarnEmptyInput)
	}
	return rec
}
