package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/resumatch/internal/resume"
)

// ResumeParser parses uploaded files and records each outcome in ParseStats.
type ResumeParser struct {
	opts  resume.Options
	stats *ParseStats
}

func NewResumeParser(opts resume.Options, stats *ParseStats) *ResumeParser {
	return &ResumeParser{opts: opts, stats: stats}
}

func (p *ResumeParser) Parse(r io.Reader, filename string) (*resume.Record, error) {
	format := strings.ToLower(filepath.Ext(filename))
	start := time.Now()
	rec, err := resume.ParseFile(r, filename, p.opts)
	if err != nil {
		p.stats.RecordFailure(format)
		return nil, err
	}
	p.stats.Record(format, time.Since(start).Milliseconds())
	return rec, nil
}
