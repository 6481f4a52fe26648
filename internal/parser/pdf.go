package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/dgallion1/resumatch/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

const (
	// glyphRowTolerance groups glyphs drawn on the same baseline.
	glyphRowTolerance = 0.5
	// wordSpaceMultiplier scales font size into the gap that separates words.
	wordSpaceMultiplier = 0.3
	// pageGap separates stacked pages in the shared coordinate space.
	pageGap = 50.0
)

// PDFParser handles PDF files. It reads positioned glyphs with the Go
// library and falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "resumatch-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	title := trimExt(filename, ".pdf")
	doc, err := extractPDFFragments(tmpPath)
	if err == nil && len(doc.Fragments) > 0 {
		doc.Title = title
		return doc, nil
	}
	if !p.FallbackPdftotext {
		if err != nil {
			return nil, fmt.Errorf("extract pdf text: %w", err)
		}
		doc.Title = title
		return doc, nil
	}

	text, ferr := extractPdftotext(tmpPath)
	if ferr != nil {
		if err != nil {
			return nil, fmt.Errorf("extract pdf text: %w", err)
		}
		// Positioned read worked but found nothing; report an empty document.
		doc.Title = title
		return doc, nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\f", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return doctree.FromLines(title, lines), nil
}

func extractPDFFragments(path string) (*doctree.Document, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := &doctree.Document{Pages: reader.NumPage()}
	floor := 0.0
	for i := 1; i <= doc.Pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts, err := pageTexts(page)
		if err != nil {
			continue
		}
		runs := mergeGlyphs(texts)
		if len(runs) == 0 {
			continue
		}

		// Stack this page below everything already placed.
		top, bottom := runs[0].Y, runs[0].Y
		for _, r := range runs[1:] {
			top = math.Max(top, r.Y)
			bottom = math.Min(bottom, r.Y)
		}
		shift := 0.0
		if len(doc.Fragments) > 0 {
			shift = floor - pageGap - top
		}
		for _, r := range runs {
			r.Y += shift
			doc.Fragments = append(doc.Fragments, r)
		}
		floor = bottom + shift
	}
	return doc, nil
}

// pageTexts reads a page's glyphs. Malformed content streams make the
// library panic, so that is turned into an error.
func pageTexts(page pdflib.Page) (texts []pdflib.Text, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read page content: %v", rec)
		}
	}()
	return page.Content().Text, nil
}

// mergeGlyphs joins per-glyph text into word runs. Glyphs on one baseline
// merge while the horizontal gap stays under a fraction of the font size;
// whitespace glyphs always end a run.
func mergeGlyphs(texts []pdflib.Text) []doctree.Fragment {
	glyphs := make([]pdflib.Text, 0, len(texts))
	for _, t := range texts {
		if t.S != "" {
			glyphs = append(glyphs, t)
		}
	}
	sort.SliceStable(glyphs, func(i, j int) bool {
		if math.Abs(glyphs[i].Y-glyphs[j].Y) > glyphRowTolerance {
			return glyphs[i].Y > glyphs[j].Y
		}
		return glyphs[i].X < glyphs[j].X
	})

	var out []doctree.Fragment
	var cur *doctree.Fragment
	var curSize float64
	flush := func() {
		if cur != nil && strings.TrimSpace(cur.Text) != "" {
			cur.Text = strings.TrimSpace(cur.Text)
			out = append(out, *cur)
		}
		cur = nil
	}

	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}
		if cur != nil {
			threshold := wordSpaceMultiplier * curSize
			if curSize == 0 {
				threshold = 3.0
			}
			gap := g.X - (cur.X + cur.Width)
			if math.Abs(g.Y-cur.Y) > glyphRowTolerance || gap > threshold {
				flush()
			}
		}
		if cur == nil {
			cur = &doctree.Fragment{Text: g.S, X: g.X, Y: g.Y, Width: g.W, Height: g.FontSize}
			curSize = g.FontSize
			continue
		}
		cur.Text += g.S
		cur.Width = g.X + g.W - cur.X
	}
	flush()
	return out
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
