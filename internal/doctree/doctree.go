package doctree

// Fragment is one atomic piece of positioned text. Y grows upward, so the
// top of a page has the largest Y.
type Fragment struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Document is the parsed form of one uploaded resume file.
type Document struct {
	Title     string     // From metadata or filename
	Pages     int        // Source pages (1 for line-oriented formats)
	Fragments []Fragment // Already normalized to one coordinate space
}

// LineHeight is the vertical step used when synthesizing fragments from
// line-oriented formats. It is well above the itemizer's merge tolerance.
const LineHeight = 12.0

// FromLines lays out each non-blank line as its own fragment, top to bottom.
func FromLines(title string, lines []string) *Document {
	doc := &Document{Title: title, Pages: 1}
	y := float64(len(lines)) * LineHeight
	for _, l := range lines {
		y -= LineHeight
		if l == "" {
			continue
		}
		doc.Fragments = append(doc.Fragments, Fragment{
			Text:   l,
			Y:      y,
			Width:  float64(len(l)),
			Height: LineHeight,
		})
	}
	return doc
}
