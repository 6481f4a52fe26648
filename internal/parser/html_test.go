package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/resumatch/internal/layout"
)

func TestHTMLParser_BlocksAndBullets(t *testing.T) {
	input := `<html><head><title>Jane Doe CV</title><style>p{}</style></head>
<body>
<nav>Home | About</nav>
<h1>Jane   Doe</h1>
<p>jane@example.com<br>555-123-4567</p>
<h2>Skills</h2>
<ul><li>Go</li><li>Postgres <b>tuning</b></li></ul>
<script>var x = 1;</script>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "cv.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Jane Doe CV" {
		t.Errorf("expected title %q, got %q", "Jane Doe CV", doc.Title)
	}

	want := []string{
		"Jane Doe",
		"jane@example.com 555-123-4567",
		"Skills",
		"• Go",
		"• Postgres tuning",
	}
	got := layout.Itemize(doc.Fragments)
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestHTMLParser_TitleFromFilename(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader("<p>hello</p>"), "resume.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "resume" {
		t.Errorf("expected title %q, got %q", "resume", doc.Title)
	}
}
