package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/resumatch/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown resumes using goldmark. Headings become
// their own lines so they can be detected as section headers; list items
// keep a bullet marker.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var lines []string
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Heading:
				lines = append(lines, inlineText(node, src))
			case *ast.List:
				for item := node.FirstChild(); item != nil; item = item.NextSibling() {
					for i, l := range blockLines(item, src) {
						if i == 0 {
							l = "• " + l
						}
						lines = append(lines, l)
					}
				}
			case *ast.Paragraph, *ast.TextBlock, *ast.FencedCodeBlock, *ast.CodeBlock:
				lines = append(lines, blockLines(node, src)...)
			case *ast.ThematicBreak:
				// Horizontal rules separate layout only.
			default:
				walk(c)
			}
		}
	}
	walk(doc)

	return doctree.FromLines(trimExt(filename, ".md", ".markdown"), lines), nil
}

// blockLines returns the text of a block split on its source line breaks.
func blockLines(n ast.Node, src []byte) []string {
	var out []string
	for _, l := range strings.Split(extractText(n, src), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func inlineText(n ast.Node, src []byte) string {
	return strings.Join(blockLines(n, src), " ")
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	switch n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return buf.String()
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		if al, ok := c.(*ast.AutoLink); ok {
			buf.Write(al.URL(src))
			continue
		}
		if c.Type() == ast.TypeBlock && buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(extractText(c, src))
	}
	return buf.String()
}
