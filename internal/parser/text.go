package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/resumatch/internal/doctree"
)

// TextParser handles plain text files. Every line becomes one fragment.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Keep blank lines so vertical gaps survive in fragment positions.
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return doctree.FromLines(trimExt(filename, ".txt"), lines), nil
}
