package docstring

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownParser sections a docstring by its markdown headings: everything
// before the first heading is a text section, each heading starts a new
// section titled after it.
type markdownParser struct {
	md goldmark.Markdown
}

func newMarkdown(_ map[string]any) Parser {
	return &markdownParser{md: goldmark.New()}
}

func (p *markdownParser) Parse(raw string, _ Context) []Section {
	source := []byte(Clean(raw))
	doc := p.md.Parser().Parse(text.NewReader(source))

	var sections []Section
	current := Section{Kind: KindText}
	var body []string
	flush := func() {
		current.Body = strings.Trim(strings.Join(body, "\n"), "\n")
		body = nil
		if current.Body != "" || current.Title != "" {
			sections = append(sections, current)
		}
	}

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if heading, ok := child.(*ast.Heading); ok {
			flush()
			current = Section{Kind: KindHeading, Title: string(heading.Text(source))}
			continue
		}
		body = append(body, blockText(child, source))
	}
	flush()
	return sections
}

// blockText recovers a block's raw text from its source segments, falling
// back to nested blocks for containers such as lists.
func blockText(n ast.Node, source []byte) string {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		var sb strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(source))
		}
		return strings.TrimRight(sb.String(), "\n")
	}
	var parts []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t := blockText(child, source); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
