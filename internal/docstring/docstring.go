// Package docstring converts raw docstring text into structured sections.
//
// Parsers are selected by style name and run once per documentation entity,
// after the full tree has been assembled. They are pure: the same text and
// context always yield the same sections.
package docstring

import (
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Registered style names.
const (
	StyleGoogle   = "google"
	StyleMarkdown = "markdown"
)

// Section is one structured slice of a parsed docstring.
type Section struct {
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	Items []Item `json:"items,omitempty"`
}

// Section kinds.
const (
	KindText       = "text"
	KindParameters = "parameters"
	KindReturns    = "returns"
	KindRaises     = "raises"
	KindAttributes = "attributes"
	KindExamples   = "examples"
	KindHeading    = "heading"
)

// Item is a named entry inside a labeled section.
type Item struct {
	Name        string `json:"name"`
	Annotation  string `json:"annotation,omitempty"`
	Description string `json:"description,omitempty"`
}

// Attribute is declared-attribute metadata forwarded by the caller.
type Attribute struct {
	Name       string
	Docstring  string
	Annotation string
}

// Context carries entity metadata available to a parser: the entity's
// declared attributes and, for classes, the initializer signature.
type Context struct {
	Attributes []Attribute
	Signature  string
}

// Parser converts raw docstring text into structured sections.
type Parser interface {
	Parse(text string, ctx Context) []Section
}

var styles = map[string]func(options map[string]any) Parser{
	StyleGoogle:   newGoogle,
	StyleMarkdown: newMarkdown,
}

// New returns the parser registered under the style name. Options are
// style-specific and passed through verbatim.
func New(style string, options map[string]any) (Parser, error) {
	factory, ok := styles[style]
	if !ok {
		return nil, errors.Errorf("unknown docstring style %q", style)
	}
	return factory(options), nil
}

// Styles returns the registered style names, sorted.
func Styles() []string {
	names := slices.Collect(maps.Keys(styles))
	slices.Sort(names)
	return names
}

// Clean normalizes docstring indentation: the first line is kept as is and
// the longest common leading whitespace of the remaining non-blank lines is
// removed. Leading and trailing blank lines are dropped.
func Clean(text string) string {
	lines := strings.Split(text, "\n")
	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	out := []string{strings.TrimSpace(lines[0])}
	for _, line := range lines[1:] {
		if margin > 0 && len(line) >= margin {
			line = line[margin:]
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return strings.Trim(strings.Join(out, "\n"), "\n")
}
