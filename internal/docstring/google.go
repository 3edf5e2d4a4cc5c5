package docstring

import (
	"regexp"
	"strings"
)

// googleParser splits docstrings written in the google style: free text
// interleaved with labeled, indented blocks such as "Arguments:" and
// "Returns:".
type googleParser struct {
	// trimDoctestFlags removes "# doctest: ..." markers from example blocks.
	trimDoctestFlags bool
}

func newGoogle(options map[string]any) Parser {
	p := &googleParser{trimDoctestFlags: true}
	if v, ok := options["trim_doctest_flags"].(bool); ok {
		p.trimDoctestFlags = v
	}
	return p
}

var googleSectionKinds = map[string]string{
	"args":       KindParameters,
	"arguments":  KindParameters,
	"params":     KindParameters,
	"parameters": KindParameters,
	"return":     KindReturns,
	"returns":    KindReturns,
	"raises":     KindRaises,
	"exceptions": KindRaises,
	"attributes": KindAttributes,
	"example":    KindExamples,
	"examples":   KindExamples,
}

var doctestFlag = regexp.MustCompile(`(?m)\s*#\s*doctest:.*$`)

func (p *googleParser) Parse(text string, ctx Context) []Section {
	var sections []Section
	var plain []string
	flushPlain := func() {
		body := strings.Trim(strings.Join(plain, "\n"), "\n")
		plain = nil
		if body != "" {
			sections = append(sections, Section{Kind: KindText, Body: body})
		}
	}

	lines := strings.Split(Clean(text), "\n")
	sawAttributes := false
	for i := 0; i < len(lines); i++ {
		kind, ok := sectionHeader(lines[i])
		if !ok {
			plain = append(plain, lines[i])
			continue
		}
		block, next := indentedBlock(lines, i+1)
		if len(block) == 0 {
			plain = append(plain, lines[i])
			continue
		}
		flushPlain()
		i = next - 1
		switch kind {
		case KindParameters, KindRaises, KindAttributes:
			sections = append(sections, Section{Kind: kind, Items: parseItems(block)})
			if kind == KindAttributes {
				sawAttributes = true
			}
		case KindExamples:
			body := strings.Join(block, "\n")
			if p.trimDoctestFlags {
				body = doctestFlag.ReplaceAllString(body, "")
			}
			sections = append(sections, Section{Kind: KindExamples, Body: body})
		default:
			sections = append(sections, Section{Kind: kind, Body: strings.Join(block, "\n")})
		}
	}
	flushPlain()

	// Declared attributes supplied by the caller document the entity even
	// when the text itself has no attributes block.
	if !sawAttributes && len(ctx.Attributes) > 0 {
		items := make([]Item, 0, len(ctx.Attributes))
		for _, attr := range ctx.Attributes {
			items = append(items, Item{Name: attr.Name, Annotation: attr.Annotation, Description: attr.Docstring})
		}
		sections = append(sections, Section{Kind: KindAttributes, Items: items})
	}
	return sections
}

// sectionHeader recognizes lines of the form "Arguments:" with no trailing
// content.
func sectionHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, ":") {
		return "", false
	}
	kind, ok := googleSectionKinds[strings.ToLower(strings.TrimSuffix(trimmed, ":"))]
	return kind, ok
}

// indentedBlock collects the run of indented or blank lines starting at
// from, dedented, and returns it with the index of the first line after it.
func indentedBlock(lines []string, from int) ([]string, int) {
	var block []string
	i := from
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			block = append(block, "")
			continue
		}
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			break
		}
		block = append(block, line)
	}
	for len(block) > 0 && block[len(block)-1] == "" {
		block = block[:len(block)-1]
	}
	if len(block) == 0 {
		return nil, from
	}
	return strings.Split(Clean(strings.Join(block, "\n")), "\n"), i
}

var itemHeader = regexp.MustCompile(`^(\w[\w.\[\], ]*?)(?:\s*\(([^)]*)\))?:\s*(.*)$`)

// parseItems reads "name (annotation): description" entries, with
// continuation lines indented below their entry.
func parseItems(block []string) []Item {
	var items []Item
	for _, line := range block {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			if len(items) > 0 {
				last := &items[len(items)-1]
				last.Description = strings.TrimSpace(last.Description + " " + strings.TrimSpace(line))
			}
			continue
		}
		m := itemHeader.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		items = append(items, Item{Name: strings.TrimSpace(m[1]), Annotation: m[2], Description: m[3]})
	}
	return items
}
