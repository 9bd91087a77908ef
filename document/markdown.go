package document

import (
	"sort"
	"strings"

	"github.com/iw2rmb/remindr/richtext"
)

var markdownMarks = []struct {
	style       richtext.Style
	open, close string
}{
	{richtext.Code, "`", "`"},
	{richtext.Bold, "**", "**"},
	{richtext.Italic, "*", "*"},
	{richtext.Underline, "<u>", "</u>"},
	{richtext.Strikethrough, "~~", "~~"},
}

// Markdown renders d as CommonMark with a level-1 title heading.
func Markdown(d *Document) string {
	var sb strings.Builder
	if t := strings.TrimSpace(d.Title); t != "" {
		sb.WriteString("# ")
		sb.WriteString(t)
		sb.WriteString("\n\n")
	}
	for i, n := range d.Nodes {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(NodeMarkdown(n))
		sb.WriteString("\n")
	}
	return sb.String()
}

// NodeMarkdown renders a single node.
func NodeMarkdown(n Node) string {
	switch n.Kind {
	case KindHeading:
		level := MinHeadingLevel
		if n.Heading != nil {
			level = n.Heading.Level
		}
		// The document title owns level 1.
		return strings.Repeat("#", level+1) + " " + n.Content()
	case KindDivider:
		return "---"
	default:
		return styledMarkdown(n.Content(), n.Spans())
	}
}

// styledMarkdown wraps each run of uniformly styled text in its markers.
// Whitespace at run edges stays outside the markers.
func styledMarkdown(content string, spans []richtext.Span) string {
	if len(spans) == 0 {
		return content
	}
	cuts := []int{0, len(content)}
	for _, sp := range spans {
		cuts = append(cuts, clampIndex(sp.Start, len(content)), clampIndex(sp.End, len(content)))
	}
	sort.Ints(cuts)

	var sb strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		start, end := cuts[i], cuts[i+1]
		if start >= end {
			continue
		}
		run := content[start:end]

		var open, close []string
		for _, m := range markdownMarks {
			if styledAt(spans, m.style, start, end) {
				open = append(open, m.open)
				close = append([]string{m.close}, close...)
			}
		}
		if len(open) == 0 {
			sb.WriteString(run)
			continue
		}
		core := strings.TrimSpace(run)
		if core == "" {
			sb.WriteString(run)
			continue
		}
		lead := run[:strings.Index(run, core)]
		trail := run[len(lead)+len(core):]
		sb.WriteString(lead)
		sb.WriteString(strings.Join(open, ""))
		sb.WriteString(core)
		sb.WriteString(strings.Join(close, ""))
		sb.WriteString(trail)
	}
	return sb.String()
}

func styledAt(spans []richtext.Span, st richtext.Style, start, end int) bool {
	for _, sp := range spans {
		if sp.Style == st && sp.Contains(start, end) {
			return true
		}
	}
	return false
}
