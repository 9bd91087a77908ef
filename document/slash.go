package document

import (
	"strings"

	"github.com/google/uuid"

	"github.com/iw2rmb/remindr/richtext"
)

// SlashMode says how a slash command lands in the document.
type SlashMode int

const (
	// SlashReplace swaps the current node for the new one.
	SlashReplace SlashMode = iota
	// SlashInsertAfter keeps the current node and adds the new one after it.
	SlashInsertAfter
)

// SlashCommand is one entry of the "/" block menu.
type SlashCommand struct {
	ID       string
	Label    string
	Shortcut string
	Action   Action
}

var slashCommands = []SlashCommand{
	{ID: "text", Label: "Text", Action: ActionToText},
	{ID: "heading-2", Label: "Heading 2", Shortcut: "##", Action: ActionToHeading2},
	{ID: "heading-3", Label: "Heading 3", Shortcut: "###", Action: ActionToHeading3},
	{ID: "divider", Label: "Divider", Shortcut: "---", Action: ActionToDivider},
}

// SlashCommands returns the block menu entries in display order.
func SlashCommands() []SlashCommand {
	out := make([]SlashCommand, len(slashCommands))
	copy(out, slashCommands)
	return out
}

// FilterSlashCommands keeps commands whose label or shortcut contains query,
// ignoring case.
func FilterSlashCommands(query string) []SlashCommand {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []SlashCommand
	for _, c := range slashCommands {
		if q == "" || strings.Contains(strings.ToLower(c.Label), q) || strings.Contains(c.Shortcut, q) {
			out = append(out, c)
		}
	}
	return out
}

// SlashQuery returns the text typed after the last "/" in content, and
// whether a slash was found.
func SlashQuery(content string) (string, bool) {
	i := strings.LastIndexByte(content, '/')
	if i < 0 {
		return "", false
	}
	return content[i+1:], true
}

// StripSlashCommand removes the trailing "/query" from content.
func StripSlashCommand(content string) string {
	i := strings.LastIndexByte(content, '/')
	if i < 0 {
		return content
	}
	return content[:i]
}

// ApplySlashCommand runs c against the node with id. An empty text node is
// replaced in place; otherwise the new node is inserted after it. The slash
// query is stripped from the current node first. It returns the node that
// should take focus.
func (d *Document) ApplySlashCommand(id uuid.UUID, c SlashCommand) (Node, error) {
	i := d.Index(id)
	if i < 0 {
		return Node{}, ErrNodeNotFound
	}
	cur := d.Nodes[i]
	stripped := StripSlashCommand(cur.Content())
	cur = cur.WithContent(stripped, clipSpans(cur.Spans(), len(stripped)))

	mode := SlashInsertAfter
	if cur.Content() == "" {
		mode = SlashReplace
	}

	at := i + 1
	var next Node
	var ok bool
	if mode == SlashReplace {
		next, ok = Transform(cur, c.Action)
		at = i
	} else {
		d.Nodes[i] = cur
		next, ok = Transform(Node{ID: uuid.New(), Kind: KindText, Text: &TextData{}}, c.Action)
	}
	if !ok {
		return Node{}, ErrUnknownNodeType
	}
	if mode == SlashReplace {
		d.Nodes[i] = next
	} else {
		d.InsertAt(at, next)
	}
	if next.Kind == KindDivider {
		// dividers take no input; focus lands in a fresh text node after it
		text := NewText("", nil)
		d.InsertAt(at+1, text)
		return text, nil
	}
	return next, nil
}

func clipSpans(spans []richtext.Span, n int) []richtext.Span {
	var out []richtext.Span
	for _, sp := range spans {
		if sp.Start >= n {
			continue
		}
		if sp.End > n {
			sp.End = n
		}
		if sp.Start < sp.End {
			out = append(out, sp)
		}
	}
	return out
}
