package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iw2rmb/remindr/richtext"
)

var (
	ErrUnknownNodeType = errors.New("document: unknown node type")
	ErrNodeNotFound    = errors.New("document: node not found")
)

// Kind identifies what a node holds.
type Kind string

const (
	KindText    Kind = "text"
	KindHeading Kind = "heading"
	KindDivider Kind = "divider"
)

func (k Kind) Valid() bool {
	switch k {
	case KindText, KindHeading, KindDivider:
		return true
	}
	return false
}

// TextData is the payload of a text node.
type TextData struct {
	Content string          `json:"content"`
	Spans   []richtext.Span `json:"spans,omitempty"`
}

// HeadingData is the payload of a heading node. Level is 1 to 3.
type HeadingData struct {
	Content string `json:"content"`
	Level   int    `json:"level"`
}

const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 3
)

// Node is one block of a document. Exactly one payload is set for text and
// heading nodes; dividers carry none.
type Node struct {
	ID      uuid.UUID
	Kind    Kind
	Text    *TextData
	Heading *HeadingData
}

func NewText(content string, spans []richtext.Span) Node {
	return Node{
		ID:   uuid.New(),
		Kind: KindText,
		Text: &TextData{Content: content, Spans: cloneSpans(spans)},
	}
}

func NewHeading(content string, level int) Node {
	return Node{
		ID:      uuid.New(),
		Kind:    KindHeading,
		Heading: &HeadingData{Content: content, Level: clampLevel(level)},
	}
}

func NewDivider() Node {
	return Node{ID: uuid.New(), Kind: KindDivider}
}

// Content returns the editable text of the node, or "" for dividers.
func (n Node) Content() string {
	switch n.Kind {
	case KindText:
		if n.Text != nil {
			return n.Text.Content
		}
	case KindHeading:
		if n.Heading != nil {
			return n.Heading.Content
		}
	}
	return ""
}

// Spans returns the node's formatting. Only text nodes carry spans.
func (n Node) Spans() []richtext.Span {
	if n.Kind == KindText && n.Text != nil {
		return cloneSpans(n.Text.Spans)
	}
	return nil
}

// Editable reports whether the node has a text field.
func (n Node) Editable() bool {
	return n.Kind == KindText || n.Kind == KindHeading
}

// WithContent returns a copy of n carrying the new text. Dividers are
// returned unchanged.
func (n Node) WithContent(content string, spans []richtext.Span) Node {
	switch n.Kind {
	case KindText:
		n.Text = &TextData{Content: content, Spans: cloneSpans(spans)}
	case KindHeading:
		level := MinHeadingLevel
		if n.Heading != nil {
			level = n.Heading.Level
		}
		n.Heading = &HeadingData{Content: content, Level: level}
	}
	return n
}

// Clone returns a deep copy.
func (n Node) Clone() Node {
	if n.Text != nil {
		t := *n.Text
		t.Spans = cloneSpans(t.Spans)
		n.Text = &t
	}
	if n.Heading != nil {
		h := *n.Heading
		n.Heading = &h
	}
	return n
}

type wireNode struct {
	ID       uuid.UUID       `json:"id"`
	Type     Kind            `json:"type"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

func (n Node) MarshalJSON() ([]byte, error) {
	w := wireNode{ID: n.ID, Type: n.Kind}
	var meta any
	switch n.Kind {
	case KindText:
		t := n.Text
		if t == nil {
			t = &TextData{}
		}
		meta = t
	case KindHeading:
		h := n.Heading
		if h == nil {
			h = &HeadingData{Level: MinHeadingLevel}
		}
		meta = h
	case KindDivider:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, n.Kind)
	}
	if meta != nil {
		b, err := json.Marshal(meta)
		if err != nil {
			return nil, err
		}
		w.Metadata = b
	}
	return json.Marshal(w)
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var w wireNode
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	out := Node{ID: w.ID, Kind: w.Type}
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	switch w.Type {
	case KindText:
		var t TextData
		if err := unmarshalMetadata(w.Metadata, &t); err != nil {
			return fmt.Errorf("text metadata: %w", err)
		}
		// Load clamps spans to the content and normalizes them.
		e := richtext.New("", richtext.Options{})
		e.Load(t.Content, t.Spans)
		t.Spans = e.Spans()
		out.Text = &t
	case KindHeading:
		var h HeadingData
		if err := unmarshalMetadata(w.Metadata, &h); err != nil {
			return fmt.Errorf("heading metadata: %w", err)
		}
		h.Level = clampLevel(h.Level)
		out.Heading = &h
	case KindDivider:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNodeType, w.Type)
	}
	*n = out
	return nil
}

func unmarshalMetadata(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// EncodeNodes serializes nodes to the stored JSON array.
func EncodeNodes(nodes []Node) ([]byte, error) {
	if nodes == nil {
		nodes = []Node{}
	}
	return json.Marshal(nodes)
}

// DecodeNodes parses a stored JSON array. Empty input yields no nodes.
func DecodeNodes(b []byte) ([]Node, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode nodes: %w", err)
	}
	nodes := make([]Node, 0, len(raw))
	for i, r := range raw {
		var n Node
		if err := n.UnmarshalJSON(r); err != nil {
			return nil, fmt.Errorf("decode node %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func clampLevel(level int) int {
	if level < MinHeadingLevel {
		return MinHeadingLevel
	}
	if level > MaxHeadingLevel {
		return MaxHeadingLevel
	}
	return level
}

func cloneSpans(in []richtext.Span) []richtext.Span {
	if len(in) == 0 {
		return nil
	}
	out := make([]richtext.Span, len(in))
	copy(out, in)
	return out
}
