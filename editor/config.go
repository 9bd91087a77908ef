package editor

import "github.com/iw2rmb/remindr/richtext"

// Config configures the editor Model.
type Config struct {
	// Initial content and styles of the field.
	Text  string
	Spans []richtext.Span

	// Placeholder is shown while the field is empty.
	Placeholder string

	// Width is the soft-wrap width in cells. Zero disables wrapping.
	Width int
	// TabWidth is the tab stop used when content contains tabs (default 4).
	TabWidth int

	Style  Style
	KeyMap KeyMap

	// Forwarded to richtext.Options.
	HistoryLimit int
	Theme        richtext.Theme

	// Clipboard is optional. Without it copy, cut and paste are no-ops.
	Clipboard Clipboard

	// OnChange fires after edits that change content or styles.
	OnChange func(ChangeEvent)
	// OnSignal receives block-level intents the host acts on.
	OnSignal func(Signal)

	ReadOnly bool

	// TabSpaces > 0 makes Tab insert that many spaces instead of signalling.
	TabSpaces int
}
