package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/remindr/richtext"
)

// Model is a Bubble Tea component that renders and edits one rich-text
// field. The engine is shared between copies of the Model.
type Model struct {
	cfg  Config
	eng  *richtext.Engine
	sink *eventSink

	focused bool

	cache *renderCache
}

type renderCache struct {
	version uint64
	focused bool
	width   int
	out     string
	valid   bool
}

func New(cfg Config) Model {
	if len(cfg.KeyMap.Left.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	if cfg.Width < 0 {
		cfg.Width = 0
	}

	sink := &eventSink{}
	eng := richtext.New("", richtext.Options{
		HistoryLimit: cfg.HistoryLimit,
		Theme:        cfg.Theme,
		OnEvent:      sink.observe,
	})
	eng.Load(cfg.Text, cfg.Spans)

	return Model{
		cfg:     cfg,
		eng:     eng,
		sink:    sink,
		focused: true,
		cache:   &renderCache{},
	}
}

// Engine exposes the underlying engine for host-driven edits (for example
// an input-method bridge). Host edits are reflected on the next View.
func (m Model) Engine() *richtext.Engine { return m.eng }

func (m Model) Value() string { return m.eng.Content() }

func (m Model) Spans() []richtext.Span { return m.eng.Spans() }

// SetValue replaces content and spans without notifying OnChange.
func (m Model) SetValue(text string, spans []richtext.Span) Model {
	m.eng.Load(text, spans)
	return m
}

// SetCaret places a collapsed caret at the byte offset off.
func (m Model) SetCaret(off int) Model {
	m.eng.SetSelection(richtext.Caret(off))
	return m
}

func (m Model) CaretToEnd() Model {
	m.eng.MoveCaret(richtext.End, false)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetWidth(width int) Model {
	if width < 0 {
		width = 0
	}
	m.cfg.Width = width
	return m
}

func (m Model) Width() int { return m.cfg.Width }

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.signal(Signal{Kind: SignalFocus})
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.eng.Unmark()
		m.signal(Signal{Kind: SignalBlur})
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.WindowSizeMsg:
		return m.SetWidth(msg.Width), nil
	}
	return m, nil
}

func (m Model) View() string {
	c := m.cache
	if c.valid && c.version == m.eng.Version() && c.focused == m.focused && c.width == m.cfg.Width {
		return c.out
	}
	c.out = m.renderContent()
	c.version = m.eng.Version()
	c.focused = m.focused
	c.width = m.cfg.Width
	c.valid = true
	return c.out
}
