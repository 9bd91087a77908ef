package editor

import "github.com/iw2rmb/remindr/richtext"

type ChangeEvent struct {
	Version   uint64
	Content   string
	Spans     []richtext.Span
	Selection richtext.Selection
}

func buildChangeEvent(e *richtext.Engine) ChangeEvent {
	return ChangeEvent{
		Version:   e.Version(),
		Content:   e.Content(),
		Spans:     e.Spans(),
		Selection: e.Selection(),
	}
}

// SignalKind identifies a host-level intent raised by a key press.
type SignalKind uint8

const (
	SignalEnter SignalKind = iota
	SignalTab
	SignalSpace
	SignalSlash
	SignalBackspace
	SignalDelete
	SignalUp
	SignalDown
	SignalFocus
	SignalBlur
)

func (k SignalKind) String() string {
	switch k {
	case SignalEnter:
		return "enter"
	case SignalTab:
		return "tab"
	case SignalSpace:
		return "space"
	case SignalSlash:
		return "slash"
	case SignalBackspace:
		return "backspace"
	case SignalDelete:
		return "delete"
	case SignalUp:
		return "up"
	case SignalDown:
		return "down"
	case SignalFocus:
		return "focus"
	case SignalBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// Signal carries the field state a host needs to act on a key without
// reaching back into the editor.
type Signal struct {
	Kind SignalKind

	// Empty reports whether the field had no content when the key arrived.
	Empty bool
	// AtStart and AtEnd report a collapsed caret at the field edges before
	// the key was handled.
	AtStart bool
	AtEnd   bool

	// Content is the field content after the key was handled.
	Content string
}

// eventSink collects engine notifications so they are delivered to the host
// once per Update, after the engine call returned.
type eventSink struct {
	changed bool
}

func (s *eventSink) observe(ev richtext.Event) {
	if ev.Kind == richtext.EventChange {
		s.changed = true
	}
}

func (m *Model) flushChange() {
	if !m.sink.changed {
		return
	}
	m.sink.changed = false
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.eng))
	}
}

func (m *Model) signal(s Signal) {
	if m.cfg.OnSignal == nil {
		return
	}
	s.Content = m.eng.Content()
	m.cfg.OnSignal(s)
}
