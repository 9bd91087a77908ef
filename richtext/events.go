package richtext

// EventKind identifies an outbound engine notification.
type EventKind uint8

const (
	// EventChange fires after every content-mutating operation.
	EventChange EventKind = iota
	// EventBackspace fires after an effective Backspace, following EventChange.
	EventBackspace
	// EventDelete fires after an effective DeleteForward, following EventChange.
	EventDelete
)

func (k EventKind) String() string {
	switch k {
	case EventChange:
		return "change"
	case EventBackspace:
		return "backspace"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously from inside the call that caused it.
type Event struct {
	Kind    EventKind
	Content string
}

func (e *Engine) emit(kind EventKind) {
	if e.opt.OnEvent == nil {
		return
	}
	e.opt.OnEvent(Event{Kind: kind, Content: e.content})
}
