package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iw2rmb/remindr/document"
	"github.com/iw2rmb/remindr/editor"
	"github.com/iw2rmb/remindr/internal/config"
	"github.com/iw2rmb/remindr/session"
)

const (
	titleFocus = -1
	gutter     = 2
)

// fieldEvent is a callback from one of the screen's editor fields. The
// title field uses uuid.Nil.
type fieldEvent struct {
	id     uuid.UUID
	change *editor.ChangeEvent
	signal *editor.Signal
}

// eventQueue collects field callbacks during an editor Update so the screen
// can act on them once the field value has been stored back.
type eventQueue struct {
	events []fieldEvent
}

func (q *eventQueue) take() []fieldEvent {
	out := q.events
	q.events = nil
	return out
}

type block struct {
	node  document.Node
	field editor.Model
}

func (b block) editable() bool { return b.node.Editable() }

type menuKind int

const (
	menuNone menuKind = iota
	menuSlash
	menuTransform
)

type (
	backMsg     struct{}
	closeTabMsg struct{ id int64 }
)

// docScreen edits one document as a column of blocks under a title field.
type docScreen struct {
	id        int64
	sess      *session.Session
	log       *zap.Logger
	theme     theme
	editorCfg config.Editor
	clipboard editor.Clipboard
	keys      docKeyMap

	doc    *document.Document
	title  editor.Model
	blocks []block
	focus  int
	queue  *eventQueue

	menu       editor.Menu
	menuKind   menuKind
	menuTarget uuid.UUID

	preview   bool
	previewVP viewport.Model
	vp        viewport.Model

	width, height int
	err           error
}

type docScreenOptions struct {
	Session   *session.Session
	Logger    *zap.Logger
	Theme     theme
	Editor    config.Editor
	Clipboard editor.Clipboard
	Width     int
	Height    int
}

func newDocScreen(doc *document.Document, opt docScreenOptions) docScreen {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	s := docScreen{
		id:        doc.ID,
		sess:      opt.Session,
		log:       opt.Logger.With(zap.Int64("document", doc.ID)),
		theme:     opt.Theme,
		editorCfg: opt.Editor,
		clipboard: opt.Clipboard,
		keys:      defaultDocKeyMap(),
		doc:       doc.Clone(),
		queue:     &eventQueue{},
		vp:        viewport.New(0, 0),
		previewVP: viewport.New(0, 0),
	}
	s.title = editor.New(editor.Config{
		Text:         doc.Title,
		Placeholder:  "Untitled",
		Style:        s.theme.title,
		HistoryLimit: s.editorCfg.HistoryLimit,
		Clipboard:    s.clipboard,
		KeyMap:       plainKeyMap(),
		OnChange:     s.onChange(uuid.Nil),
		OnSignal:     s.onSignal(uuid.Nil),
	}).Blur()
	s.rebuildBlocks()

	s.focus = titleFocus
	if len(s.blocks) > 0 && s.blocks[0].editable() {
		s.focus = 0
	}
	s.setFieldFocus(s.focus, true)
	s.queue.take()
	return s.resize(opt.Width, opt.Height)
}

func (s docScreen) onChange(id uuid.UUID) func(editor.ChangeEvent) {
	q := s.queue
	return func(ev editor.ChangeEvent) {
		q.events = append(q.events, fieldEvent{id: id, change: &ev})
	}
}

func (s docScreen) onSignal(id uuid.UUID) func(editor.Signal) {
	q := s.queue
	return func(sig editor.Signal) {
		q.events = append(q.events, fieldEvent{id: id, signal: &sig})
	}
}

// plainKeyMap disables inline formatting for fields that store plain text.
func plainKeyMap() editor.KeyMap {
	km := editor.DefaultKeyMap()
	for _, b := range []*key.Binding{&km.Bold, &km.Italic, &km.Underline, &km.Strikethrough, &km.Code, &km.Newline} {
		b.SetEnabled(false)
	}
	return km
}

func (s docScreen) newField(n document.Node) editor.Model {
	cfg := editor.Config{
		Text:         n.Content(),
		Spans:        n.Spans(),
		Width:        s.fieldWidth(),
		Style:        s.theme.text,
		HistoryLimit: s.editorCfg.HistoryLimit,
		Theme:        s.theme.code,
		Clipboard:    s.clipboard,
		TabSpaces:    s.editorCfg.TabInsertsSpaces,
		OnChange:     s.onChange(n.ID),
		OnSignal:     s.onSignal(n.ID),
	}
	switch n.Kind {
	case document.KindHeading:
		level := document.MinHeadingLevel
		if n.Heading != nil {
			level = n.Heading.Level
		}
		cfg.Style = s.theme.heading[level]
		cfg.Placeholder = "Heading " + string(rune('0'+level))
		cfg.KeyMap = plainKeyMap()
	default:
		cfg.Placeholder = "Type '/' for commands"
	}
	return editor.New(cfg).Blur()
}

// rebuildBlocks syncs blocks with s.doc. Fields whose node kept its kind
// and content are reused so carets and undo history survive.
func (s *docScreen) rebuildBlocks() {
	old := make(map[uuid.UUID]block, len(s.blocks))
	for _, b := range s.blocks {
		old[b.node.ID] = b
	}
	blocks := make([]block, 0, len(s.doc.Nodes))
	for _, n := range s.doc.Nodes {
		b := block{node: n}
		if n.Editable() {
			if prev, ok := old[n.ID]; ok && prev.node.Kind == n.Kind && sameHeadingLevel(prev.node, n) && prev.field.Value() == n.Content() {
				b.field = prev.field
			} else {
				b.field = s.newField(n)
			}
		}
		blocks = append(blocks, b)
	}
	s.blocks = blocks
	s.queue.take()
}

func sameHeadingLevel(a, b document.Node) bool {
	if a.Kind != document.KindHeading {
		return true
	}
	return a.Heading != nil && b.Heading != nil && a.Heading.Level == b.Heading.Level
}

func (s docScreen) fieldWidth() int {
	if s.width <= gutter {
		return 0
	}
	return s.width - gutter
}

func (s docScreen) resize(width, height int) docScreen {
	s.width, s.height = width, height
	w := s.fieldWidth()
	s.title = s.title.SetWidth(w)
	for i := range s.blocks {
		if s.blocks[i].editable() {
			s.blocks[i].field = s.blocks[i].field.SetWidth(w)
		}
	}
	bodyHeight := height - 2 // tab bar and status line
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	s.vp.Width, s.vp.Height = width, bodyHeight
	s.previewVP.Width, s.previewVP.Height = width, bodyHeight
	if s.preview {
		s.renderPreview()
	}
	return s
}

// commit pushes the local document to the session, which schedules a save.
func (s *docScreen) commit() {
	if s.sess == nil {
		return
	}
	snapshot := s.doc.Clone()
	if err := s.sess.Update(s.id, func(d *document.Document) { *d = *snapshot }); err != nil {
		s.err = err
		s.log.Error("update session", zap.Error(err))
	}
}

// setFieldFocus focuses or blurs the field at index i.
func (s *docScreen) setFieldFocus(i int, on bool) {
	apply := func(m editor.Model) editor.Model {
		if on {
			return m.Focus()
		}
		return m.Blur()
	}
	switch {
	case i == titleFocus:
		s.title = apply(s.title)
	case i >= 0 && i < len(s.blocks) && s.blocks[i].editable():
		s.blocks[i].field = apply(s.blocks[i].field)
	}
}

func (s *docScreen) moveFocus(i int) {
	if i < titleFocus {
		i = titleFocus
	}
	if i >= len(s.blocks) {
		i = len(s.blocks) - 1
	}
	if i == s.focus {
		return
	}
	s.setFieldFocus(s.focus, false)
	s.focus = i
	s.setFieldFocus(s.focus, true)
	s.closeMenu()
}

func (s *docScreen) focusNode(id uuid.UUID, caretEnd bool) {
	for i, b := range s.blocks {
		if b.node.ID == id {
			s.moveFocus(i)
			if caretEnd && b.editable() {
				s.blocks[i].field = s.blocks[i].field.CaretToEnd()
			}
			return
		}
	}
}

func (s docScreen) indexOf(id uuid.UUID) int {
	for i, b := range s.blocks {
		if b.node.ID == id {
			return i
		}
	}
	return -1
}

func (s docScreen) Update(msg tea.Msg) (docScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return s.resize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		s, cmd := s.updateKey(msg)
		s.ensureFocusVisible()
		return s, cmd
	}
	return s, nil
}

func (s docScreen) updateKey(msg tea.KeyMsg) (docScreen, tea.Cmd) {
	if s.preview {
		if key.Matches(msg, s.keys.Preview, s.keys.Back) {
			s.preview = false
			return s, nil
		}
		var cmd tea.Cmd
		s.previewVP, cmd = s.previewVP.Update(msg)
		return s, cmd
	}

	if s.menu.Visible() {
		var action editor.MenuAction
		s.menu, action = s.menu.Update(msg)
		switch action {
		case editor.MenuNavigated:
			return s, nil
		case editor.MenuDismissed:
			s.closeMenu()
			return s, nil
		case editor.MenuAccepted:
			s.acceptMenu()
			return s, nil
		}
		if s.menuKind == menuTransform {
			return s, nil
		}
	}

	switch {
	case key.Matches(msg, s.keys.Quit):
		return s, tea.Quit
	case key.Matches(msg, s.keys.Back):
		return s, func() tea.Msg { return backMsg{} }
	case key.Matches(msg, s.keys.CloseTab):
		id := s.id
		return s, func() tea.Msg { return closeTabMsg{id: id} }
	case key.Matches(msg, s.keys.Preview):
		s.preview = true
		s.renderPreview()
		return s, nil
	case key.Matches(msg, s.keys.Transform):
		s.openTransformMenu()
		return s, nil
	case key.Matches(msg, s.keys.MoveUp):
		s.moveBlock(-1)
		return s, nil
	case key.Matches(msg, s.keys.MoveDown):
		s.moveBlock(1)
		return s, nil
	}

	var cmd tea.Cmd
	switch {
	case s.focus == titleFocus:
		s.title, cmd = s.title.Update(msg)
	case s.focus < len(s.blocks) && s.blocks[s.focus].editable():
		s.blocks[s.focus].field, cmd = s.blocks[s.focus].field.Update(msg)
	case s.focus < len(s.blocks):
		s.updateDivider(msg)
		return s, nil
	}
	s.drainEvents()
	s.refreshSlashQuery()
	return s, cmd
}

// updateDivider handles keys while a divider, which has no field, is
// focused.
func (s *docScreen) updateDivider(msg tea.KeyMsg) {
	id := s.blocks[s.focus].node.ID
	switch msg.String() {
	case "up":
		s.moveFocus(s.focus - 1)
	case "down":
		s.moveFocus(s.focus + 1)
	case "enter":
		s.insertTextAfter(id)
	case "backspace", "delete", "ctrl+h", "ctrl+d":
		s.removeNode(id)
	}
}

func (s *docScreen) drainEvents() {
	for _, ev := range s.queue.take() {
		switch {
		case ev.change != nil:
			s.applyChange(ev.id, *ev.change)
		case ev.signal != nil:
			s.applySignal(ev.id, *ev.signal)
		}
	}
}

func (s *docScreen) applyChange(id uuid.UUID, ev editor.ChangeEvent) {
	if id == uuid.Nil {
		s.doc.Title = strings.TrimSpace(ev.Content)
		s.commit()
		return
	}
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	n := s.blocks[i].node.WithContent(ev.Content, ev.Spans)
	s.blocks[i].node = n
	if err := s.doc.Replace(id, n); err != nil {
		s.err = err
		return
	}
	s.commit()
}

func (s *docScreen) applySignal(id uuid.UUID, sig editor.Signal) {
	if id == uuid.Nil {
		switch sig.Kind {
		case editor.SignalEnter, editor.SignalDown:
			if len(s.blocks) == 0 || sig.Kind == editor.SignalEnter {
				n := document.NewText("", nil)
				s.doc.InsertAt(0, n)
				s.rebuildBlocks()
				s.commit()
				s.focusNode(n.ID, true)
				return
			}
			s.moveFocus(0)
		}
		return
	}
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	switch sig.Kind {
	case editor.SignalEnter:
		s.insertTextAfter(id)
	case editor.SignalBackspace:
		if sig.Empty {
			s.removeNode(id)
		}
	case editor.SignalUp:
		s.moveFocus(i - 1)
	case editor.SignalDown:
		s.moveFocus(i + 1)
	case editor.SignalSlash:
		if s.blocks[i].node.Kind == document.KindText {
			s.openSlashMenu(id)
		}
	case editor.SignalSpace:
		s.applyShortcut(i, sig.Content)
	}
}

func (s *docScreen) insertTextAfter(id uuid.UUID) {
	n := document.NewText("", nil)
	if err := s.doc.InsertAfter(id, n); err != nil {
		s.err = err
		return
	}
	s.rebuildBlocks()
	s.commit()
	s.focusNode(n.ID, true)
}

// removeNode deletes a block and puts the caret at the end of the block
// before it, or in the title when it was first.
func (s *docScreen) removeNode(id uuid.UUID) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	target := i - 1
	for target >= 0 && !s.blocks[target].editable() {
		target--
	}
	if err := s.doc.Remove(id); err != nil {
		s.err = err
		return
	}
	s.focus = titleFocus
	s.rebuildBlocks()
	s.commit()
	s.closeMenu()
	if target >= 0 {
		s.focus = target
		s.blocks[target].field = s.blocks[target].field.CaretToEnd()
	}
	s.setFieldFocus(s.focus, true)
	if s.focus == titleFocus {
		s.title = s.title.CaretToEnd()
	}
}

// applyShortcut turns a text block typed as "## ", "### " or "--- " into a
// heading or a divider.
func (s *docScreen) applyShortcut(i int, content string) {
	b := s.blocks[i]
	if b.node.Kind != document.KindText {
		return
	}
	var action document.Action
	switch content {
	case "# ":
		action = document.ActionToHeading1
	case "## ":
		action = document.ActionToHeading2
	case "### ":
		action = document.ActionToHeading3
	case "--- ":
		action = document.ActionToDivider
	default:
		return
	}
	n, ok := document.Transform(b.node.WithContent("", nil), action)
	if !ok {
		return
	}
	s.replaceNode(n)
}

func (s *docScreen) replaceNode(n document.Node) {
	if err := s.doc.Replace(n.ID, n); err != nil {
		s.err = err
		return
	}
	if n.Kind == document.KindDivider {
		next := document.NewText("", nil)
		_ = s.doc.InsertAfter(n.ID, next)
		s.rebuildBlocks()
		s.commit()
		s.focus = titleFocus
		s.focusNode(next.ID, true)
		return
	}
	s.rebuildBlocks()
	s.commit()
	s.focus = titleFocus
	s.focusNode(n.ID, true)
}

func (s *docScreen) moveBlock(delta int) {
	from := s.focus
	to := from + delta
	if from < 0 || to < 0 || to >= len(s.blocks) {
		return
	}
	place := document.Before
	if delta > 0 {
		place = document.After
	}
	id := s.blocks[from].node.ID
	s.doc.Move(from, to, place)
	s.rebuildBlocks()
	s.commit()
	s.focus = s.indexOf(id)
}

func (s *docScreen) openSlashMenu(id uuid.UUID) {
	cmds := document.SlashCommands()
	items := make([]editor.MenuItem, len(cmds))
	for i, c := range cmds {
		items[i] = editor.MenuItem{ID: c.ID, Label: c.Label, Detail: c.Shortcut}
	}
	s.menu = editor.NewMenu(editor.MenuConfig{
		Items:  items,
		Filter: slashFilter,
		Style:  s.theme.text,
	}).Open()
	s.menuKind = menuSlash
	s.menuTarget = id
}

// slashFilter applies the document's command filter to menu rows.
func slashFilter(query string, items []editor.MenuItem) []int {
	keep := make(map[string]bool)
	for _, c := range document.FilterSlashCommands(query) {
		keep[c.ID] = true
	}
	out := make([]int, 0, len(items))
	for i, it := range items {
		if keep[it.ID] {
			out = append(out, i)
		}
	}
	return out
}

func (s *docScreen) openTransformMenu() {
	if s.focus < 0 || s.focus >= len(s.blocks) {
		return
	}
	n := s.blocks[s.focus].node
	opts := document.MenuItems(n)
	items := make([]editor.MenuItem, len(opts))
	for i, it := range opts {
		items[i] = editor.MenuItem{ID: string(it.Action), Label: it.Label, Detail: it.Detail}
	}
	s.menu = editor.NewMenu(editor.MenuConfig{Items: items, Style: s.theme.text}).Open()
	s.menuKind = menuTransform
	s.menuTarget = n.ID
}

func (s *docScreen) closeMenu() {
	s.menu = s.menu.Close()
	s.menuKind = menuNone
	s.menuTarget = uuid.Nil
}

// refreshSlashQuery follows the text typed after "/" and closes the menu
// once the slash is gone.
func (s *docScreen) refreshSlashQuery() {
	if s.menuKind != menuSlash || !s.menu.Visible() {
		return
	}
	i := s.indexOf(s.menuTarget)
	if i < 0 || i != s.focus {
		s.closeMenu()
		return
	}
	q, ok := document.SlashQuery(s.blocks[i].field.Value())
	if !ok || strings.ContainsAny(q, " \n") {
		s.closeMenu()
		return
	}
	if q != s.menu.Query() {
		s.menu = s.menu.SetQuery(q)
	}
}

func (s *docScreen) acceptMenu() {
	item, ok := s.menu.Selected()
	kind, target := s.menuKind, s.menuTarget
	s.closeMenu()
	if !ok {
		return
	}

	switch kind {
	case menuSlash:
		var cmd document.SlashCommand
		for _, c := range document.SlashCommands() {
			if c.ID == item.ID {
				cmd = c
			}
		}
		focus, err := s.doc.ApplySlashCommand(target, cmd)
		if err != nil {
			s.err = err
			return
		}
		s.rebuildBlocks()
		s.commit()
		s.focus = titleFocus
		s.focusNode(focus.ID, true)

	case menuTransform:
		action := document.Action(item.ID)
		if action == document.ActionDelete {
			s.removeNode(target)
			return
		}
		i := s.indexOf(target)
		if i < 0 {
			return
		}
		n, ok := document.Transform(s.blocks[i].node, action)
		if ok {
			s.replaceNode(n)
		}
	}
}

func (s *docScreen) renderPreview() {
	md := document.Markdown(s.doc)
	out, err := renderMarkdown(md, s.width)
	if err != nil {
		s.log.Warn("preview", zap.Error(err))
		out = md
	}
	s.previewVP.SetContent(out)
	s.previewVP.GotoTop()
}
