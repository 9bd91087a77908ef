package main

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/iw2rmb/remindr/document"
	"github.com/iw2rmb/remindr/editor"
	"github.com/iw2rmb/remindr/internal/config"
	"github.com/iw2rmb/remindr/internal/logging"
	"github.com/iw2rmb/remindr/session"
	"github.com/iw2rmb/remindr/store"
)

// repository is the part of the store the app uses.
type repository interface {
	List(ctx context.Context) ([]store.Summary, error)
	Get(ctx context.Context, id int64) (*document.Document, error)
	Create(ctx context.Context, title string) (*document.Document, error)
	Delete(ctx context.Context, id int64) error
}

type (
	sessionChangedMsg struct{}
	docsListedMsg     struct {
		docs []store.Summary
		err  error
	}
	docLoadedMsg struct {
		id  int64
		doc *document.Document
		err error
	}
	docCreatedMsg struct {
		doc *document.Document
		err error
	}
	docDeletedMsg struct {
		id  int64
		err error
	}
)

type screen int

const (
	screenHome screen = iota
	screenDoc
)

type app struct {
	ctx    context.Context
	cfg    config.Config
	repo   repository
	sess   *session.Session
	log    *zap.Logger
	theme  theme
	openID int64

	clipboard editor.Clipboard

	screen screen
	home   homeScreen
	doc    docScreen
	hasDoc bool

	width, height int
	err           error
}

func newApp(ctx context.Context, cfg config.Config, repo repository, sess *session.Session, openID int64) app {
	t := newTheme(cfg.Theme)
	var clip editor.Clipboard
	if sc := (editor.SystemClipboard{}); sc.Available() {
		clip = sc
	}
	return app{
		ctx:       ctx,
		cfg:       cfg,
		repo:      repo,
		sess:      sess,
		log:       logging.L(ctx),
		theme:     t,
		openID:    openID,
		clipboard: clip,
		home:      newHomeScreen(t),
	}
}

func (a app) Init() tea.Cmd {
	cmds := []tea.Cmd{a.listDocs()}
	if a.openID > 0 {
		id := a.openID
		cmds = append(cmds, func() tea.Msg { return openDocMsg{id: id} })
	}
	return tea.Batch(cmds...)
}

func (a app) listDocs() tea.Cmd {
	ctx, repo := a.ctx, a.repo
	return func() tea.Msg {
		docs, err := repo.List(ctx)
		return docsListedMsg{docs: docs, err: err}
	}
}

func (a app) loadDoc(id int64) tea.Cmd {
	ctx, repo := a.ctx, a.repo
	return func() tea.Msg {
		doc, err := repo.Get(ctx, id)
		return docLoadedMsg{id: id, doc: doc, err: err}
	}
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.hasDoc {
			a.doc = a.doc.resize(a.width, a.height)
		}
		return a, nil

	case sessionChangedMsg:
		return a, nil

	case docsListedMsg:
		if msg.err != nil {
			a.err = msg.err
			a.log.Error("list documents", zap.Error(msg.err))
		}
		a.home = a.home.setDocs(msg.docs)
		return a, nil

	case openDocMsg:
		a.err = nil
		if a.sess.Open(msg.id, msg.title) {
			a.hasDoc = false
			a.screen = screenDoc
			return a, a.loadDoc(msg.id)
		}
		return a.showCurrent(), nil

	case docLoadedMsg:
		if msg.err != nil {
			_ = a.sess.SetError(msg.id, msg.err)
			if errors.Is(msg.err, store.ErrNotFound) {
				a.sess.Close(msg.id)
				a.screen = screenHome
			}
			a.err = msg.err
			return a, nil
		}
		if err := a.sess.SetLoaded(msg.doc); err != nil {
			return a, nil
		}
		if cur, ok := a.sess.Current(); ok && cur.ID == msg.id {
			return a.showCurrent(), nil
		}
		return a, nil

	case newDocMsg:
		ctx, repo := a.ctx, a.repo
		return a, func() tea.Msg {
			doc, err := repo.Create(ctx, "")
			return docCreatedMsg{doc: doc, err: err}
		}

	case docCreatedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.sess.Open(msg.doc.ID, msg.doc.Title)
		_ = a.sess.SetLoaded(msg.doc)
		a = a.showCurrent()
		return a, a.listDocs()

	case deleteDocMsg:
		ctx, repo := a.ctx, a.repo
		id := msg.id
		a.sess.Close(id)
		return a, func() tea.Msg { return docDeletedMsg{id: id, err: repo.Delete(ctx, id)} }

	case docDeletedMsg:
		if msg.err != nil {
			a.err = msg.err
		}
		return a, a.listDocs()

	case backMsg:
		a.screen = screenHome
		return a, a.listDocs()

	case closeTabMsg:
		next, ok := a.sess.Close(msg.id)
		if !ok {
			a.hasDoc = false
			a.screen = screenHome
			return a, a.listDocs()
		}
		if a.sess.NeedsLoading(next) {
			a.hasDoc = false
			return a, a.loadDoc(next)
		}
		return a.showCurrent(), nil

	case tea.KeyMsg:
		if a.screen == screenDoc && a.hasDoc {
			var cmd tea.Cmd
			a.doc, cmd = a.doc.Update(msg)
			return a, cmd
		}
		if a.screen == screenDoc {
			// still loading or failed
			if msg.String() == "esc" {
				a.screen = screenHome
				return a, a.listDocs()
			}
			if msg.String() == "ctrl+q" || msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.home, cmd = a.home.Update(msg)
		return a, cmd
	}
	return a, nil
}

// showCurrent switches to the session's current document, reusing the open
// screen when it already shows it.
func (a app) showCurrent() app {
	a.screen = screenDoc
	cur, ok := a.sess.Current()
	if !ok {
		a.screen = screenHome
		return a
	}
	if a.hasDoc && a.doc.id == cur.ID {
		return a
	}
	doc, ok := a.sess.Document(cur.ID)
	if !ok {
		a.hasDoc = false
		return a
	}
	a.doc = newDocScreen(doc, docScreenOptions{
		Session:   a.sess,
		Logger:    a.log,
		Theme:     a.theme,
		Editor:    a.cfg.Editor,
		Clipboard: a.clipboard,
		Width:     a.width,
		Height:    a.height,
	})
	a.hasDoc = true
	return a
}

func (a app) View() string {
	var body, status string
	switch {
	case a.screen == screenHome:
		body = a.home.View(a.height - 2)
		status = a.home.help()
	case a.hasDoc:
		body = a.doc.View()
		status = a.doc.statusLine()
	default:
		body = a.loadingView()
		status = a.theme.help.Render("esc documents · ctrl+q quit")
	}
	if a.err != nil {
		status = a.theme.errorText.Render("error: "+a.err.Error()) + "  " + status
	}

	header := a.tabBar()
	bodyHeight := a.height - lipgloss.Height(header) - 1
	if bodyHeight > 0 {
		body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (a app) loadingView() string {
	cur, ok := a.sess.Current()
	if !ok {
		return ""
	}
	if cur.State == session.Failed && cur.Err != nil {
		return a.theme.errorText.Render("  Could not load " + displayTitle(cur.Title) + ": " + cur.Err.Error())
	}
	return a.theme.empty.Render("  Loading " + displayTitle(cur.Title) + "…")
}

func (a app) tabBar() string {
	tabs := a.sess.Tabs()
	parts := []string{}
	homeStyle := a.theme.tab
	if a.screen == screenHome {
		homeStyle = a.theme.tabActive
	}
	parts = append(parts, homeStyle.Render("Documents"))

	cur, hasCur := a.sess.Current()
	for _, t := range tabs {
		title := displayTitle(t.Title)
		if a.hasDoc && a.doc.id == t.ID {
			title = displayTitle(a.doc.doc.Title)
		}
		st := a.theme.tab
		if a.screen == screenDoc && hasCur && cur.ID == t.ID {
			st = a.theme.tabActive
		}
		parts = append(parts, st.Render(truncate(title, 24)))
	}
	return strings.Join(parts, "")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
