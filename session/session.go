// Package session tracks the documents open in the app: which ones are
// loaded, which one is current, and whether edits are waiting to be saved.
// Edits are saved after a quiet period; Flush saves what is left on exit.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iw2rmb/remindr/document"
)

var (
	ErrNotOpen   = errors.New("session: document not open")
	ErrNotLoaded = errors.New("session: document not loaded")
)

// DefaultDebounce is the quiet period before changes are saved.
const DefaultDebounce = time.Second

// Saver persists a document.
type Saver interface {
	Save(ctx context.Context, doc *document.Document) error
}

// LoadingState describes an open document's content.
type LoadingState int

const (
	Loading LoadingState = iota
	Loaded
	Failed
)

func (s LoadingState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("LoadingState(%d)", int(s))
}

// Persistence is Pending while a save is running.
type Persistence int

const (
	Idle Persistence = iota
	Pending
)

func (p Persistence) String() string {
	if p == Pending {
		return "saving"
	}
	return "saved"
}

// Tab is a read-only view of an open document.
type Tab struct {
	ID    int64
	Title string
	State LoadingState
	Err   error
}

type tab struct {
	Tab
	doc *document.Document
}

type Options struct {
	Saver    Saver
	Debounce time.Duration
	Logger   *zap.Logger
}

// Session is safe for concurrent use. Subscribers are called without the
// lock held, possibly from the debounce goroutine.
type Session struct {
	saver    Saver
	debounce time.Duration
	log      *zap.Logger

	mu          sync.Mutex
	tabs        []*tab
	current     int64
	hasCurrent  bool
	persistence Persistence
	dirty       map[int64]bool
	closed      map[int64]*document.Document
	generation  uint64
	timer       *time.Timer
	saving      int
	// idle is signalled whenever saving drops back to zero.
	idle *sync.Cond

	subMu  sync.Mutex
	subs   map[int]func()
	nextID int
}

func New(opt Options) *Session {
	if opt.Debounce <= 0 {
		opt.Debounce = DefaultDebounce
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	s := &Session{
		saver:    opt.Saver,
		debounce: opt.Debounce,
		log:      opt.Logger,
		dirty:    make(map[int64]bool),
		closed:   make(map[int64]*document.Document),
		subs:     make(map[int]func()),
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Subscribe registers fn for every state change and returns a function that
// removes it.
func (s *Session) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *Session) find(id int64) (int, *tab) {
	for i, t := range s.tabs {
		if t.ID == id {
			return i, t
		}
	}
	return -1, nil
}

// Open adds the document as a tab if missing and makes it current. It
// reports whether the content still has to be loaded. A document closed
// with unsaved edits comes back with those edits instead of being loaded.
func (s *Session) Open(id int64, title string) bool {
	s.mu.Lock()
	_, t := s.find(id)
	if t == nil {
		t = &tab{Tab: Tab{ID: id, Title: title, State: Loading}}
		if doc, ok := s.closed[id]; ok {
			delete(s.closed, id)
			t.doc = doc
			t.Title = doc.Title
			t.State = Loaded
		}
		s.tabs = append(s.tabs, t)
	}
	s.current, s.hasCurrent = id, true
	needs := t.State == Loading
	s.mu.Unlock()
	s.notify()
	return needs
}

// NeedsLoading reports whether the tab exists and has no content yet.
func (s *Session) NeedsLoading(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, t := s.find(id)
	return t != nil && t.State == Loading
}

// SetLoaded stores the loaded content of an open document.
func (s *Session) SetLoaded(doc *document.Document) error {
	s.mu.Lock()
	_, t := s.find(doc.ID)
	if t == nil {
		s.mu.Unlock()
		return ErrNotOpen
	}
	t.doc = doc.Clone()
	t.Title = doc.Title
	t.State = Loaded
	t.Err = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetError records a failed load.
func (s *Session) SetError(id int64, err error) error {
	s.mu.Lock()
	_, t := s.find(id)
	if t == nil {
		s.mu.Unlock()
		return ErrNotOpen
	}
	t.State = Failed
	t.Err = err
	t.doc = nil
	s.mu.Unlock()
	s.log.Warn("document load failed", zap.Int64("document", id), zap.Error(err))
	s.notify()
	return nil
}

// Close removes a tab. When it was current, the neighbour becomes current:
// the tab before it, or the one after it when it was first. The new current
// id is returned with ok=false when no tabs remain.
func (s *Session) Close(id int64) (next int64, ok bool) {
	s.mu.Lock()
	i, t := s.find(id)
	if t == nil {
		next, ok = s.current, s.hasCurrent
		s.mu.Unlock()
		return next, ok
	}
	var neighbour *tab
	switch {
	case i > 0:
		neighbour = s.tabs[i-1]
	case len(s.tabs) > 1:
		neighbour = s.tabs[1]
	}
	if s.dirty[id] && t.doc != nil {
		// saved with the next batch
		s.closed[id] = t.doc
	}
	s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
	if s.hasCurrent && s.current == id {
		if neighbour != nil {
			s.current = neighbour.ID
		} else {
			s.current, s.hasCurrent = 0, false
		}
	}
	next, ok = s.current, s.hasCurrent
	s.mu.Unlock()
	s.notify()
	return next, ok
}

// Tabs lists the open documents in opening order.
func (s *Session) Tabs() []Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Tab, len(s.tabs))
	for i, t := range s.tabs {
		out[i] = t.Tab
	}
	return out
}

// Current returns the current tab.
func (s *Session) Current() (Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCurrent {
		return Tab{}, false
	}
	_, t := s.find(s.current)
	if t == nil {
		return Tab{}, false
	}
	return t.Tab, true
}

// Document returns a copy of a loaded document.
func (s *Session) Document(id int64) (*document.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, t := s.find(id)
	if t == nil || t.doc == nil {
		return nil, false
	}
	return t.doc.Clone(), true
}

// Update mutates a loaded document under the session lock and schedules a
// save.
func (s *Session) Update(id int64, fn func(doc *document.Document)) error {
	s.mu.Lock()
	_, t := s.find(id)
	if t == nil {
		s.mu.Unlock()
		return ErrNotOpen
	}
	if t.doc == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	fn(t.doc)
	t.Title = t.doc.Title
	s.markChangedLocked(id)
	s.mu.Unlock()
	s.notify()
	return nil
}

// MarkChanged schedules a save of id. Every call restarts the quiet period.
func (s *Session) MarkChanged(id int64) {
	s.mu.Lock()
	s.markChangedLocked(id)
	s.mu.Unlock()
}

func (s *Session) markChangedLocked(id int64) {
	s.dirty[id] = true
	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.debounceExpired(gen) })
}

// Persistence reports whether a save is running.
func (s *Session) Persistence() Persistence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistence
}

// Dirty reports whether changes are waiting for the quiet period to end.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty) > 0
}

func (s *Session) debounceExpired(gen uint64) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	docs := s.takeDirtyLocked()
	if len(docs) == 0 {
		s.mu.Unlock()
		return
	}
	s.saving++
	s.persistence = Pending
	s.mu.Unlock()
	s.notify()

	s.save(context.Background(), docs)

	s.mu.Lock()
	s.saving--
	if s.saving == 0 {
		s.persistence = Idle
		s.idle.Broadcast()
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Session) takeDirtyLocked() []*document.Document {
	var docs []*document.Document
	for _, t := range s.tabs {
		if s.dirty[t.ID] && t.doc != nil {
			docs = append(docs, t.doc.Clone())
		}
	}
	for id, doc := range s.closed {
		if _, t := s.find(id); t != nil {
			// the open tab holds the newer copy
			continue
		}
		if s.dirty[id] {
			docs = append(docs, doc)
		}
	}
	s.dirty = make(map[int64]bool)
	s.closed = make(map[int64]*document.Document)
	return docs
}

func (s *Session) save(ctx context.Context, docs []*document.Document) error {
	if s.saver == nil {
		return nil
	}
	var errs []error
	for _, doc := range docs {
		if err := s.saver.Save(ctx, doc); err != nil {
			s.log.Error("document save failed", zap.Int64("document", doc.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("save %d: %w", doc.ID, err))
			s.mu.Lock()
			s.dirty[doc.ID] = true
			if _, t := s.find(doc.ID); t == nil {
				s.closed[doc.ID] = doc
			}
			s.mu.Unlock()
			continue
		}
		s.log.Debug("document saved", zap.Int64("document", doc.ID))
	}
	return errors.Join(errs...)
}

// Flush cancels the pending quiet period, waits for a save already under
// way, and saves every changed document now.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	for s.saving > 0 {
		s.idle.Wait()
	}
	docs := s.takeDirtyLocked()
	s.mu.Unlock()
	if len(docs) == 0 {
		return nil
	}
	return s.save(ctx, docs)
}
