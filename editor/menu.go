package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/remindr/internal/grapheme"
)

const (
	defaultMenuMaxVisibleRows = 8
	defaultMenuMaxWidth       = 40
)

// MenuItem is one selectable row of a Menu. Detail is drawn after the label
// in the detail style (a shortcut hint, for example).
type MenuItem struct {
	ID     string
	Label  string
	Detail string
}

// MenuFilter returns the indices of items matching query, in display order.
type MenuFilter func(query string, items []MenuItem) []int

type MenuKeyMap struct {
	Accept   key.Binding
	Dismiss  key.Binding
	Next     key.Binding
	Prev     key.Binding
	PageNext key.Binding
	PagePrev key.Binding
}

func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Accept:   key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "apply")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Next:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Prev:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		PageNext: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "next page")),
		PagePrev: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "previous page")),
	}
}

// MenuAction reports what a key did to the menu.
type MenuAction uint8

const (
	// MenuIgnored means the key is not a menu key; the host handles it.
	MenuIgnored MenuAction = iota
	MenuNavigated
	MenuAccepted
	MenuDismissed
)

type MenuConfig struct {
	Items  []MenuItem
	Filter MenuFilter
	KeyMap MenuKeyMap
	Style  Style

	MaxVisibleRows int
	MaxWidth       int
}

// Menu is a filterable popup list composited over a host view.
type Menu struct {
	cfg MenuConfig

	open     bool
	query    string
	visible  []int
	selected int
}

func NewMenu(cfg MenuConfig) Menu {
	if len(cfg.KeyMap.Accept.Keys()) == 0 {
		cfg.KeyMap = DefaultMenuKeyMap()
	}
	if cfg.Filter == nil {
		cfg.Filter = DefaultMenuFilter
	}
	if cfg.MaxVisibleRows <= 0 {
		cfg.MaxVisibleRows = defaultMenuMaxVisibleRows
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = defaultMenuMaxWidth
	}
	cfg.Items = append([]MenuItem(nil), cfg.Items...)
	m := Menu{cfg: cfg}
	m.refilter()
	return m
}

// DefaultMenuFilter keeps items whose label or detail contains query,
// case-insensitively.
func DefaultMenuFilter(query string, items []MenuItem) []int {
	q := strings.ToLower(query)
	out := make([]int, 0, len(items))
	for i, it := range items {
		if strings.Contains(strings.ToLower(it.Label+" "+it.Detail), q) {
			out = append(out, i)
		}
	}
	return out
}

func (m Menu) Open() Menu {
	m.open = true
	m.query = ""
	m.refilter()
	return m
}

func (m Menu) Close() Menu {
	m.open = false
	return m
}

func (m Menu) Visible() bool { return m.open }

func (m Menu) Query() string { return m.query }

// SetQuery refilters the items and resets the selection to the first match.
func (m Menu) SetQuery(q string) Menu {
	m.query = q
	m.refilter()
	return m
}

func (m Menu) SetItems(items []MenuItem) Menu {
	m.cfg.Items = append([]MenuItem(nil), items...)
	m.refilter()
	return m
}

// Matches returns the filtered items in display order.
func (m Menu) Matches() []MenuItem {
	out := make([]MenuItem, 0, len(m.visible))
	for _, idx := range m.visible {
		out = append(out, m.cfg.Items[idx])
	}
	return out
}

// Selected returns the highlighted item. It reports false when nothing
// matches the query.
func (m Menu) Selected() (MenuItem, bool) {
	if len(m.visible) == 0 {
		return MenuItem{}, false
	}
	return m.cfg.Items[m.visible[m.selected]], true
}

func (m *Menu) refilter() {
	m.visible = sanitizeMenuIndices(m.cfg.Filter(m.query, m.cfg.Items), len(m.cfg.Items))
	m.selected = 0
}

func sanitizeMenuIndices(indices []int, itemCount int) []int {
	if len(indices) == 0 || itemCount <= 0 {
		return nil
	}
	out := make([]int, 0, len(indices))
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= itemCount {
			continue
		}
		if _, exists := seen[idx]; exists {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}

// Update handles navigation keys while the menu is open. Keys it does not
// own are reported as MenuIgnored so the host can forward them (typing
// into the query, for example).
func (m Menu) Update(msg tea.KeyMsg) (Menu, MenuAction) {
	if !m.open {
		return m, MenuIgnored
	}
	km := m.cfg.KeyMap
	n := len(m.visible)

	switch {
	case key.Matches(msg, km.Dismiss):
		m.open = false
		return m, MenuDismissed
	case key.Matches(msg, km.Accept):
		if n == 0 {
			return m, MenuIgnored
		}
		m.open = false
		return m, MenuAccepted
	case key.Matches(msg, km.Next):
		if n > 0 {
			m.selected = (m.selected + 1) % n
		}
		return m, MenuNavigated
	case key.Matches(msg, km.Prev):
		if n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
		return m, MenuNavigated
	case key.Matches(msg, km.PageNext):
		if n > 0 {
			m.selected = clampInt(m.selected+m.cfg.MaxVisibleRows, 0, n-1)
		}
		return m, MenuNavigated
	case key.Matches(msg, km.PagePrev):
		if n > 0 {
			m.selected = clampInt(m.selected-m.cfg.MaxVisibleRows, 0, n-1)
		}
		return m, MenuNavigated
	}
	return m, MenuIgnored
}

// View renders the visible rows. The window scrolls to keep the selection
// in view. An open menu without matches renders a single "No results" row.
func (m Menu) View() string {
	if !m.open {
		return ""
	}
	st := m.cfg.Style
	if len(m.visible) == 0 {
		return st.MenuDetail.Render(truncateCells("No results", m.cfg.MaxWidth))
	}

	rows := minInt(m.cfg.MaxVisibleRows, len(m.visible))
	first := 0
	if m.selected >= rows {
		first = m.selected - rows + 1
	}
	window := m.visible[first : first+rows]

	width := 0
	for _, idx := range window {
		if w := menuItemWidth(m.cfg.Items[idx]); w > width {
			width = w
		}
	}
	width = minInt(width, m.cfg.MaxWidth)

	out := make([]string, 0, len(window))
	for i, idx := range window {
		out = append(out, m.renderRow(m.cfg.Items[idx], first+i == m.selected, width))
	}
	return strings.Join(out, "\n")
}

func (m Menu) renderRow(it MenuItem, selected bool, width int) string {
	st := m.cfg.Style
	base := st.MenuItem
	if selected {
		base = st.MenuSelected
	}

	label := truncateCells(sanitizeSingleLine(it.Label), width)
	used := grapheme.StringWidth(label, 4)
	var sb strings.Builder
	sb.WriteString(base.Render(label))

	if it.Detail != "" && used+1 < width {
		detail := truncateCells(sanitizeSingleLine(it.Detail), width-used-1)
		sb.WriteString(base.Render(" "))
		sb.WriteString(st.MenuDetail.Inherit(base).Render(detail))
		used += 1 + grapheme.StringWidth(detail, 4)
	}
	if used < width {
		sb.WriteString(base.Render(strings.Repeat(" ", width-used)))
	}
	return sb.String()
}

// Overlay composites the menu over base next to the anchor cell (x, y),
// below it when it fits within areaHeight rows and above otherwise.
func (m Menu) Overlay(base string, x, y, areaWidth, areaHeight int) string {
	view := m.View()
	if view == "" {
		return base
	}
	h := lipgloss.Height(view)
	w := lipgloss.Width(view)

	top := y + 1
	if top+h > areaHeight && y-h >= 0 {
		top = y - h
	}
	top = clampInt(top, 0, maxInt(areaHeight-h, 0))
	left := clampInt(x, 0, maxInt(areaWidth-w, 0))

	return overlay.Composite(view, base, overlay.Left, overlay.Top, left, top)
}

func menuItemWidth(it MenuItem) int {
	w := grapheme.StringWidth(sanitizeSingleLine(it.Label), 4)
	if it.Detail != "" {
		w += 1 + grapheme.StringWidth(sanitizeSingleLine(it.Detail), 4)
	}
	return w
}

// truncateCells cuts s to at most width cells without splitting a cluster.
func truncateCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	used := 0
	for _, c := range grapheme.Layout(s, 4) {
		if used+c.Width > width {
			return s[:c.Start]
		}
		used += c.Width
	}
	return s
}

func sanitizeSingleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
