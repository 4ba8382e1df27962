package ui

import (
	"sort"
	"strings"

	"github.com/atomicstack/termcompose/internal/compositor"
	"github.com/atomicstack/termcompose/internal/editor"
	"github.com/atomicstack/termcompose/internal/logging/events"
	"github.com/atomicstack/termcompose/internal/surface"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Row is one formatted menu entry, one string per column.
type Row []string

// Item is implemented by menu entry kinds. The data value carries external
// context needed to format an entry (for example a path root to strip).
type Item[D any] interface {
	Format(data D) Row
}

// FilterTexter lets an item supply dedicated filter text. Items without it
// are filtered on their formatted columns joined with spaces.
type FilterTexter[D any] interface {
	FilterText(data D) string
}

// MenuEvent tells the menu callback what happened to the selection.
type MenuEvent int

const (
	// MenuUpdate fires when the selection moves.
	MenuUpdate MenuEvent = iota
	// MenuValidate fires when the selection is confirmed.
	MenuValidate
	// MenuAbort fires when the menu is dismissed after the user engaged
	// with it.
	MenuAbort
	// MenuSoftAbort fires when the menu is dismissed untouched.
	MenuSoftAbort
)

// MenuCallback receives selection changes. The item is nil when no entry
// is selected.
type MenuCallback[D any, T Item[D]] func(e *editor.Editor, item *T, event MenuEvent)

type scoredMatch struct {
	index int
	// rank is the fuzzy distance to the pattern; lower ranks first.
	rank int
}

const menuMaxHeight = 10
const menuLeftPadding = 1

// Menu is a scrollable, fuzzy-filterable list of items rendered as a
// popup layer.
type Menu[D any, T Item[D]] struct {
	options []T
	data    D

	// matches pairs option indices with their fuzzy rank, best first.
	matches []scoredMatch
	cursor  int // index into matches; -1 = none
	scroll  int

	widths      []int
	width       int
	height      int
	viewportW   int
	viewportH   int
	recalculate bool

	callback MenuCallback[D, T]

	// arrowStealing lets arrow keys move the selection before the user
	// has engaged via tab/ctrl-n/ctrl-p.
	arrowStealing bool
}

// NewMenu builds a menu over options. All options start matched, in their
// original order.
func NewMenu[D any, T Item[D]](options []T, data D, callback MenuCallback[D, T]) *Menu[D, T] {
	matches := make([]scoredMatch, len(options))
	for i := range options {
		matches[i] = scoredMatch{index: i}
	}
	return &Menu[D, T]{
		options:       options,
		data:          data,
		matches:       matches,
		cursor:        -1,
		recalculate:   true,
		callback:      callback,
		arrowStealing: true,
	}
}

// AllowArrowStealing toggles whether arrow keys move the selection before
// any tab/ctrl-n/ctrl-p interaction. Completion menus disable it so the
// host keeps its navigation keys until the menu is engaged.
func (m *Menu[D, T]) AllowArrowStealing(allow bool) *Menu[D, T] {
	m.arrowStealing = allow
	return m
}

func (m *Menu[D, T]) optionFilterText(i int) string {
	option := m.options[i]
	if ft, ok := any(option).(FilterTexter[D]); ok {
		return ft.FilterText(m.data)
	}
	return strings.Join(option.Format(m.data), " ")
}

// Score recomputes the match set from scratch against pattern. Options
// with no fuzzy match are dropped; the rest are ordered best rank first
// with original order preserved among equal ranks, because upstream
// producers may present pre-ranked candidates. The cursor and scroll
// reset.
func (m *Menu[D, T]) Score(pattern string) {
	m.matches = m.matches[:0]
	for i := range m.options {
		// An empty pattern keeps every option at rank zero so pre-ranked
		// producers keep their order.
		rank := 0
		if pattern != "" {
			rank = fuzzy.RankMatchNormalizedFold(pattern, m.optionFilterText(i))
		}
		if rank >= 0 {
			m.matches = append(m.matches, scoredMatch{index: i, rank: rank})
		}
	}
	sort.SliceStable(m.matches, func(a, b int) bool {
		return m.matches[a].rank < m.matches[b].rank
	})

	m.cursor = -1
	m.scroll = 0
	m.recalculate = true
	events.Menu.Score(pattern, len(m.matches), len(m.options))
}

// Clear empties the match set and resets the cursor and scroll.
func (m *Menu[D, T]) Clear() {
	m.matches = m.matches[:0]
	m.cursor = -1
	m.scroll = 0
}

// MoveUp moves the selection up one entry, wrapping at the top. With no
// current selection it selects the last entry.
func (m *Menu[D, T]) MoveUp() {
	n := len(m.matches)
	if n == 0 {
		return
	}
	if m.cursor < 0 {
		m.cursor = n - 1
	} else {
		m.cursor = (m.cursor + n - 1) % n
	}
	m.adjustScroll()
	events.Menu.Cursor(m.cursor, n)
}

// MoveDown moves the selection down one entry, wrapping at the bottom.
// With no current selection it selects the first entry.
func (m *Menu[D, T]) MoveDown() {
	n := len(m.matches)
	if n == 0 {
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	} else {
		m.cursor = (m.cursor + 1) % n
	}
	m.adjustScroll()
	events.Menu.Cursor(m.cursor, n)
}

// adjustScroll keeps the cursor inside the visible window with the
// minimal offset change: scroll forward by the exact overflow when the
// cursor falls below the window, back to the cursor when above.
func (m *Menu[D, T]) adjustScroll() {
	winHeight := m.height
	if m.cursor < 0 {
		return
	}
	scroll := m.scroll
	if bottom := winHeight + scroll - 1; m.cursor > bottom && bottom >= 0 {
		scroll += m.cursor - bottom
	} else if m.cursor < scroll {
		scroll = m.cursor
	}
	m.scroll = scroll
}

func (m *Menu[D, T]) recalculateSize(viewportW, viewportH int) {
	columns := 0
	if len(m.options) > 0 {
		columns = len(m.options[0].Format(m.data))
	}
	maxLens := make([]int, columns)
	for i := range m.options {
		row := m.options[i].Format(m.data)
		for j := 0; j < columns && j < len(row); j++ {
			if w := ansi.StringWidth(row[j]); w > maxLens[j] {
				maxLens[j] = w
			}
		}
	}

	height := min(len(m.matches), menuMaxHeight, viewportH)
	fits := len(m.matches) <= height

	width := columns
	for _, l := range maxLens {
		width += l
	}
	if !fits {
		width++ // scrollbar column
	}
	width += menuLeftPadding
	width = min(width, viewportW)

	m.widths = maxLens
	m.width = width
	m.height = height

	m.adjustScroll()
	m.recalculate = false
}

// Selection returns the currently selected item, or nil.
func (m *Menu[D, T]) Selection() *T {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return nil
	}
	return &m.options[m.matches[m.cursor].index]
}

// ReplaceOption swaps the first option equal to old for new, keeping its
// position and score.
func (m *Menu[D, T]) ReplaceOption(old, replacement T, equal func(a, b T) bool) {
	for i := range m.options {
		if equal(m.options[i], old) {
			m.options[i] = replacement
			return
		}
	}
}

// Len reports the current match count.
func (m *Menu[D, T]) Len() int { return len(m.matches) }

// IsEmpty reports whether no options match.
func (m *Menu[D, T]) IsEmpty() bool { return len(m.matches) == 0 }

// InteractedWith reports whether the user has moved the selection at
// least once since the last Score.
func (m *Menu[D, T]) InteractedWith() bool { return m.cursor >= 0 }

// HandleEvent implements the menu key state machine.
func (m *Menu[D, T]) HandleEvent(event tea.Msg, ctx *compositor.Context) compositor.EventResult {
	key, isKey := event.(tea.KeyMsg)
	if !isKey {
		return compositor.Ignored(nil)
	}

	closeFn := func(c *compositor.Compositor, _ *compositor.Context) {
		c.Pop()
	}

	// With a single match already selected, further navigation is
	// meaningless: pass the key through and close.
	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC, tea.KeyEnter:
	default:
		if len(m.matches) == 1 && m.cursor >= 0 {
			return compositor.Ignored(closeFn)
		}
	}

	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		menuEvent := MenuSoftAbort
		if m.InteractedWith() {
			menuEvent = MenuAbort
		}
		events.Menu.Abort(m.InteractedWith())
		m.callback(ctx.Editor, m.Selection(), menuEvent)
		return compositor.Consumed(closeFn)
	case tea.KeyShiftTab, tea.KeyCtrlP:
		m.MoveUp()
		m.callback(ctx.Editor, m.Selection(), MenuUpdate)
		return compositor.Consumed(nil)
	case tea.KeyTab, tea.KeyCtrlN:
		m.MoveDown()
		m.callback(ctx.Editor, m.Selection(), MenuUpdate)
		return compositor.Consumed(nil)
	case tea.KeyUp:
		if m.arrowStealing || m.InteractedWith() {
			m.MoveUp()
			m.callback(ctx.Editor, m.Selection(), MenuUpdate)
			return compositor.Consumed(nil)
		}
	case tea.KeyDown:
		if m.arrowStealing || m.InteractedWith() {
			m.MoveDown()
			m.callback(ctx.Editor, m.Selection(), MenuUpdate)
			return compositor.Consumed(nil)
		}
	case tea.KeyEnter:
		if selection := m.Selection(); selection != nil {
			m.callback(ctx.Editor, selection, MenuValidate)
			return compositor.Consumed(closeFn)
		}
		return compositor.Ignored(closeFn)
	}

	// Everything else passes through so the host can extend the filter.
	return compositor.Ignored(nil)
}

// ShouldUpdate implements compositor.Component.
func (m *Menu[D, T]) ShouldUpdate() bool { return true }

// RequiredSize reports the memoised popup size, recomputed when the
// viewport changed or the match set was rescored.
func (m *Menu[D, T]) RequiredSize(viewportW, viewportH int) (int, int, bool) {
	if viewportW != m.viewportW || viewportH != m.viewportH || m.recalculate {
		m.viewportW = viewportW
		m.viewportH = viewportH
		m.recalculateSize(viewportW, viewportH)
	}
	return m.width, m.height, true
}

// popupArea centers the popup box inside the viewport rect.
func (m *Menu[D, T]) popupArea(viewport surface.Rect) surface.Rect {
	return viewport.Intersection(surface.NewRect(
		viewport.Left()+(viewport.Width-m.width)/2,
		viewport.Top()+(viewport.Height-m.height)/2,
		m.width,
		m.height,
	))
}

// Render paints the visible match window centered in area, highlights the
// selected row's outer edge cells, and draws a proportional scroll thumb
// when the match set overflows the window.
func (m *Menu[D, T]) Render(viewport surface.Rect, frame *surface.Surface, ctx *compositor.Context) {
	if m.recalculate || viewport.Width != m.viewportW || viewport.Height != m.viewportH {
		m.RequiredSize(viewport.Width, viewport.Height)
	}

	theme := ctx.Editor.Theme
	style := *theme.Menu
	selected := *theme.MenuSelected

	area := m.popupArea(viewport)
	frame.ClearWith(area, style)

	winHeight := area.Height
	total := len(m.matches)
	inner := area.ClipLeft(menuLeftPadding).ClipRight(1)

	for row := 0; row < winHeight; row++ {
		matchIdx := m.scroll + row
		if matchIdx >= total {
			break
		}
		rowStyle := style
		if matchIdx == m.cursor {
			rowStyle = selected
		}
		cells := m.options[m.matches[matchIdx].index].Format(m.data)
		x := inner.Left()
		y := inner.Top() + row
		for j, cell := range cells {
			colWidth := 0
			if j < len(m.widths) {
				colWidth = m.widths[j]
			}
			remaining := inner.Right() - x
			if remaining <= 0 {
				break
			}
			frame.SetString(x, y, cell, rowStyle, min(colWidth, remaining))
			x += colWidth + 1
		}
	}

	if m.cursor >= 0 {
		offsetFromTop := m.cursor - m.scroll
		frame.SetStyle(area.Left(), area.Top()+offsetFromTop, selected)
		frame.SetStyle(area.Right()-1, area.Top()+offsetFromTop, selected)
	}

	if total > winHeight && winHeight > 0 {
		thumbHeight := min((winHeight*winHeight+total-1)/total, winHeight)
		thumbLine := (winHeight - thumbHeight) * m.scroll / max(1, total-winHeight)
		for i := 0; i < winHeight; i++ {
			barStyle := *theme.MenuTrack
			if thumbLine <= i && i < thumbLine+thumbHeight {
				barStyle = *theme.MenuScroll
			}
			frame.SetCell(area.Right()-1, area.Top()+i, surface.Cell{Rune: '▐', Style: barStyle})
		}
	}
}

// RenderExt is the registry render path, which the menu does not support
// yet. Invoking it signals an incomplete integration, not a recoverable
// condition.
func (m *Menu[D, T]) RenderExt(ctx *compositor.ContextExt) {
	panic("ui: menu host render path not implemented")
}

// Cursor implements compositor.Component; menus never place the terminal
// cursor.
func (m *Menu[D, T]) Cursor(area surface.Rect, e *editor.Editor) (*surface.Position, surface.CursorKind) {
	return nil, surface.CursorHidden
}

// CursorExt implements compositor.Component.
func (m *Menu[D, T]) CursorExt(e *editor.Editor) ([]surface.Position, string, bool) {
	return nil, "", false
}

// ID implements compositor.Component.
func (m *Menu[D, T]) ID() string { return "menu" }
