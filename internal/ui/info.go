package ui

import (
	"strings"

	"github.com/atomicstack/termcompose/internal/compositor"
	"github.com/atomicstack/termcompose/internal/editor"
	"github.com/atomicstack/termcompose/internal/surface"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// statusLineReserve keeps the info box clear of the host's status line.
const statusLineReserve = 2

// Info is a titled, bordered box anchored to the bottom-right of the
// viewport, offset above the status line.
type Info struct {
	Title string
	Text  string

	// Width and Height are the intrinsic body dimensions, without the
	// border or margin.
	Width  int
	Height int
}

// NewInfo measures body and returns the box.
func NewInfo(title, body string) *Info {
	lines := strings.Split(body, "\n")
	width := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > width {
			width = w
		}
	}
	return &Info{Title: title, Text: body, Width: width, Height: len(lines)}
}

// boxArea returns the bordered box footprint anchored inside viewport.
func (i *Info) boxArea(viewport surface.Rect) surface.Rect {
	width := i.Width + 2 + 2  // border + horizontal margin
	height := i.Height + 2    // border
	return viewport.Intersection(surface.NewRect(
		viewport.Right()-width,
		viewport.Bottom()-(height+statusLineReserve),
		width,
		height,
	))
}

func (i *Info) paint(area surface.Rect, s *surface.Surface, borderStyle, titleStyle, bodyStyle lipgloss.Style) {
	s.ClearWith(area, borderStyle)
	drawBox(s, area, borderStyle)
	if i.Title != "" {
		s.SetString(area.Left()+1, area.Top(), i.Title, titleStyle, max(area.Width-2, 0))
	}
	inner := area.Inner(1, 1).Inner(1, 0)
	for row, line := range strings.Split(i.Text, "\n") {
		if row >= inner.Height {
			break
		}
		s.SetString(inner.Left(), inner.Top()+row, line, bodyStyle, inner.Width)
	}
}

// HandleEvent implements compositor.Component; the box is inert.
func (i *Info) HandleEvent(event tea.Msg, ctx *compositor.Context) compositor.EventResult {
	return compositor.Ignored(nil)
}

// ShouldUpdate implements compositor.Component.
func (i *Info) ShouldUpdate() bool { return true }

// RequiredSize implements compositor.Component. The box anchors itself
// during render, so it reports no sizing preference to its owner.
func (i *Info) RequiredSize(viewportW, viewportH int) (int, int, bool) {
	return 0, 0, false
}

// Render paints the box anchored bottom-right in viewport.
func (i *Info) Render(viewport surface.Rect, frame *surface.Surface, ctx *compositor.Context) {
	theme := ctx.Editor.Theme
	i.paint(i.boxArea(viewport), frame, *theme.InfoBorder, *theme.InfoTitle, *theme.InfoBody)
}

// RenderExt paints the identical box into the component's named surface.
func (i *Info) RenderExt(ctx *compositor.ContextExt) {
	area := i.boxArea(ctx.ScreenArea)
	s := ctx.Surfaces.Get(i.ID(), area)
	theme := ctx.Editor.Theme
	i.paint(area, s, *theme.InfoBorder, *theme.InfoTitle, *theme.InfoBody)
}

// Cursor implements compositor.Component.
func (i *Info) Cursor(area surface.Rect, e *editor.Editor) (*surface.Position, surface.CursorKind) {
	return nil, surface.CursorHidden
}

// CursorExt implements compositor.Component.
func (i *Info) CursorExt(e *editor.Editor) ([]surface.Position, string, bool) {
	return nil, "", false
}

// ID implements compositor.Component.
func (i *Info) ID() string { return "info" }

// drawBox outlines rect with single-line border runes.
func drawBox(s *surface.Surface, rect surface.Rect, style lipgloss.Style) {
	if rect.Width < 2 || rect.Height < 2 {
		return
	}
	left, right := rect.Left(), rect.Right()-1
	top, bottom := rect.Top(), rect.Bottom()-1
	for x := left + 1; x < right; x++ {
		s.SetCell(x, top, surface.Cell{Rune: '─', Style: style})
		s.SetCell(x, bottom, surface.Cell{Rune: '─', Style: style})
	}
	for y := top + 1; y < bottom; y++ {
		s.SetCell(left, y, surface.Cell{Rune: '│', Style: style})
		s.SetCell(right, y, surface.Cell{Rune: '│', Style: style})
	}
	s.SetCell(left, top, surface.Cell{Rune: '┌', Style: style})
	s.SetCell(right, top, surface.Cell{Rune: '┐', Style: style})
	s.SetCell(left, bottom, surface.Cell{Rune: '└', Style: style})
	s.SetCell(right, bottom, surface.Cell{Rune: '┘', Style: style})
}
