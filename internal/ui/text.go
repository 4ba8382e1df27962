// Package ui holds the reference components implementing the compositor
// contract: Menu, Text, and Info.
package ui

import (
	"strings"

	"github.com/atomicstack/termcompose/internal/compositor"
	"github.com/atomicstack/termcompose/internal/editor"
	"github.com/atomicstack/termcompose/internal/surface"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

// Text is a read-only block of lines. Its intrinsic size is clamped to
// the viewport (never re-wrapped) and memoised until the viewport
// changes.
type Text struct {
	lines []string

	width     int
	height    int
	viewportW int
	viewportH int
	sized     bool
}

// NewText splits content into lines.
func NewText(content string) *Text {
	return &Text{lines: strings.Split(content, "\n")}
}

// HandleEvent implements compositor.Component; text never consumes input.
func (t *Text) HandleEvent(event tea.Msg, ctx *compositor.Context) compositor.EventResult {
	return compositor.Ignored(nil)
}

// ShouldUpdate implements compositor.Component.
func (t *Text) ShouldUpdate() bool { return true }

// RequiredSize clamps the intrinsic content size to the viewport and
// memoises the result until the viewport changes.
func (t *Text) RequiredSize(viewportW, viewportH int) (int, int, bool) {
	if !t.sized || viewportW != t.viewportW || viewportH != t.viewportH {
		contentWidth := 0
		for _, line := range t.lines {
			if w := ansi.StringWidth(line); w > contentWidth {
				contentWidth = w
			}
		}
		t.width = min(contentWidth, viewportW)
		t.height = min(len(t.lines), viewportH)
		t.viewportW = viewportW
		t.viewportH = viewportH
		t.sized = true
	}
	return t.width, t.height, true
}

// Render paints the lines clipped to area.
func (t *Text) Render(area surface.Rect, frame *surface.Surface, ctx *compositor.Context) {
	style := *ctx.Editor.Theme.Text
	for i, line := range t.lines {
		if i >= area.Height {
			break
		}
		clipped := truncate.String(line, uint(area.Width))
		frame.SetString(area.Left(), area.Top()+i, clipped, style, area.Width)
	}
}

// RenderExt paints the same content into the component's named surface.
func (t *Text) RenderExt(ctx *compositor.ContextExt) {
	area := surface.NewRect(0, 0, t.width, t.height)
	s := ctx.Surfaces.Get(t.ID(), area)
	style := *ctx.Editor.Theme.Text
	for i, line := range t.lines {
		if i >= area.Height {
			break
		}
		clipped := truncate.String(line, uint(area.Width))
		s.SetString(area.Left(), area.Top()+i, clipped, style, area.Width)
	}
}

// Cursor implements compositor.Component.
func (t *Text) Cursor(area surface.Rect, e *editor.Editor) (*surface.Position, surface.CursorKind) {
	return nil, surface.CursorHidden
}

// CursorExt implements compositor.Component.
func (t *Text) CursorExt(e *editor.Editor) ([]surface.Position, string, bool) {
	return nil, "", false
}

// ID implements compositor.Component.
func (t *Text) ID() string { return "text" }
