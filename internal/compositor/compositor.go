// Package compositor maintains the ordered stack of UI layers, routes
// input events from the topmost layer downward, and drives both render
// paths each frame.
package compositor

import (
	"github.com/atomicstack/termcompose/internal/editor"
	"github.com/atomicstack/termcompose/internal/logging/events"
	"github.com/atomicstack/termcompose/internal/surface"
	tea "github.com/charmbracelet/bubbletea"
)

// Callback is a deferred unit of work produced during event handling and
// applied against the live compositor strictly after the dispatch scan, so
// a layer may push or pop (including itself) without invalidating the
// iteration in progress.
type Callback func(*Compositor, *Context)

// EventResult reports how a layer responded to an event. Either way it may
// carry one deferred callback.
type EventResult struct {
	consumed bool
	callback Callback
}

// Consumed marks the event as handled; lower layers never see it.
func Consumed(cb Callback) EventResult {
	return EventResult{consumed: true, callback: cb}
}

// Ignored passes the event on to the next lower layer.
func Ignored(cb Callback) EventResult {
	return EventResult{callback: cb}
}

// IsConsumed reports whether the layer handled the event.
func (r EventResult) IsConsumed() bool { return r.consumed }

// Component is the contract every UI layer implements.
type Component interface {
	// HandleEvent processes an input event. Implementations that do not
	// care about input return Ignored(nil).
	HandleEvent(event tea.Msg, ctx *Context) EventResult

	// ShouldUpdate hints that a redraw may be skipped for this layer.
	ShouldUpdate() bool

	// Render paints the component onto the shared frame within area.
	// Clipping beyond area is the component's own responsibility.
	Render(area surface.Rect, frame *surface.Surface, ctx *Context)

	// RenderExt paints the component into its named surface from the
	// registry carried by ctx, for the host render path. Output must be
	// visually equivalent to Render for the same state.
	RenderExt(ctx *ContextExt)

	// Cursor reports the cursor anchor for this layer, or nil when the
	// layer does not place the cursor.
	Cursor(area surface.Rect, e *editor.Editor) (*surface.Position, surface.CursorKind)

	// CursorExt reports host cursor anchors (for IME placement) plus a
	// label, or ok=false when the layer has none.
	CursorExt(e *editor.Editor) (positions []surface.Position, label string, ok bool)

	// RequiredSize is a sizing hint for the owner. The returned size may
	// exceed the viewport to signal overflow; ok=false means the
	// component has no preference.
	RequiredSize(viewportWidth, viewportHeight int) (width, height int, ok bool)

	// ID returns the stable layer id, or "" when the layer has none. Ids
	// are expected unique among live layers.
	ID() string
}

// Compositor owns the layer stack. The last layer is topmost: it is drawn
// last and offered events first.
type Compositor struct {
	layers []Component
	area   surface.Rect
}

// New creates a compositor covering area.
func New(area surface.Rect) *Compositor {
	return &Compositor{area: area}
}

// Size returns the current viewport rect.
func (c *Compositor) Size() surface.Rect { return c.area }

// Resize updates the viewport rect on terminal resize.
func (c *Compositor) Resize(area surface.Rect) {
	c.area = area
	events.Compositor.Resize(area.Width, area.Height)
}

// Layers reports the number of live layers.
func (c *Compositor) Layers() int { return len(c.layers) }

// Push appends a layer on top of all existing layers. The layer's
// RequiredSize is queried once so it can initialise against the viewport
// before its first render.
func (c *Compositor) Push(layer Component) {
	layer.RequiredSize(c.area.Width, c.area.Height)
	c.layers = append(c.layers, layer)
	events.Compositor.Push(layer.ID(), len(c.layers))
}

// ReplaceOrPush swaps the layer holding id in place, preserving its stack
// position, or pushes the layer when no layer has that id.
func (c *Compositor) ReplaceOrPush(id string, layer Component) {
	for i, existing := range c.layers {
		if existing.ID() == id {
			c.layers[i] = layer
			events.Compositor.Replace(id)
			return
		}
	}
	c.Push(layer)
}

// Pop removes and returns the topmost layer, or nil when the stack is
// empty.
func (c *Compositor) Pop() Component {
	if len(c.layers) == 0 {
		return nil
	}
	layer := c.layers[len(c.layers)-1]
	c.layers = c.layers[:len(c.layers)-1]
	events.Compositor.Pop(layer.ID(), len(c.layers))
	return layer
}

// Remove takes out the first layer whose id matches, preserving the
// relative order of the rest. It returns nil when no layer matches.
func (c *Compositor) Remove(id string) Component {
	for i, layer := range c.layers {
		if layer.ID() == id {
			c.layers = append(c.layers[:i], c.layers[i+1:]...)
			events.Compositor.Remove(id, true)
			return layer
		}
	}
	events.Compositor.Remove(id, false)
	return nil
}

// HandleEvent bubbles the event from the topmost layer downward until a
// layer consumes it or the stack is exhausted, then applies the deferred
// callbacks in encounter order. It reports whether the event was consumed.
func (c *Compositor) HandleEvent(event tea.Msg, ctx *Context) bool {
	// Key presses feed the active macro recording before dispatch, so
	// recordings capture keys that layers consume.
	if key, isKey := event.(tea.KeyMsg); isKey {
		if rec := ctx.Editor.MacroRecording(); rec != nil {
			rec.Keys = append(rec.Keys, key)
		}
	}

	var callbacks []Callback
	consumed := false

	for i := len(c.layers) - 1; i >= 0; i-- {
		result := c.layers[i].HandleEvent(event, ctx)
		if result.callback != nil {
			callbacks = append(callbacks, result.callback)
		}
		if result.consumed {
			consumed = true
			break
		}
	}

	// Callbacks run strictly after the scan so they may mutate the stack.
	for _, cb := range callbacks {
		cb(c, ctx)
	}

	events.Compositor.Event(consumed, len(callbacks))
	return consumed
}

// Render walks the layers bottom to top, each painting over the shared
// frame.
func (c *Compositor) Render(area surface.Rect, frame *surface.Surface, ctx *Context) {
	for _, layer := range c.layers {
		layer.Render(area, frame, ctx)
	}
}

// RenderExt walks the layers bottom to top through the registry render
// path.
func (c *Compositor) RenderExt(ctx *ContextExt) {
	for _, layer := range c.layers {
		layer.RenderExt(ctx)
	}
}

// Cursor scans top to bottom and returns the first reported cursor
// position with its kind, or (nil, CursorHidden).
func (c *Compositor) Cursor(area surface.Rect, e *editor.Editor) (*surface.Position, surface.CursorKind) {
	for i := len(c.layers) - 1; i >= 0; i-- {
		if pos, kind := c.layers[i].Cursor(area, e); pos != nil {
			return pos, kind
		}
	}
	return nil, surface.CursorHidden
}

// CursorExt scans top to bottom and returns the first present host cursor
// anchors.
func (c *Compositor) CursorExt(e *editor.Editor) ([]surface.Position, string, bool) {
	for i := len(c.layers) - 1; i >= 0; i-- {
		if positions, label, ok := c.layers[i].CursorExt(e); ok {
			return positions, label, true
		}
	}
	return nil, "", false
}

// Find locates the first layer of the concrete type T, scanning from the
// bottom of the stack.
func Find[T Component](c *Compositor) (T, bool) {
	for _, layer := range c.layers {
		if match, ok := layer.(T); ok {
			return match, true
		}
	}
	var zero T
	return zero, false
}

// FindID locates the layer holding id and returns it as the concrete type
// T. A present id paired with a different concrete type is a caller error;
// it yields no result rather than failing fast, consistently across the
// package.
func FindID[T Component](c *Compositor, id string) (T, bool) {
	for _, layer := range c.layers {
		if layer.ID() == id {
			match, ok := layer.(T)
			return match, ok
		}
	}
	var zero T
	return zero, false
}

// HasComponent reports whether any live layer has the concrete type T.
func HasComponent[T Component](c *Compositor) bool {
	_, ok := Find[T](c)
	return ok
}
