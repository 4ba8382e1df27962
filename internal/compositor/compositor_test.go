package compositor

import (
	"testing"

	"github.com/atomicstack/termcompose/internal/editor"
	"github.com/atomicstack/termcompose/internal/job"
	"github.com/atomicstack/termcompose/internal/surface"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fakeLayer is a scriptable component for dispatch tests.
type fakeLayer struct {
	id       string
	result   EventResult
	seen     int
	rendered []rune
	fill     rune
	cursor   *surface.Position
	kind     surface.CursorKind
}

func (f *fakeLayer) HandleEvent(event tea.Msg, ctx *Context) EventResult {
	f.seen++
	return f.result
}

func (f *fakeLayer) ShouldUpdate() bool { return true }

func (f *fakeLayer) Render(area surface.Rect, frame *surface.Surface, ctx *Context) {
	if f.fill == 0 {
		return
	}
	for y := area.Top(); y < area.Bottom(); y++ {
		for x := area.Left(); x < area.Right(); x++ {
			frame.SetCell(x, y, surface.Cell{Rune: f.fill, Style: lipgloss.NewStyle()})
		}
	}
}

func (f *fakeLayer) RenderExt(ctx *ContextExt) {
	s := ctx.Surfaces.Get(f.id, surface.NewRect(0, 0, 2, 1))
	s.SetCell(0, 0, surface.Cell{Rune: f.fill})
}

func (f *fakeLayer) Cursor(area surface.Rect, e *editor.Editor) (*surface.Position, surface.CursorKind) {
	return f.cursor, f.kind
}

func (f *fakeLayer) CursorExt(e *editor.Editor) ([]surface.Position, string, bool) {
	return nil, "", false
}

func (f *fakeLayer) RequiredSize(viewportW, viewportH int) (int, int, bool) {
	return 0, 0, false
}

func (f *fakeLayer) ID() string { return f.id }

// secondLayer gives Find a second concrete type to distinguish.
type secondLayer struct {
	fakeLayer
}

func testContext() *Context {
	return &Context{Editor: editor.New(), Jobs: job.New()}
}

func testArea() surface.Rect {
	return surface.NewRect(0, 0, 10, 4)
}

func TestHandleEventStopsAtFirstConsumer(t *testing.T) {
	a := &fakeLayer{id: "a", result: Ignored(nil)}
	b := &fakeLayer{id: "b", result: Consumed(nil)}
	c := &fakeLayer{id: "c", result: Ignored(nil)}

	comp := New(testArea())
	comp.Push(a)
	comp.Push(b)
	comp.Push(c)

	consumed := comp.HandleEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, testContext())
	if !consumed {
		t.Fatal("expected event to be consumed")
	}
	if c.seen != 1 {
		t.Fatalf("expected topmost layer to see the event, saw %d", c.seen)
	}
	if b.seen != 1 {
		t.Fatalf("expected consuming layer to see the event, saw %d", b.seen)
	}
	if a.seen != 0 {
		t.Fatalf("expected bottom layer to never observe the event, saw %d", a.seen)
	}
}

func TestHandleEventReturnsFalseWhenNoLayerConsumes(t *testing.T) {
	a := &fakeLayer{id: "a", result: Ignored(nil)}
	b := &fakeLayer{id: "b", result: Ignored(nil)}

	comp := New(testArea())
	comp.Push(a)
	comp.Push(b)

	if comp.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter}, testContext()) {
		t.Fatal("expected event to bubble through unconsumed")
	}
	if a.seen != 1 || b.seen != 1 {
		t.Fatalf("expected both layers to see the event, got %d/%d", a.seen, b.seen)
	}
}

func TestCallbacksRunAfterScanInEncounterOrder(t *testing.T) {
	var order []string
	top := &fakeLayer{id: "top"}
	top.result = Ignored(func(c *Compositor, ctx *Context) {
		order = append(order, "top")
	})
	bottom := &fakeLayer{id: "bottom"}
	bottom.result = Consumed(func(c *Compositor, ctx *Context) {
		order = append(order, "bottom")
	})

	comp := New(testArea())
	comp.Push(bottom)
	comp.Push(top)

	comp.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter}, testContext())
	if len(order) != 2 || order[0] != "top" || order[1] != "bottom" {
		t.Fatalf("expected callbacks in encounter order [top bottom], got %v", order)
	}
}

func TestSelfClosingLayerDoesNotCorruptScan(t *testing.T) {
	bottom := &fakeLayer{id: "bottom", result: Ignored(nil)}
	top := &fakeLayer{id: "top"}
	top.result = Consumed(func(c *Compositor, ctx *Context) {
		c.Pop()
	})

	comp := New(testArea())
	comp.Push(bottom)
	comp.Push(top)

	if !comp.HandleEvent(tea.KeyMsg{Type: tea.KeyEsc}, testContext()) {
		t.Fatal("expected event consumed")
	}
	if comp.Layers() != 1 {
		t.Fatalf("expected the top layer to have closed itself, %d layers left", comp.Layers())
	}
	if _, ok := FindID[*fakeLayer](comp, "top"); ok {
		t.Fatal("expected top layer removed")
	}
}

func TestMacroRecordingCapturesKeysBeforeDispatch(t *testing.T) {
	consumer := &fakeLayer{id: "c", result: Consumed(nil)}
	comp := New(testArea())
	comp.Push(consumer)

	ctx := testContext()
	ctx.Editor.StartMacroRecording('q')

	comp.HandleEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, ctx)
	comp.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter}, ctx)

	rec := ctx.Editor.StopMacroRecording()
	if rec == nil || len(rec.Keys) != 2 {
		t.Fatalf("expected 2 recorded keys, got %#v", rec)
	}
	if rec.Keys[1].Type != tea.KeyEnter {
		t.Fatalf("expected enter recorded second, got %v", rec.Keys[1].Type)
	}
}

func TestRenderPaintsBottomToTop(t *testing.T) {
	bottom := &fakeLayer{id: "bottom", fill: 'b'}
	top := &fakeLayer{id: "top", fill: 't'}

	comp := New(testArea())
	comp.Push(bottom)
	comp.Push(top)

	frame := surface.New(testArea())
	comp.Render(testArea(), frame, testContext())
	if got := frame.Cell(3, 2).Rune; got != 't' {
		t.Fatalf("expected topmost writer to win, got %q", got)
	}
}

func TestCursorReturnsFirstTopDownHit(t *testing.T) {
	bottom := &fakeLayer{id: "bottom", cursor: &surface.Position{Row: 1, Col: 1}, kind: surface.CursorBar}
	top := &fakeLayer{id: "top", cursor: &surface.Position{Row: 2, Col: 3}, kind: surface.CursorBlock}
	middle := &fakeLayer{id: "middle"}

	comp := New(testArea())
	comp.Push(bottom)
	comp.Push(middle)
	comp.Push(top)

	pos, kind := comp.Cursor(testArea(), editor.New())
	if pos == nil || *pos != (surface.Position{Row: 2, Col: 3}) || kind != surface.CursorBlock {
		t.Fatalf("expected topmost cursor, got %v/%v", pos, kind)
	}
}

func TestCursorHiddenWhenNoLayerReports(t *testing.T) {
	comp := New(testArea())
	comp.Push(&fakeLayer{id: "a"})

	pos, kind := comp.Cursor(testArea(), editor.New())
	if pos != nil || kind != surface.CursorHidden {
		t.Fatalf("expected hidden cursor, got %v/%v", pos, kind)
	}
}

func TestReplaceOrPushPreservesStackPosition(t *testing.T) {
	a := &fakeLayer{id: "a"}
	b := &fakeLayer{id: "b"}
	c := &fakeLayer{id: "c"}

	comp := New(testArea())
	comp.Push(a)
	comp.Push(b)
	comp.Push(c)

	replacement := &fakeLayer{id: "b", fill: 'r'}
	comp.ReplaceOrPush("b", replacement)
	if comp.Layers() != 3 {
		t.Fatalf("expected in-place replace, got %d layers", comp.Layers())
	}
	if top := comp.Pop(); top != c {
		t.Fatalf("expected c to remain topmost, got %v", top.ID())
	}
	if got, ok := FindID[*fakeLayer](comp, "b"); !ok || got != replacement {
		t.Fatal("expected replacement stored under its old position")
	}

	comp.ReplaceOrPush("missing", &fakeLayer{id: "missing"})
	if comp.Layers() != 3 {
		t.Fatalf("expected push for unknown id, got %d layers", comp.Layers())
	}
}

func TestRemovePreservesRelativeOrder(t *testing.T) {
	a := &fakeLayer{id: "a"}
	b := &fakeLayer{id: "b"}
	c := &fakeLayer{id: "c"}

	comp := New(testArea())
	comp.Push(a)
	comp.Push(b)
	comp.Push(c)

	if removed := comp.Remove("b"); removed != b {
		t.Fatal("expected b removed")
	}
	if top := comp.Pop(); top != c {
		t.Fatalf("expected c still topmost, got %v", top.ID())
	}
	if bottom := comp.Pop(); bottom != a {
		t.Fatalf("expected a at the bottom, got %v", bottom.ID())
	}
	if comp.Remove("b") != nil {
		t.Fatal("expected second remove to find nothing")
	}
}

func TestFindLocatesConcreteType(t *testing.T) {
	plain := &fakeLayer{id: "plain"}
	other := &secondLayer{fakeLayer{id: "other"}}

	comp := New(testArea())
	comp.Push(plain)
	comp.Push(other)

	found, ok := Find[*secondLayer](comp)
	if !ok || found != other {
		t.Fatal("expected Find to locate the secondLayer instance")
	}
	if !HasComponent[*fakeLayer](comp) {
		t.Fatal("expected HasComponent to see the fakeLayer")
	}
}

func TestFindIDWithWrongTypeYieldsNoResult(t *testing.T) {
	comp := New(testArea())
	comp.Push(&fakeLayer{id: "layer"})

	if _, ok := FindID[*secondLayer](comp, "layer"); ok {
		t.Fatal("expected mismatched concrete type to yield no result")
	}
	if _, ok := FindID[*fakeLayer](comp, "layer"); !ok {
		t.Fatal("expected matching concrete type to resolve")
	}
	if _, ok := FindID[*fakeLayer](comp, "absent"); ok {
		t.Fatal("expected unknown id to yield no result")
	}
}

func TestBlockTryFlushWritesAggregatesJobAndFlushErrors(t *testing.T) {
	ctx := testContext()
	flushed := false
	ctx.Editor.RegisterFlushHook(func() error {
		flushed = true
		return nil
	})
	if err := ctx.BlockTryFlushWrites(); err != nil {
		t.Fatalf("expected clean flush, got %v", err)
	}
	if !flushed {
		t.Fatal("expected flush hook to run")
	}
}
