package app

import (
	"strings"
	"testing"

	"github.com/atomicstack/termcompose/internal/compositor"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestHarness() *Harness {
	return NewHarness(NewModel(Config{Width: 60, Height: 20}))
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeRunes(h *Harness, s string) {
	for _, r := range s {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModelStartsWithBackdropInfoAndMenu(t *testing.T) {
	h := newTestHarness()
	if got := h.Model().Compositor().Layers(); got != 3 {
		t.Fatalf("expected 3 layers, got %d", got)
	}
	if _, ok := compositor.FindID[*CommandMenu](h.Model().Compositor(), "menu"); !ok {
		t.Fatal("expected the command menu on the stack")
	}
}

func TestViewShowsBackdropAndKeyHints(t *testing.T) {
	h := newTestHarness()
	view := h.View()
	if !strings.Contains(view, "termcompose") {
		t.Fatal("expected the backdrop title in the view")
	}
	if !strings.Contains(view, "keys") {
		t.Fatal("expected the info box title in the view")
	}
}

func TestTabThenEnterRunsSelectedCommand(t *testing.T) {
	h := newTestHarness()

	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyEnter))

	if _, ok := compositor.FindID[*CommandMenu](h.Model().Compositor(), "menu"); ok {
		t.Fatal("expected the menu closed after validation")
	}
	if got := h.Model().Compositor().Layers(); got != 2 {
		t.Fatalf("expected backdrop and info left, got %d layers", got)
	}
	if view := h.View(); !strings.Contains(view, "ran editor.open") {
		t.Fatalf("expected the validation status in the view:\n%s", view)
	}
}

func TestTypingFiltersTheMenu(t *testing.T) {
	h := newTestHarness()
	typeRunes(h, "sav")

	if got := h.Model().filter.Value(); got != "sav" {
		t.Fatalf("expected filter text %q, got %q", "sav", got)
	}
	menu, ok := compositor.FindID[*CommandMenu](h.Model().Compositor(), "menu")
	if !ok {
		t.Fatal("expected the menu still open")
	}
	if got := menu.Len(); got != 2 {
		t.Fatalf("expected save and save-all to match, got %d", got)
	}
}

func TestEscapeClosesTheMenuWithoutQuitting(t *testing.T) {
	h := newTestHarness()
	h.Send(key(tea.KeyEsc))

	if _, ok := compositor.FindID[*CommandMenu](h.Model().Compositor(), "menu"); ok {
		t.Fatal("expected the menu dismissed")
	}
	if h.Model().quitting {
		t.Fatal("expected the app to stay alive with layers left")
	}
}

func TestCtrlQQuits(t *testing.T) {
	h := newTestHarness()
	h.Send(key(tea.KeyCtrlQ))

	if !h.Model().quitting {
		t.Fatal("expected quit on ctrl-q")
	}
	if h.View() != "" {
		t.Fatal("expected an empty final view")
	}
}

func TestResizePropagatesToCompositor(t *testing.T) {
	h := NewHarness(NewModel(Config{}))
	h.Send(tea.WindowSizeMsg{Width: 50, Height: 12})

	size := h.Model().Compositor().Size()
	// two rows reserved for the filter prompt and the status line
	if size.Width != 50 || size.Height != 10 {
		t.Fatalf("expected 50x10 compositor area, got %dx%d", size.Width, size.Height)
	}
}
