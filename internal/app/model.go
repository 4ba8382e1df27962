package app

import (
	"strings"

	"github.com/atomicstack/termcompose/internal/compositor"
	"github.com/atomicstack/termcompose/internal/editor"
	"github.com/atomicstack/termcompose/internal/job"
	"github.com/atomicstack/termcompose/internal/logging"
	"github.com/atomicstack/termcompose/internal/logging/events"
	"github.com/atomicstack/termcompose/internal/surface"
	"github.com/atomicstack/termcompose/internal/theme"
	"github.com/atomicstack/termcompose/internal/ui"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const keyHints = "tab/ctrl-n next · shift-tab/ctrl-p prev · enter run · esc close"

// CommandMenu is the concrete menu kind hosted by the demo model.
type CommandMenu = ui.Menu[CommandData, CommandItem]

// Model hosts a compositor inside a Bubble Tea program: it owns the frame
// surface, the shared editor state, the job registry, and a filter prompt
// whose text drives menu scoring.
type Model struct {
	comp     *compositor.Compositor
	ed       *editor.Editor
	jobs     *job.Jobs
	frame    *surface.Surface
	surfaces *surface.Registry

	filter textinput.Model

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	quitting    bool
}

// NewModel initialises the compositor stack with the demo layers.
func NewModel(cfg Config) *Model {
	styles := theme.Default()

	ti := textinput.New()
	ti.Prompt = "> "
	if styles.FilterPrompt != nil {
		ti.PromptStyle = *styles.FilterPrompt
	}
	if styles.Filter != nil {
		ti.TextStyle = *styles.Filter
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	m := &Model{
		comp:     compositor.New(surface.NewRect(0, 0, cfg.Width, cfg.Height)),
		ed:       editor.New(),
		jobs:     job.New(),
		frame:    surface.New(surface.NewRect(0, 0, cfg.Width, cfg.Height)),
		surfaces: surface.NewRegistry(),
		filter:   ti,
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}

	title := cfg.Title
	if title == "" {
		title = "termcompose"
	}
	m.comp.Push(ui.NewText(title + "\n" + strings.Repeat("─", len(title))))
	m.comp.Push(ui.NewInfo("keys", keyHints))
	menu := ui.NewMenu(DefaultCommands(), CommandData{Prefix: "editor."}, m.onMenuEvent)
	menu.AllowArrowStealing(cfg.ArrowStealing)
	m.comp.Push(menu)
	return m
}

func (m *Model) onMenuEvent(e *editor.Editor, item *CommandItem, event ui.MenuEvent) {
	switch event {
	case ui.MenuValidate:
		if item != nil {
			e.SetStatus("ran " + item.Name)
			events.Menu.Validate(item.Name)
		}
	case ui.MenuAbort, ui.MenuSoftAbort:
		e.SetStatus("")
	}
}

func (m *Model) context() *compositor.Context {
	return &compositor.Context{Editor: m.ed, Jobs: m.jobs}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes messages into the compositor and keeps the filter prompt
// in sync with the visible menu.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	if !m.fixedWidth {
		m.width = msg.Width
	}
	if !m.fixedHeight {
		// reserve the filter prompt row and the status row
		m.height = max(msg.Height-2, 0)
	}
	area := surface.NewRect(0, 0, m.width, m.height)
	m.comp.Resize(area)
	m.frame.Resize(area)
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlQ {
		return m, m.quit()
	}

	if m.comp.HandleEvent(msg, m.context()) {
		if m.comp.Layers() == 0 {
			return m, m.quit()
		}
		return m, nil
	}

	// Unconsumed keys extend the filter text; rescoring reshapes the
	// menu's match set.
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if value := m.filter.Value(); value != before {
		if menu, ok := compositor.FindID[*CommandMenu](m.comp, "menu"); ok {
			menu.Score(value)
		}
		events.App.Filter(value)
	}
	if m.comp.Layers() == 0 {
		return m, m.quit()
	}
	return m, cmd
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	ctx := m.context()
	if err := ctx.BlockTryFlushWrites(); err != nil {
		logging.Error(err)
		events.App.Flush(err)
	}
	events.App.Stop()
	return tea.Quit
}

// View renders the layer stack bottom-to-top into the frame and
// serialises it beneath the filter prompt.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}
	area := m.comp.Size()
	m.frame.Resize(area)
	m.frame.Clear()
	m.comp.Render(area, m.frame, m.context())

	var b strings.Builder
	b.WriteString(m.filter.View())
	b.WriteByte('\n')
	b.WriteString(m.frame.Render())
	if status := m.ed.TakeStatus(); status != "" {
		b.WriteByte('\n')
		b.WriteString(m.ed.Theme.Status.Render(status))
	}
	return b.String()
}

// Compositor exposes the layer stack for tests.
func (m *Model) Compositor() *compositor.Compositor { return m.comp }

// Editor exposes the shared state handle for tests.
func (m *Model) Editor() *editor.Editor { return m.ed }

// Frame exposes the current frame surface for tests.
func (m *Model) Frame() *surface.Surface { return m.frame }
