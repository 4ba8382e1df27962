// Package editor holds the shared application state handed to every layer
// during event handling and rendering: theme styles, the macro recording
// buffer, the status message, and the pending-write flush hooks.
package editor

import (
	"errors"

	"github.com/atomicstack/termcompose/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

// MacroRecording is the active key recording, if any. The compositor
// appends every key press to Keys before dispatching it, so consumed keys
// are captured too.
type MacroRecording struct {
	Register rune
	Keys     []tea.KeyMsg
}

// Editor is the mutable shared state handle.
type Editor struct {
	Theme *theme.Styles

	macro      *MacroRecording
	status     string
	flushHooks []func() error
}

// New returns an editor handle using the default theme.
func New() *Editor {
	return &Editor{Theme: theme.Default()}
}

// StartMacroRecording begins recording key presses into the register.
// Any recording already in progress is discarded.
func (e *Editor) StartMacroRecording(register rune) {
	e.macro = &MacroRecording{Register: register}
}

// StopMacroRecording ends the active recording and returns it, or nil when
// none was active.
func (e *Editor) StopMacroRecording() *MacroRecording {
	rec := e.macro
	e.macro = nil
	return rec
}

// MacroRecording returns the active recording, or nil.
func (e *Editor) MacroRecording() *MacroRecording {
	return e.macro
}

// SetStatus records a transient status message for the host to display.
func (e *Editor) SetStatus(msg string) { e.status = msg }

// TakeStatus returns and clears the current status message.
func (e *Editor) TakeStatus() string {
	msg := e.status
	e.status = ""
	return msg
}

// RegisterFlushHook adds a callback run by FlushWrites. Hooks stand in for
// the document layer's pending persistent writes.
func (e *Editor) RegisterFlushHook(hook func() error) {
	e.flushHooks = append(e.flushHooks, hook)
}

// FlushWrites runs every registered flush hook and returns their errors
// joined into one.
func (e *Editor) FlushWrites() error {
	var errs []error
	for _, hook := range e.flushHooks {
		if err := hook(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
