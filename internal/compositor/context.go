package compositor

import (
	"github.com/atomicstack/termcompose/internal/editor"
	"github.com/atomicstack/termcompose/internal/job"
	"github.com/atomicstack/termcompose/internal/surface"
)

// Context bundles the shared state handed to layers during event handling
// and frame rendering.
type Context struct {
	Editor *editor.Editor
	Jobs   *job.Jobs

	// Scroll carries a pending scroll amount between a consuming layer
	// and its owner, when set.
	Scroll *int
}

// BlockTryFlushWrites waits for all pending background jobs, then flushes
// any pending persistent writes. It blocks the calling thread and is the
// single designated bridge for UI flows that must guarantee durability
// before proceeding; failures from both stages come back as one joined
// error.
func (ctx *Context) BlockTryFlushWrites() error {
	if err := ctx.Jobs.Finish(); err != nil {
		return err
	}
	return ctx.Editor.FlushWrites()
}

// ContextExt extends Context for the registry render path with the named
// surface registry and the current screen geometry.
type ContextExt struct {
	Context

	Surfaces   *surface.Registry
	EditorArea surface.Rect
	ScreenArea surface.Rect
}
