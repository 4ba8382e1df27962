package events

import "github.com/atomicstack/termcompose/internal/logging"

type CompositorTracer struct{}

var Compositor = CompositorTracer{}

func (CompositorTracer) Push(id string, layers int) {
	logging.Trace("compositor.push", map[string]interface{}{"id": id, "layers": layers})
}

func (CompositorTracer) Pop(id string, layers int) {
	logging.Trace("compositor.pop", map[string]interface{}{"id": id, "layers": layers})
}

func (CompositorTracer) Replace(id string) {
	logging.Trace("compositor.replace", map[string]interface{}{"id": id})
}

func (CompositorTracer) Remove(id string, found bool) {
	logging.Trace("compositor.remove", map[string]interface{}{"id": id, "found": found})
}

func (CompositorTracer) Event(consumed bool, callbacks int) {
	logging.Trace("compositor.event", map[string]interface{}{"consumed": consumed, "callbacks": callbacks})
}

func (CompositorTracer) Resize(width, height int) {
	logging.Trace("compositor.resize", map[string]interface{}{"width": width, "height": height})
}
