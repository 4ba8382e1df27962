package events

import "github.com/atomicstack/termcompose/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Score(pattern string, matches, options int) {
	logging.Trace("menu.score", map[string]interface{}{
		"pattern": pattern,
		"matches": matches,
		"options": options,
	})
}

func (MenuTracer) Cursor(cursor, matches int) {
	logging.Trace("menu.cursor", map[string]interface{}{"cursor": cursor, "matches": matches})
}

func (MenuTracer) Validate(label string) {
	logging.Trace("menu.validate", map[string]interface{}{"label": label})
}

func (MenuTracer) Abort(interacted bool) {
	logging.Trace("menu.abort", map[string]interface{}{"interacted": interacted})
}
