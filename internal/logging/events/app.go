package events

import "github.com/atomicstack/termcompose/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop() {
	logging.Trace("app.stop", nil)
}

func (AppTracer) Flush(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.flush", payload)
}

func (AppTracer) Filter(pattern string) {
	logging.Trace("app.filter", map[string]interface{}{"pattern": pattern})
}
