package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies report_id and category from the event context into log
// events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := ReportID(ctx); id != "" {
		e.Str("report_id", id)
	}
	if c := Category(ctx); c != "" {
		e.Str("category", c)
	}
}
