package audit

import (
	"context"
	"log/slog"
)

// Worker drains audit events from a channel into a store so the sweep loop
// never blocks on the audit sink. A nil logger silences append failures.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run consumes until ctx is cancelled or the inbox closes. Append failures
// are logged and skipped; losing an audit record must not stall the sweep.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"action", event.Action,
					"principal", event.Principal,
					"error", err,
				)
			}
		}
	}
}
