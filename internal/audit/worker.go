package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink receives events after they are persisted, typically a message
// broker for downstream consumers.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// NopSink discards events. Used when no broker is configured.
type NopSink struct{}

func (NopSink) Publish(context.Context, Event) error { return nil }

// Worker consumes audit events from a channel and persists them. It
// keeps background processing off the request path.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	if sink == nil {
		sink = NopSink{}
	}
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"action", event.Action, "error", err.Error())
				continue
			}
			if err := w.sink.Publish(ctx, event); err != nil {
				// The trail is already persisted, broker delivery is
				// best effort.
				w.logger.WarnContext(ctx, "audit publish failed",
					"action", event.Action, "error", err.Error())
			}
		}
	}
}

// Service is the producer side handed to domain services. Emit never
// blocks the request path: when the inbox is full the event is dropped
// and logged.
type Service struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewService(inbox chan<- Event, logger *slog.Logger) *Service {
	return &Service{inbox: inbox, logger: logger}
}

func (s *Service) Emit(ctx context.Context, event Event) {
	if s == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case s.inbox <- event:
	default:
		s.logger.WarnContext(ctx, "audit inbox full, event dropped",
			"action", event.Action, "form_id", event.FormID)
	}
}
