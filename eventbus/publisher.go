package eventbus

import (
	"context"

	"echo-journal/events"
)

// Publisher emits entry lifecycle events. Publishing is best-effort: the
// pipeline never fails a submission over a delivery problem.
type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Event) error
	Close()
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, events.Event) error { return nil }
func (NopPublisher) Close()                                             {}
