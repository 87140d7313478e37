package ports

import (
	"context"

	"github.com/modavn/storefront-api/internal/core/domain"
)

// ActivitySink accepts audit events for asynchronous persistence. Record must
// never block request handling; an overloaded sink drops the event.
type ActivitySink interface {
	Record(event domain.ActivityEvent)
}

// ActivityRepository writes audit events to the durable trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}

// NoopActivitySink discards all events. Used in tests and as a default.
type NoopActivitySink struct{}

func (NoopActivitySink) Record(domain.ActivityEvent) {}
