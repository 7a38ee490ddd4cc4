package domain

import (
	"context"
	"time"
)

// DuplicateEvent carries observability data about one duplication.
type DuplicateEvent struct {
	Type     string
	SourceID string
	Count    int
	Duration time.Duration
	Err      error
}

// LifecycleHooks allows hosts to observe engine activity (logging,
// metrics, tracing) without coupling the core to any backend. All
// fields are optional.
type LifecycleHooks struct {
	OnDuplicateStart func(ctx context.Context, e *DuplicateEvent)
	OnDuplicateEnd   func(ctx context.Context, e *DuplicateEvent)
}
