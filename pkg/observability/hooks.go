package observability

import (
	"context"

	"github.com/adamjmurray/producer-pal/pkg/domain"
)

// Combine merges multiple lifecycle hook sets into one. Hooks fire in
// registration order; nil entries are skipped.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDuplicateStart: func(ctx context.Context, e *domain.DuplicateEvent) {
			for _, h := range hooks {
				if h.OnDuplicateStart != nil {
					h.OnDuplicateStart(ctx, e)
				}
			}
		},
		OnDuplicateEnd: func(ctx context.Context, e *domain.DuplicateEvent) {
			for _, h := range hooks {
				if h.OnDuplicateEnd != nil {
					h.OnDuplicateEnd(ctx, e)
				}
			}
		},
	}
}
