package observability_test

import (
	"context"
	"testing"

	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/adamjmurray/producer-pal/pkg/observability"
)

func TestCombine(t *testing.T) {
	var order []string
	logging := domain.LifecycleHooks{
		OnDuplicateStart: func(ctx context.Context, e *domain.DuplicateEvent) { order = append(order, "log-start") },
		OnDuplicateEnd:   func(ctx context.Context, e *domain.DuplicateEvent) { order = append(order, "log-end") },
	}
	metrics := domain.LifecycleHooks{
		OnDuplicateEnd: func(ctx context.Context, e *domain.DuplicateEvent) { order = append(order, "metrics-end") },
	}

	combined := observability.Combine(logging, metrics, domain.LifecycleHooks{})

	ctx := context.Background()
	combined.OnDuplicateStart(ctx, &domain.DuplicateEvent{Type: "track"})
	combined.OnDuplicateEnd(ctx, &domain.DuplicateEvent{Type: "track"})

	want := []string{"log-start", "log-end", "metrics-end"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
