package duplicate_test

import (
	"github.com/adamjmurray/producer-pal/internal/duplicate"
	"github.com/adamjmurray/producer-pal/pkg/adapters/memory"
)

func newEngine(s *memory.Set, opts ...duplicate.Option) *duplicate.Engine {
	return duplicate.New(s.Client(), opts...)
}

func intPtr(n int) *int { return &n }
