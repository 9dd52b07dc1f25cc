package cache

import (
	"context"
	"fmt"
	"testing"
)

func BenchmarkClassify(b *testing.B) {
	keys := []string{
		"pipeline:def:deploy",
		"run:status:completed:42",
		"pipelines:list",
		"run:events:42",
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Classify(keys[i%len(keys)])
	}
}

func BenchmarkContext_Prefix(b *testing.B) {
	scope := NewContext("alice", "acme", "prod")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = scope.Prefix()
	}
}

func BenchmarkCache_Put(b *testing.B) {
	c := New(DefaultConfig())
	ctx := context.Background()
	scope := testScope()
	value := map[string]any{"name": "deploy", "steps": []any{"build", "test"}}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(ctx, scope, fmt.Sprintf("run:events:%d", i%1000), value)
	}
}

func BenchmarkCache_GetHit(b *testing.B) {
	c := New(DefaultConfig())
	ctx := context.Background()
	scope := testScope()
	c.Put(ctx, scope, "pipeline:def:deploy", map[string]any{"name": "deploy"})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(ctx, scope, "pipeline:def:deploy")
	}
}

func BenchmarkCache_GetMiss(b *testing.B) {
	c := New(DefaultConfig())
	ctx := context.Background()
	scope := testScope()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(ctx, scope, "run:events:absent")
	}
}

func BenchmarkCache_InvalidatePattern(b *testing.B) {
	c := New(DefaultConfig())
	ctx := context.Background()
	scope := testScope()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		for j := 0; j < 100; j++ {
			c.Put(ctx, scope, fmt.Sprintf("pipeline:runs:p%d", j), j)
		}
		b.StartTimer()
		c.InvalidatePattern(ctx, scope, "pipeline:runs:")
	}
}

func BenchmarkCache_ConcurrentGet(b *testing.B) {
	c := New(DefaultConfig())
	ctx := context.Background()
	scope := testScope()
	c.Put(ctx, scope, "pipelines:list", []any{"p1", "p2"})

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Get(ctx, scope, "pipelines:list")
		}
	})
}

func BenchmarkCloneValue(b *testing.B) {
	value := map[string]any{
		"name": "deploy",
		"config": map[string]any{
			"timeout": float64(30),
			"steps":   []any{"build", "test", "release"},
		},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cloneValue(value)
	}
}
