//go:build unit

package cache

import (
	"context"
	"testing"
	"time"
	"wonders-cms/internal/config"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(config.CacheConfig{FilePath: "file::memory:"})
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("expected %q, got %q", "v", got)
	}

	missing, err := c.Get(ctx, "missing")
	if err != nil || missing != nil {
		t.Errorf("expected a silent miss, got %q, %v", missing, err)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.now = func() time.Time { return now.Add(2 * time.Second) }

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected expired item to be a miss, got %q", got)
	}
}

func TestCache_JSON(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type summary struct{ Pages int }
	if err := c.SetJSON(ctx, "summary", summary{Pages: 3}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got summary
	ok, err := c.GetJSON(ctx, "summary", &got)
	if err != nil || !ok {
		t.Fatalf("expected a hit, got ok=%v err=%v", ok, err)
	}
	if got.Pages != 3 {
		t.Errorf("expected 3 pages, got %d", got.Pages)
	}
}

func TestCache_Purge(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("a"), time.Second)
	_ = c.Set(ctx, "long", []byte("b"), time.Hour)
	c.now = func() time.Time { return now.Add(time.Minute) }

	n, err := c.Purge(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged item, got %d", n)
	}
}
