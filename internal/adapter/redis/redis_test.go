package redisstore

import (
	"context"
	"os"
	"testing"
)

func TestStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	s, err := Open(Options{Addr: addr, Prefix: "weightlog-test:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	t.Cleanup(func() {
		_ = s.Clear(ctx)
		_ = s.Close()
	})

	// A key outside the prefix survives Clear.
	if err := s.rdb.Set(ctx, "unrelated-test-key", "keep", 0).Err(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	t.Cleanup(func() { s.rdb.Del(ctx, "unrelated-test-key") })

	if _, ok, err := s.Get(ctx, "weightData"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "weightData", []byte(`[{"weight":70}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "weightData")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"weight":70}]` {
		t.Errorf("unexpected blob %s", got)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "weightData"); ok {
		t.Error("expected absent key after clear")
	}
	if v, _ := s.rdb.Get(ctx, "unrelated-test-key").Result(); v != "keep" {
		t.Errorf("clear removed a key outside the prefix")
	}
}

func TestNewDefaultPrefix(t *testing.T) {
	s := New(nil, "")
	if s.prefix != DefaultPrefix {
		t.Fatalf("expected %q, got %q", DefaultPrefix, s.prefix)
	}
}
