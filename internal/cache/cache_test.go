package cache

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndKindScoped(t *testing.T) {
	a := Key("page", "/guide/install")
	b := Key("page", "/guide/install")
	c := Key("search", "/guide/install")

	if a != b {
		t.Error("same kind and input must produce the same key")
	}
	if a == c {
		t.Error("different kinds must not collide")
	}
	if !strings.HasPrefix(a, "page:") {
		t.Errorf("expected kind prefix, got %q", a)
	}
}

func TestMemory_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := m.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("get = %q, %v", v, ok)
	}

	if err := m.Set(ctx, "gone", "v", -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := m.Get(ctx, "gone"); ok {
		t.Error("expired entry must be a miss")
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := m.Get(ctx, "k"); ok {
		t.Error("deleted entry must be a miss")
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.Set(ctx, "k", "persisted", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := s.Get(ctx, "k"); !ok || v != "persisted" {
		t.Fatalf("get = %q, %v", v, ok)
	}

	if err := s.Set(ctx, "k", "updated", time.Minute); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if v, _ := s.Get(ctx, "k"); v != "updated" {
		t.Errorf("expected upserted value, got %q", v)
	}

	if err := s.Set(ctx, "old", "v", -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := s.Get(ctx, "old"); ok {
		t.Error("expired row must be a miss")
	}

	if err := s.Set(ctx, "old2", "v", -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	n, err := s.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n < 1 {
		t.Errorf("expected at least one purged row, got %d", n)
	}
}

func TestTiered_PromotesFromBack(t *testing.T) {
	ctx := context.Background()
	front := NewMemory()
	back := NewMemory()
	tc := NewTiered(front, back, time.Minute)

	if err := back.Set(ctx, "k", "cold", time.Hour); err != nil {
		t.Fatalf("seed back: %v", err)
	}

	if v, ok := tc.Get(ctx, "k"); !ok || v != "cold" {
		t.Fatalf("tiered get = %q, %v", v, ok)
	}
	if v, ok := front.Get(ctx, "k"); !ok || v != "cold" {
		t.Errorf("expected promotion into the front tier, got %q, %v", v, ok)
	}
}

func TestTiered_SetWritesBothTiers(t *testing.T) {
	ctx := context.Background()
	front := NewMemory()
	back := NewMemory()
	tc := NewTiered(front, back, time.Minute)

	if err := tc.Set(ctx, "k", "v", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := front.Get(ctx, "k"); !ok {
		t.Error("expected entry in front tier")
	}
	if _, ok := back.Get(ctx, "k"); !ok {
		t.Error("expected entry in back tier")
	}

	if err := tc.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := tc.Get(ctx, "k"); ok {
		t.Error("expected miss after delete")
	}
}
