package cache

import (
	"context"
	"time"
)

// Tiered layers a Memory front over a persistent back store. Hot entries are
// served from memory; misses fall through to the back store and are promoted
// with a short TTL so the front tier can never outlive the back entry by much.
type Tiered struct {
	front      *Memory
	back       Store
	promoteTTL time.Duration
}

func NewTiered(front *Memory, back Store, promoteTTL time.Duration) *Tiered {
	if promoteTTL <= 0 {
		promoteTTL = 5 * time.Minute
	}
	return &Tiered{front: front, back: back, promoteTTL: promoteTTL}
}

func (t *Tiered) Get(ctx context.Context, key string) (string, bool) {
	if value, found := t.front.Get(ctx, key); found {
		return value, true
	}
	value, found := t.back.Get(ctx, key)
	if !found {
		return "", false
	}
	_ = t.front.Set(ctx, key, value, t.promoteTTL)
	return value, true
}

func (t *Tiered) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	frontTTL := ttl
	if frontTTL > t.promoteTTL {
		frontTTL = t.promoteTTL
	}
	_ = t.front.Set(ctx, key, value, frontTTL)
	return t.back.Set(ctx, key, value, ttl)
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	_ = t.front.Delete(ctx, key)
	return t.back.Delete(ctx, key)
}

func (t *Tiered) Close() error {
	_ = t.front.Close()
	return t.back.Close()
}
