package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestKey_Normalization(t *testing.T) {
	base := Key("v1", "strategy", "store=ST001", "category=Apparel")

	tests := []struct {
		name  string
		parts []string
		same  bool
	}{
		{name: "order_insensitive", parts: []string{"category=Apparel", "store=ST001"}, same: true},
		// Derivations compare filter values exactly, so keys must too.
		{name: "case_sensitive", parts: []string{"store=st001", "category=Apparel"}, same: false},
		{name: "case_sensitive_category", parts: []string{"store=ST001", "category=APPAREL"}, same: false},
		{name: "blank_parts_dropped", parts: []string{"store=ST001", "", "  ", "category=Apparel"}, same: true},
		{name: "different_filter", parts: []string{"store=ST002", "category=Apparel"}, same: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Key("v1", "strategy", tc.parts...)
			if (got == base) != tc.same {
				t.Errorf("expected same=%v, base %s got %s", tc.same, base, got)
			}
		})
	}

	if Key("v2", "strategy", "store=ST001", "category=Apparel") == base {
		t.Error("different snapshot versions must not share keys")
	}
	if !strings.HasPrefix(base, "retailops:strategy:") {
		t.Errorf("key missing namespace prefix: %s", base)
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	payload := []byte(`{"value":42}`)
	if err := c.Set(ctx, "k", payload); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload mismatch: %s", got)
	}

	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expected miss after invalidation")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Millisecond)

	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	c := Noop()
	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("noop set errored: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("noop cache must never hit")
	}
}
