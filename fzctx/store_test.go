package fzctx

import "testing"

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	var dropped []string
	ctx := New(10, nil)

	ctx.Store.Insert("a", "a", 4, func(v interface{}) { dropped = append(dropped, v.(string)) })
	ctx.Store.Insert("b", "b", 4, func(v interface{}) { dropped = append(dropped, v.(string)) })

	if _, ok := ctx.Store.Get("a"); !ok {
		t.Fatalf("expected a to still be cached")
	}
	// a is now most-recently-used; inserting c should evict b, not a.
	ctx.Store.Insert("c", "c", 4, func(v interface{}) { dropped = append(dropped, v.(string)) })

	if _, ok := ctx.Store.Get("b"); ok {
		t.Fatalf("expected b to have been evicted")
	}
	if _, ok := ctx.Store.Get("a"); !ok {
		t.Fatalf("expected a to survive eviction (it was recently used)")
	}
	if len(dropped) != 1 || dropped[0] != "b" {
		t.Fatalf("expected only b's drop callback to run, got %v", dropped)
	}
}

func TestStoreUnboundedNeverEvicts(t *testing.T) {
	ctx := New(0, nil)
	for i := 0; i < 100; i++ {
		ctx.Store.Insert(i, i, 1<<20, nil)
	}
	if got := ctx.Store.Len(); got != 100 {
		t.Fatalf("expected 100 items retained with no budget, got %d", got)
	}
}

func TestScavengeFreesBytesForExternalAllocation(t *testing.T) {
	ctx := New(100, nil)
	ctx.Store.Insert("x", "big", 90, nil)

	phase := 0
	freed := ctx.Store.Scavenge(50, &phase)
	if !freed {
		t.Fatalf("expected scavenge to free the only evictable item")
	}
	if ctx.Store.UsedBytes() != 0 {
		t.Fatalf("expected store to be empty after scavenging its only item, used=%d", ctx.Store.UsedBytes())
	}
}

func TestWarnDiscardedWithNilSink(t *testing.T) {
	ctx := New(0, nil)
	ctx.Warnf("should not panic: %d", 1) // nil sink must be a no-op
}

func TestWarnDeliversToSink(t *testing.T) {
	var got string
	ctx := New(0, func(msg string) { got = msg })
	ctx.Warn("hello")
	if got != "hello" {
		t.Fatalf("expected warning to reach sink, got %q", got)
	}
}
