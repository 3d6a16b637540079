package memory

import (
	"context"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, ok, _ := store.Get(ctx, "quiz_id"); ok {
		t.Fatalf("expected empty store")
	}
	if err := store.Set(ctx, "quiz_id", "QUIZ_1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get(ctx, "quiz_id")
	if err != nil || !ok || value != "QUIZ_1" {
		t.Fatalf("expected QUIZ_1, got %q ok=%v err=%v", value, ok, err)
	}

	_ = store.Set(ctx, "collected_results", "[]")
	if keys := store.Keys(); len(keys) != 2 || keys[0] != "collected_results" {
		t.Fatalf("unexpected keys %v", keys)
	}

	if err := store.Delete(ctx, "quiz_id"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "quiz_id"); ok {
		t.Fatalf("expected key removed")
	}
}
