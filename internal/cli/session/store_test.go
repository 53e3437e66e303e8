package session

import "testing"

func TestMemoryStore_EmptyByDefault(t *testing.T) {
	store := NewMemory()

	token, present := store.Get()
	if present {
		t.Errorf("expected empty store, got token %q", token)
	}
}

func TestMemoryStore_SetThenGet(t *testing.T) {
	store := NewMemory()

	if err := store.Set("abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	token, present := store.Get()
	if !present {
		t.Fatal("expected token to be present after Set")
	}
	if token != "abc123" {
		t.Errorf("expected token %q, got %q", "abc123", token)
	}
}

func TestMemoryStore_SetReplacesPriorValue(t *testing.T) {
	store := NewMemoryWithToken("old")

	if err := store.Set("new"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	token, _ := store.Get()
	if token != "new" {
		t.Errorf("expected token %q, got %q", "new", token)
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryWithToken("abc123")

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, present := store.Get(); present {
		t.Error("expected store to be empty after Clear")
	}
}

func TestMemoryStore_ClearOnEmptyIsNoOp(t *testing.T) {
	store := NewMemory()

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on empty store should be a no-op, got: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear should also be a no-op, got: %v", err)
	}
}
