package storage

import (
	"reflect"
	"testing"
)

func openStore(t *testing.T) *StarredStore {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStarUnstar(t *testing.T) {
	store := openStore(t)

	if store.Has(7) {
		t.Fatalf("fresh store must have nothing starred")
	}

	if err := store.Star(7); err != nil {
		t.Fatalf("star: %v", err)
	}
	if !store.Has(7) {
		t.Fatalf("expected 7 starred")
	}

	// Starring twice is a no-op.
	if err := store.Star(7); err != nil {
		t.Fatalf("second star: %v", err)
	}

	if err := store.Unstar(7); err != nil {
		t.Fatalf("unstar: %v", err)
	}
	if store.Has(7) {
		t.Fatalf("expected 7 unstarred")
	}

	// Unstarring an unknown id is fine.
	if err := store.Unstar(42); err != nil {
		t.Fatalf("unstar unknown: %v", err)
	}
}

func TestIDs(t *testing.T) {
	store := openStore(t)

	for _, id := range []int{9, 3, 5} {
		if err := store.Star(id); err != nil {
			t.Fatalf("star %d: %v", id, err)
		}
	}

	ids, err := store.IDs()
	if err != nil {
		t.Fatalf("ids: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{3, 5, 9}) {
		t.Fatalf("expected [3 5 9], got %v", ids)
	}
}

func TestOpenDefaultsDataDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	// An unset data-dir config key must not be fatal.
	store, err := Open("")
	if err != nil {
		t.Fatalf("opening with empty data dir: %v", err)
	}
	defer store.Close()

	if err := store.Star(1); err != nil {
		t.Fatalf("star: %v", err)
	}
	if !store.Has(1) {
		t.Fatalf("expected profile 1 starred")
	}
}
