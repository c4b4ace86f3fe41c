package palette

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	want := map[string]string{"AAA": "#4e79a7", "BBB": "#f28e2b"}
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: expected %s, got %s", k, v, got[k])
		}
	}

	// Save replaces the whole mapping, it does not append.
	if err := store.Save(map[string]string{"CCC": "#e15759"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err = store.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != 1 || got["CCC"] != "#e15759" {
		t.Errorf("expected mapping replaced with CCC only, got %v", got)
	}
}
