package store

import (
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGet(t *testing.T) {
	s := testStore(t)
	if err := s.Set("news_cache_abc", []byte(`{"hello":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := s.Get("news_cache_abc")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if string(got) != `{"hello":1}` {
		t.Errorf("Get = %q", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := testStore(t)
	if _, ok := s.Get("nope"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestSetOverwrites(t *testing.T) {
	s := testStore(t)
	if err := s.Set("k", []byte("one")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("k", []byte("two")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _ := s.Get("k")
	if string(got) != "two" {
		t.Errorf("expected overwrite, got %q", got)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := testStore(t)
	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("expected key gone after delete")
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}

func TestKeysPrefix(t *testing.T) {
	s := testStore(t)
	for _, k := range []string{"news_cache_a", "news_cache_b", "other", "newsXcacheXc"} {
		if err := s.Set(k, []byte("v")); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}
	keys, err := s.Keys("news_cache_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	// Underscores in the prefix are literal, so newsXcacheXc must not match.
	if len(keys) != 2 || keys[0] != "news_cache_a" || keys[1] != "news_cache_b" {
		t.Errorf("Keys = %v", keys)
	}
}

func TestStats(t *testing.T) {
	s := testStore(t)
	count, size, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 0 || size != 0 {
		t.Errorf("empty store stats = %d, %d", count, size)
	}
	if err := s.Set("a", []byte("1234")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	count, size, err = s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 1 || size != 4 {
		t.Errorf("stats = %d, %d; want 1, 4", count, size)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	if err := s.Set("k", []byte("survives")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer s2.Close()
	got, ok := s2.Get("k")
	if !ok || string(got) != "survives" {
		t.Errorf("after reopen Get = %q, %v", got, ok)
	}
}

func TestMemBehavesLikeStore(t *testing.T) {
	m := NewMem()
	if err := m.Set("news_cache_a", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set("x", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := m.Get("news_cache_a")
	if !ok || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, ok)
	}
	keys, err := m.Keys("news_cache_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "news_cache_a" {
		t.Errorf("Keys = %v", keys)
	}
	if err := m.Delete("news_cache_a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := m.Get("news_cache_a"); ok {
		t.Error("expected miss after delete")
	}
}

func TestMemCopiesValues(t *testing.T) {
	m := NewMem()
	buf := []byte("abc")
	if err := m.Set("k", buf); err != nil {
		t.Fatalf("Set: %v", err)
	}
	buf[0] = 'z'
	got, _ := m.Get("k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", got)
	}
}
