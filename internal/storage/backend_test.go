package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()

	if _, ok, err := b.GetItem("missing"); err != nil || ok {
		t.Fatalf("GetItem(missing) = (ok=%v, err=%v), want (false, nil)", ok, err)
	}

	if err := b.SetItem("b", "two"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := b.SetItem("a", "one"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := b.SetItem("a", "uno"); err != nil {
		t.Fatalf("SetItem overwrite failed: %v", err)
	}

	v, ok, err := b.GetItem("a")
	if err != nil || !ok || v != "uno" {
		t.Errorf("GetItem(a) = (%q, %v, %v), want (uno, true, nil)", v, ok, err)
	}

	keys, err := b.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}

	usage, err := b.Usage()
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if usage != len("a")+len("uno")+len("b")+len("two") {
		t.Errorf("Usage() = %d, want 8", usage)
	}

	if err := b.RemoveItem("a"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if err := b.RemoveItem("a"); err != nil {
		t.Errorf("RemoveItem on missing key should be a no-op, got %v", err)
	}
	if _, ok, _ := b.GetItem("a"); ok {
		t.Error("key a still present after RemoveItem")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	exerciseBackend(t, s)

	if s.GetConfigPath() != ":memory:" {
		t.Errorf("GetConfigPath() = %q", s.GetConfigPath())
	}
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fittrack.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	exerciseBackend(t, s)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("store file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, ok, err := reopened.GetItem("b")
	if err != nil || !ok || v != "two" {
		t.Errorf("reopened GetItem(b) = (%q, %v, %v)", v, ok, err)
	}
}

func TestJSONStoreNotInitialized(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "absent.json"))

	if err := s.Load(); err != ErrNotInitialized {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
	if err := s.SetItem("k", "v"); err != ErrNotInitialized {
		t.Errorf("SetItem() error = %v, want ErrNotInitialized", err)
	}
}
