package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/invensys/inventory-api/internal/core/domain"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "uploads"), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return store
}

func TestDiskStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	payload := []byte("png-bytes")

	filename, err := store.Store(payload, "photo.png")
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if !strings.HasSuffix(filename, ".png") {
		t.Fatalf("expected generated name to keep the extension, got %s", filename)
	}
	if filename == "photo.png" {
		t.Fatalf("expected a generated name, got the original")
	}

	rc, err := store.Load(filename)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("loaded bytes differ from stored bytes")
	}

	present, err := store.Delete(filename)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !present {
		t.Fatalf("expected Delete to report the file as present")
	}

	if _, err := store.Load(filename); !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound after delete, got %v", err)
	}
}

func TestDiskStore_Store_EmptyPayload(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Store(nil, "photo.png"); !errors.Is(err, domain.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestDiskStore_Store_UnsafeFilename(t *testing.T) {
	store := newTestStore(t)

	unsafe := []string{
		"../../etc/passwd",
		"..\\..\\windows\\system32",
		"a/../b.png",
		"dir/photo.png",
		"photo..png",
	}
	for _, name := range unsafe {
		if _, err := store.Store([]byte("x"), name); !errors.Is(err, domain.ErrUnsafePath) {
			t.Fatalf("expected ErrUnsafePath for %q, got %v", name, err)
		}
	}

	// nothing may have been written anywhere under (or above) the root
	entries, err := os.ReadDir(store.Root())
	if err != nil {
		t.Fatalf("read storage root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty storage root, found %d entries", len(entries))
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "..", "etc")); !os.IsNotExist(err) {
		t.Fatalf("unexpected write outside the storage root")
	}
}

func TestDiskStore_Load_UnsafeFilename(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"../secret", "..", ".", "a/b"} {
		if _, err := store.Load(name); !errors.Is(err, domain.ErrFileNotFound) {
			t.Fatalf("expected ErrFileNotFound for %q, got %v", name, err)
		}
	}
}

func TestDiskStore_Delete_Idempotent(t *testing.T) {
	store := newTestStore(t)

	present, err := store.Delete("20240101_000000_nope.png")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if present {
		t.Fatalf("expected Delete of a missing file to report absent")
	}
}

func TestDiskStore_ConcurrentStores(t *testing.T) {
	store := newTestStore(t)

	const n = 16
	var wg sync.WaitGroup
	names := make([]string, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i], errs[i] = store.Store([]byte{byte(i)}, "img.jpg")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("store %d failed: %v", i, errs[i])
		}
		if _, dup := seen[names[i]]; dup {
			t.Fatalf("duplicate generated filename: %s", names[i])
		}
		seen[names[i]] = struct{}{}
	}

	// every file is independently loadable with its own payload
	for i := 0; i < n; i++ {
		rc, err := store.Load(names[i])
		if err != nil {
			t.Fatalf("load %s: %v", names[i], err)
		}
		got, _ := io.ReadAll(rc)
		rc.Close()
		if len(got) != 1 || got[0] != byte(i) {
			t.Fatalf("payload mismatch for %s", names[i])
		}
	}
}
