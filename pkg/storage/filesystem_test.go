package storage_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/pdf-chat/pkg/lifecycle"
	"github.com/JaimeStill/pdf-chat/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newFilesystem(t *testing.T) (storage.System, string) {
	t.Helper()
	dir := t.TempDir()

	sys, err := storage.New(&storage.Config{Backend: storage.BackendFilesystem, BasePath: dir}, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return sys, dir
}

func TestNew_EmptyBasePath(t *testing.T) {
	_, err := storage.New(&storage.Config{Backend: storage.BackendFilesystem}, testLogger())
	if err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := storage.New(&storage.Config{Backend: "tape"}, testLogger())
	if err == nil {
		t.Fatal("New() succeeded with unknown backend, want error")
	}
}

func TestStart_CreatesDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "storage")

	sys, err := storage.New(&storage.Config{BasePath: target}, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()

	if _, err := os.Stat(target); os.IsNotExist(err) {
		t.Error("Start() did not create storage directory")
	}
}

func TestFilesystem_StoreRetrieveDelete(t *testing.T) {
	sys, dir := newFilesystem(t)
	ctx := context.Background()
	key := "documents/abc.pdf"
	data := []byte("%PDF-1.4 test")

	if err := sys.Store(ctx, key, data, storage.Attributes{ContentType: "application/pdf"}); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	got, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Retrieve() = %q, want %q", got, data)
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "documents"))
	if len(entries) != 1 {
		t.Errorf("documents dir has %d entries, want 1 (no temp files left)", len(entries))
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := sys.Retrieve(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() after Delete error = %v, want %v", err, storage.ErrNotFound)
	}

	if _, err := os.Stat(filepath.Join(dir, "documents")); !os.IsNotExist(err) {
		t.Error("empty parent directory was not removed")
	}
}

func TestFilesystem_Store_Overwrites(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	sys.Store(ctx, "a.pdf", []byte("first"), storage.Attributes{})
	if err := sys.Store(ctx, "a.pdf", []byte("second"), storage.Attributes{}); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	got, _ := sys.Retrieve(ctx, "a.pdf")
	if string(got) != "second" {
		t.Errorf("Retrieve() = %q, want %q", got, "second")
	}
}

func TestFilesystem_Delete_Idempotent(t *testing.T) {
	sys, _ := newFilesystem(t)

	if err := sys.Delete(context.Background(), "missing.pdf"); err != nil {
		t.Errorf("Delete() on missing key error = %v, want nil", err)
	}
}

func TestFilesystem_InvalidKeys(t *testing.T) {
	sys, _ := newFilesystem(t)
	ctx := context.Background()

	keys := []string{"", ".", "../escape.pdf", "a/../../escape.pdf", "/etc/passwd", "..\\escape.pdf"}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			if err := sys.Store(ctx, key, []byte("x"), storage.Attributes{}); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) error = %v, want %v", key, err, storage.ErrInvalidKey)
			}
			if _, err := sys.Retrieve(ctx, key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Retrieve(%q) error = %v, want %v", key, err, storage.ErrInvalidKey)
			}
			if err := sys.Delete(ctx, key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Delete(%q) error = %v, want %v", key, err, storage.ErrInvalidKey)
			}
		})
	}
}
