package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/cxxtidy/pkg/fsutil"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "widget.cpp")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("content and metadata", func(t *testing.T) {
		t.Parallel()

		const content = "int main() { return 0; }\n"
		path := writeSource(t, content)

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != content {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path || info.Size != int64(len(content)) || info.Mode != 0o644 {
			t.Errorf("unexpected info %+v", info)
		}

		var zero [32]byte
		if info.Hash == zero {
			t.Error("Hash should be set")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "gone.h"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("expected ErrIsDirectory, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, writeSource(t, "x"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	checks := map[string]func(context.Context, *fsutil.FileInfo) (bool, error){
		"strict": fsutil.CheckModified,
		"quick":  fsutil.CheckModifiedQuick,
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			t.Run("unchanged", func(t *testing.T) {
				t.Parallel()

				_, info, err := fsutil.ReadFile(ctx, writeSource(t, "int a;\n"))
				if err != nil {
					t.Fatal(err)
				}
				if modified, err := check(ctx, info); err != nil || modified {
					t.Errorf("check() = %v, %v; want false, nil", modified, err)
				}
			})

			t.Run("rewritten", func(t *testing.T) {
				t.Parallel()

				path := writeSource(t, "int a;\n")
				_, info, err := fsutil.ReadFile(ctx, path)
				if err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, []byte("int bb;\n"), 0o644); err != nil {
					t.Fatal(err)
				}
				if modified, err := check(ctx, info); err != nil || !modified {
					t.Errorf("check() = %v, %v; want true, nil", modified, err)
				}
			})

			t.Run("deleted", func(t *testing.T) {
				t.Parallel()

				path := writeSource(t, "int a;\n")
				_, info, err := fsutil.ReadFile(ctx, path)
				if err != nil {
					t.Fatal(err)
				}
				if err := os.Remove(path); err != nil {
					t.Fatal(err)
				}
				if modified, err := check(ctx, info); err != nil || !modified {
					t.Errorf("check() = %v, %v; want true, nil", modified, err)
				}
			})

			t.Run("nil info", func(t *testing.T) {
				t.Parallel()

				if _, err := check(ctx, nil); !errors.Is(err, fsutil.ErrNilFileInfo) {
					t.Errorf("expected ErrNilFileInfo, got %v", err)
				}
			})
		})
	}
}

func TestCheckModified_SameSizeSameTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeSource(t, "int a;\n")
	_, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		t.Fatal(err)
	}

	// Same length, then restore the original mod time so only the hash differs.
	if err := os.WriteFile(path, []byte("int b;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, time.Now(), info.ModTime); err != nil {
		t.Fatal(err)
	}

	quick, err := fsutil.CheckModifiedQuick(ctx, info)
	if err != nil || quick {
		t.Errorf("CheckModifiedQuick() = %v, %v; want false, nil", quick, err)
	}

	strict, err := fsutil.CheckModified(ctx, info)
	if err != nil || !strict {
		t.Errorf("CheckModified() = %v, %v; want true, nil", strict, err)
	}
}
