package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/yaklabco/cxxtidy/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode fsutil.BackupMode
		want string
	}{
		{fsutil.BackupModeSidecar, "/src/file.cpp.cxxtidy.bak"},
		{fsutil.BackupModeNone, ""},
		{"unknown", "/src/file.cpp.cxxtidy.bak"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()

			if got := fsutil.BackupPath("/src/file.cpp", tt.mode); got != tt.want {
				t.Errorf("BackupPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultBackupConfig(t *testing.T) {
	t.Parallel()

	cfg := fsutil.DefaultBackupConfig()
	if cfg.Enabled || cfg.Mode != fsutil.BackupModeSidecar {
		t.Errorf("DefaultBackupConfig() = %+v", cfg)
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	ctx := context.Background()

	t.Run("copies the original", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "int a; // original\n")

		created, err := fsutil.CreateBackup(ctx, path, enabled)
		if err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v", created, err)
		}
		if !fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			t.Error("backup should exist")
		}

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "int a; // original\n" {
			t.Errorf("backup = %q", got)
		}
	})

	t.Run("keeps the first backup", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "first\n")
		if _, err := fsutil.CreateBackup(ctx, path, enabled); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("second\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		created, err := fsutil.CreateBackup(ctx, path, enabled)
		if err != nil || created {
			t.Errorf("second CreateBackup() = %v, %v; want false, nil", created, err)
		}

		got, _ := os.ReadFile(path + fsutil.BackupSuffix)
		if string(got) != "first\n" {
			t.Errorf("backup overwritten: %q", got)
		}
	})

	t.Run("disabled or none", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "x\n")
		for _, cfg := range []fsutil.BackupConfig{
			{Enabled: false, Mode: fsutil.BackupModeSidecar},
			{Enabled: true, Mode: fsutil.BackupModeNone},
		} {
			created, err := fsutil.CreateBackup(ctx, path, cfg)
			if err != nil || created {
				t.Errorf("CreateBackup(%+v) = %v, %v", cfg, created, err)
			}
		}
		if fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			t.Error("no backup expected")
		}
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "x\n")
		if err := os.Remove(path); err != nil {
			t.Fatal(err)
		}

		created, err := fsutil.CreateBackup(ctx, path, enabled)
		if err != nil || created {
			t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
	})
}
