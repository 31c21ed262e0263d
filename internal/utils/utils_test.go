package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanonicalPath(t *testing.T) {
	tmp := t.TempDir()

	realDir := filepath.Join(tmp, "real")
	if err := os.MkdirAll(realDir, 0755); err != nil {
		t.Fatalf("unexpected err:%s", err)
	}

	linkDir := filepath.Join(tmp, "alias")
	if err := os.Symlink(realDir, linkDir); err != nil {
		t.Fatalf("unexpected err:%s", err)
	}

	wantCanon, err := CanonicalPath(realDir)
	if err != nil {
		t.Fatalf("unexpected err:%s", err)
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"direct", realDir, wantCanon, false},
		{"via-symlink", linkDir, wantCanon, false},
		{"trailing-slash", realDir + string(os.PathSeparator), wantCanon, false},
		{"dot-segment", filepath.Join(tmp, "real", ".", "."), wantCanon, false},
		{"empty", "", "", true},
		{"missing", filepath.Join(tmp, "no-such-dir"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CanonicalPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CanonicalPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirSize(t *testing.T) {
	tmp := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmp, "a"), make([]byte, 100), 0644); err != nil {
		t.Fatalf("unexpected err:%s", err)
	}
	if err := os.MkdirAll(filepath.Join(tmp, "sub"), 0755); err != nil {
		t.Fatalf("unexpected err:%s", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "sub", "b"), make([]byte, 50), 0644); err != nil {
		t.Fatalf("unexpected err:%s", err)
	}

	got, err := DirSize(tmp)
	if err != nil {
		t.Fatalf("unexpected err:%s", err)
	}
	if got != 150 {
		t.Errorf("DirSize() = %d, want 150", got)
	}

	if _, err := DirSize(filepath.Join(tmp, "no-such-dir")); err == nil {
		t.Errorf("DirSize() expected error for missing dir")
	}
}
