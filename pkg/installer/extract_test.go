package installer

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/magland/mip/pkg/errors"
)

// writeArchive builds a zip file on disk from a name -> content map.
// Names ending in "/" become directory entries.
func writeArchive(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "archive.mhl")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("add entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestExtractZip(t *testing.T) {
	archive := writeArchive(t, map[string]string{
		"mip.json":       `{"exposed_symbols": ["src"]}`,
		"src/compute.m":  "function y = compute(x)\ny = x;\nend\n",
		"doc/readme.txt": "docs",
	})

	dest := filepath.Join(t.TempDir(), "pkg")
	if err := ExtractZip(archive, dest); err != nil {
		t.Fatalf("ExtractZip returned error: %v", err)
	}

	for rel, want := range map[string]string{
		"mip.json":       `{"exposed_symbols": ["src"]}`,
		"src/compute.m":  "function y = compute(x)\ny = x;\nend\n",
		"doc/readme.txt": "docs",
	} {
		data, err := os.ReadFile(filepath.Join(dest, rel))
		if err != nil {
			t.Errorf("missing extracted file %s: %v", rel, err)
			continue
		}
		if string(data) != want {
			t.Errorf("file %s = %q, want %q", rel, data, want)
		}
	}
}

func TestExtractZipCreatesDest(t *testing.T) {
	archive := writeArchive(t, map[string]string{"a.txt": "a"})
	dest := filepath.Join(t.TempDir(), "deep", "nested", "pkg")

	if err := ExtractZip(archive, dest); err != nil {
		t.Fatalf("ExtractZip returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "a.txt")); err != nil {
		t.Errorf("extracted file missing: %v", err)
	}
}

func TestExtractZipCorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.mhl")
	if err := os.WriteFile(path, []byte("this is not a zip"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := ExtractZip(path, t.TempDir())
	if !errors.Is(err, errors.ErrCodeCorruptArchive) {
		t.Errorf("ExtractZip error = %v, want CORRUPT_ARCHIVE", err)
	}
}

func TestExtractZipRejectsTraversal(t *testing.T) {
	archive := writeArchive(t, map[string]string{
		"../escape.txt": "outside",
	})

	parent := t.TempDir()
	dest := filepath.Join(parent, "pkg")
	err := ExtractZip(archive, dest)
	if !errors.Is(err, errors.ErrCodeCorruptArchive) {
		t.Fatalf("ExtractZip error = %v, want CORRUPT_ARCHIVE", err)
	}
	if _, err := os.Stat(filepath.Join(parent, "escape.txt")); !os.IsNotExist(err) {
		t.Error("traversal entry was written outside the destination")
	}
}
