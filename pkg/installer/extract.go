package installer

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/magland/mip/pkg/errors"
)

// ExtractZip unpacks a .mhl archive (a standard zip container) into
// destDir, creating the directory if needed.
//
// Entries that would escape destDir are rejected. Any structural failure
// reading the archive is reported as CORRUPT_ARCHIVE; the destination may
// be left partially written, and the caller decides whether to keep it.
func ExtractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCorruptArchive, err, "cannot read archive %s", filepath.Base(archivePath))
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, f := range r.File {
		if err := extractFile(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, destDir string) error {
	target, err := safePath(destDir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return errors.Wrap(errors.ErrCodeCorruptArchive, err, "cannot read archive entry %s", f.Name)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Wrap(errors.ErrCodeCorruptArchive, err, "cannot extract archive entry %s", f.Name)
	}
	return dst.Close()
}

// safePath joins name onto destDir and rejects entries that escape it
// (absolute paths or ".." traversal).
func safePath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", errors.New(errors.ErrCodeCorruptArchive, "archive entry %q escapes destination", name)
	}
	return target, nil
}
