// Package matlab materializes the MATLAB-side integration.
//
// The +mip MATLAB package (mip.import and helpers) ships embedded in the
// mip binary and is copied into <root>/matlab/+mip so users always run the
// integration matching their installed mip version. Install, uninstall, and
// setup all refresh the copy.
package matlab

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed assets
var assets embed.FS

// Dir returns the MATLAB integration directory under root (the directory
// users add to their MATLAB path).
func Dir(root string) string {
	return filepath.Join(root, "matlab")
}

// Setup writes the embedded +mip package into <root>/matlab/+mip,
// replacing any previous copy. It returns the integration directory.
func Setup(root string) (string, error) {
	dir := Dir(root)
	dest := filepath.Join(dir, "+mip")

	if err := os.RemoveAll(dest); err != nil {
		return "", err
	}

	src, err := fs.Sub(assets, "assets/+mip")
	if err != nil {
		return "", err
	}
	if err := copyFS(src, dest); err != nil {
		return "", err
	}
	return dir, nil
}

// Instructions returns the MATLAB commands a user runs to register the
// integration directory on their path.
func Instructions(dir string) string {
	return fmt.Sprintf("addpath('%s')\nsavepath", dir)
}

func copyFS(src fs.FS, dest string) error {
	return fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dest, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
}
