package matlab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir(t *testing.T) {
	if got := Dir("/home/user/.mip"); got != filepath.Join("/home/user/.mip", "matlab") {
		t.Errorf("Dir() = %q", got)
	}
}

func TestSetup(t *testing.T) {
	root := t.TempDir()

	dir, err := Setup(root)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if dir != Dir(root) {
		t.Errorf("Setup returned %q, want %q", dir, Dir(root))
	}

	data, err := os.ReadFile(filepath.Join(dir, "+mip", "import.m"))
	if err != nil {
		t.Fatalf("import.m not materialized: %v", err)
	}
	if !strings.Contains(string(data), "function import") {
		t.Errorf("import.m content looks wrong: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "+mip", "+internal", "mip_home.m")); err != nil {
		t.Errorf("mip_home.m not materialized: %v", err)
	}
}

func TestSetupReplacesPreviousCopy(t *testing.T) {
	root := t.TempDir()

	if _, err := Setup(root); err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	stale := filepath.Join(Dir(root), "+mip", "obsolete.m")
	if err := os.WriteFile(stale, []byte("% old"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Setup(root); err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("Setup should replace the previous +mip copy")
	}
}

func TestInstructions(t *testing.T) {
	got := Instructions("/home/user/.mip/matlab")
	if !strings.Contains(got, "addpath('/home/user/.mip/matlab')") {
		t.Errorf("Instructions() = %q", got)
	}
	if !strings.Contains(got, "savepath") {
		t.Errorf("Instructions() missing savepath: %q", got)
	}
}
