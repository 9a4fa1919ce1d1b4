package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// uninstallFixture points all tool state at temp directories and installs
// one package directory by hand.
func uninstallFixture(t *testing.T, name string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("MIP_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MIP_REGISTRY_URL", "")

	pkgDir := filepath.Join(home, "packages", name)
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", pkgDir, err)
	}
	return pkgDir
}

func runUninstall(t *testing.T, in string, args ...string) {
	t.Helper()
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"uninstall"}, args...))
	root.SetIn(strings.NewReader(in))
	if err := root.Execute(); err != nil {
		t.Fatalf("uninstall returned error: %v", err)
	}
}

func TestUninstallDeclineLeavesPackageInstalled(t *testing.T) {
	pkgDir := uninstallFixture(t, "victim")

	runUninstall(t, "n\n", "victim")

	if _, err := os.Stat(pkgDir); err != nil {
		t.Errorf("declined uninstall must leave the package directory intact: %v", err)
	}
}

func TestUninstallEOFLeavesPackageInstalled(t *testing.T) {
	pkgDir := uninstallFixture(t, "victim")

	runUninstall(t, "", "victim")

	if _, err := os.Stat(pkgDir); err != nil {
		t.Errorf("uninstall without an answer must leave the package directory intact: %v", err)
	}
}

func TestUninstallConfirmRemovesPackage(t *testing.T) {
	pkgDir := uninstallFixture(t, "victim")

	runUninstall(t, "y\n", "victim")

	if _, err := os.Stat(pkgDir); !os.IsNotExist(err) {
		t.Error("confirmed uninstall should remove the package directory")
	}
}

func TestUninstallYesFlagSkipsPrompt(t *testing.T) {
	pkgDir := uninstallFixture(t, "victim")

	// No input available; --yes must not read from the prompt at all.
	runUninstall(t, "", "victim", "--yes")

	if _, err := os.Stat(pkgDir); !os.IsNotExist(err) {
		t.Error("uninstall --yes should remove the package directory")
	}
}

func TestUninstallMissingPackageIsNoOp(t *testing.T) {
	uninstallFixture(t, "other")

	runUninstall(t, "", "ghost")
}
