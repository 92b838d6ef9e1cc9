// Package testutil provides helpers for testing optool in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv points every optool directory at a fresh temp tree so
// tests never touch the user's real ~/opt. Cleanup is handled by
// t.TempDir. Returns the temp root.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	t.Setenv("OPTOOL_BIN_DIR", filepath.Join(tmpDir, "bin"))
	t.Setenv("OPTOOL_PACKAGE_DIR", filepath.Join(tmpDir, "packages"))
	t.Setenv("OPTOOL_GIT_PROJECT_DIR", filepath.Join(tmpDir, "git_projects"))

	dirs := []string{
		filepath.Join(tmpDir, "bin"),
		filepath.Join(tmpDir, "packages"),
		filepath.Join(tmpDir, "git_projects"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return tmpDir
}
