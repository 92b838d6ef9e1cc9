// Package store manages the on-disk layout that installed tools live in:
// a bin directory of executables and symlinks, a package directory of
// extracted release trees, and a directory for cloned project checkouts.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default directory names under the user's home.
const (
	defaultRoot       = "opt"
	binDirName        = "bin"
	packageDirName    = "packages"
	gitProjectDirName = "git_projects"
)

// Environment variables that override the default directories.
const (
	EnvBinDir        = "OPTOOL_BIN_DIR"
	EnvPackageDir    = "OPTOOL_PACKAGE_DIR"
	EnvGitProjectDir = "OPTOOL_GIT_PROJECT_DIR"
)

// Store holds the resolved directory layout. All paths are absolute.
type Store struct {
	BinDir        string
	PackageDir    string
	GitProjectDir string
}

// DefaultStore resolves the layout from the environment, falling back to
// ~/opt/{bin,packages,git_projects}.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}

	root := filepath.Join(home, defaultRoot)
	s := &Store{
		BinDir:        filepath.Join(root, binDirName),
		PackageDir:    filepath.Join(root, packageDirName),
		GitProjectDir: filepath.Join(root, gitProjectDirName),
	}

	if dir := os.Getenv(EnvBinDir); dir != "" {
		s.BinDir = dir
	}
	if dir := os.Getenv(EnvPackageDir); dir != "" {
		s.PackageDir = dir
	}
	if dir := os.Getenv(EnvGitProjectDir); dir != "" {
		s.GitProjectDir = dir
	}

	return s, nil
}

// EnsureDirs creates the three directories if they do not already exist.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.BinDir, s.PackageDir, s.GitProjectDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store dir %s: %w", dir, err)
		}
	}
	return nil
}

// BinPath returns the path a tool named name occupies in the bin dir.
func (s *Store) BinPath(name string) string {
	return filepath.Join(s.BinDir, name)
}

// PackagePath returns the path an extracted package named name occupies.
func (s *Store) PackagePath(name string) string {
	return filepath.Join(s.PackageDir, name)
}

// GitProjectPath returns the checkout path for a cloned project.
func (s *Store) GitProjectPath(name string) string {
	return filepath.Join(s.GitProjectDir, name)
}

// HasBinary reports whether a tool named name already exists in the bin
// dir. Any dirent counts: a regular file, a symlink, even a dangling one,
// so a repeat install never clobbers what a previous run placed.
func (s *Store) HasBinary(name string) bool {
	_, err := os.Lstat(s.BinPath(name))
	return err == nil
}

// HasPackage reports whether the package dir already holds an extracted
// tree named name.
func (s *Store) HasPackage(name string) bool {
	info, err := os.Stat(s.PackagePath(name))
	return err == nil && info.IsDir()
}

// MakeExecutable adds the execute bits to path, preserving the rest of
// its mode.
func MakeExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	mode := info.Mode().Perm() | 0111
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}

// PlaceFile moves src into the bin dir under name, marks it executable,
// and returns the installed path. The move is a rename, so src must be on
// the same filesystem as the bin dir.
func (s *Store) PlaceFile(src, name string) (string, error) {
	if err := os.MkdirAll(s.BinDir, 0755); err != nil {
		return "", fmt.Errorf("create bin dir: %w", err)
	}

	dest := s.BinPath(name)
	if err := os.Rename(src, dest); err != nil {
		return "", fmt.Errorf("place %s: %w", name, err)
	}
	if err := MakeExecutable(dest); err != nil {
		return "", err
	}
	return dest, nil
}

// PlacePackage moves an extracted tree into the package dir under name and
// returns the installed path. An existing tree under that name is removed
// first: placement only happens when the existing tree failed to yield the
// executable, so it is replaced wholesale by the fresh extraction.
func (s *Store) PlacePackage(srcDir, name string) (string, error) {
	if err := os.MkdirAll(s.PackageDir, 0755); err != nil {
		return "", fmt.Errorf("create package dir: %w", err)
	}

	dest := s.PackagePath(name)
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("remove stale package %s: %w", name, err)
	}
	if err := os.Rename(srcDir, dest); err != nil {
		return "", fmt.Errorf("place package %s: %w", name, err)
	}
	return dest, nil
}

// EnsureSymlink makes name in the bin dir point at target and returns the
// path the caller should use. An existing regular file is left untouched
// and the caller is handed target itself; a symlink already resolving to
// target is kept; a symlink pointing elsewhere is replaced.
func (s *Store) EnsureSymlink(target, name string) (string, error) {
	if err := os.MkdirAll(s.BinDir, 0755); err != nil {
		return "", fmt.Errorf("create bin dir: %w", err)
	}

	linkPath := s.BinPath(name)

	info, err := os.Lstat(linkPath)
	switch {
	case err != nil && os.IsNotExist(err):
		// fall through to create

	case err != nil:
		return "", fmt.Errorf("stat %s: %w", linkPath, err)

	case info.Mode()&os.ModeSymlink == 0:
		// A real file owns this name. Never replace it with a link; the
		// caller gets the cached executable instead.
		return target, nil

	default:
		existing, err := os.Readlink(linkPath)
		if err != nil {
			return "", fmt.Errorf("read link %s: %w", linkPath, err)
		}
		if existing == target || resolvesTo(linkPath, target) {
			return linkPath, nil
		}
		if err := os.Remove(linkPath); err != nil {
			return "", fmt.Errorf("remove stale link %s: %w", linkPath, err)
		}
	}

	if err := os.Symlink(target, linkPath); err != nil {
		return "", fmt.Errorf("create symlink %s: %w", linkPath, err)
	}
	return linkPath, nil
}

// resolvesTo reports whether link and target name the same file once all
// symlinks are followed. False when either cannot be resolved; the raw
// link text comparison has already run by then.
func resolvesTo(link, target string) bool {
	resolvedLink, err := filepath.EvalSymlinks(link)
	if err != nil {
		return false
	}
	resolvedTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		return false
	}
	return resolvedLink == resolvedTarget
}
