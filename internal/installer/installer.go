// Package installer orchestrates installs end to end: resolve a release
// asset for the running platform, download it, unpack it if it is an
// archive, and place the executable into the store. Every operation is
// idempotent, keyed on what already exists in the bin dir.
package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/markwhelan/optool/internal/archive"
	"github.com/markwhelan/optool/internal/assets"
	"github.com/markwhelan/optool/internal/ghub"
	"github.com/markwhelan/optool/internal/lockfile"
	"github.com/markwhelan/optool/internal/store"
)

// Fetcher downloads a URL into a directory and returns the file path.
type Fetcher interface {
	Download(ctx context.Context, url, dir string) (string, error)
}

// ReleaseLister resolves release asset URLs for a hosted project.
type ReleaseLister interface {
	ListReleaseAssets(ctx context.Context, owner, project, tag string) ([]string, error)
	ReleasePageURL(owner, project, tag string) string
	RawContentURL(owner, project, path, tag string) string
}

// Installer wires the store, the fetcher, and the release client together.
type Installer struct {
	Store    *store.Store
	Fetch    Fetcher
	Releases ReleaseLister
	Filter   *assets.Filter
	Logger   Logger

	extractor *archive.Extractor
}

// New creates an installer over the given collaborators. The logger
// defaults to a no-op and can be replaced via the Logger field.
func New(st *store.Store, fetcher Fetcher, releases ReleaseLister, filter *assets.Filter) *Installer {
	return &Installer{
		Store:     st,
		Fetch:     fetcher,
		Releases:  releases,
		Filter:    filter,
		Logger:    noopLogger{},
		extractor: archive.NewExtractor(),
	}
}

func (in *Installer) log() Logger {
	if in.Logger == nil {
		return noopLogger{}
	}
	return in.Logger
}

// lockDir holds per-tool lock files, next to the packages they guard.
func (in *Installer) lockDir() string {
	return filepath.Join(in.Store.PackageDir, ".locks")
}

// staging creates a scratch directory on the same filesystem as the
// store, so placements are renames rather than copies. The caller removes
// it.
func (in *Installer) staging() (string, error) {
	if err := os.MkdirAll(in.Store.PackageDir, 0755); err != nil {
		return "", fmt.Errorf("create package dir: %w", err)
	}
	dir, err := os.MkdirTemp(in.Store.PackageDir, ".staging-")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	return dir, nil
}

// ExecutableFromURL installs a single downloadable executable. The
// installed name is rename when given, otherwise the URL basename. When
// that name already exists in the bin dir the install is a no-op.
func (in *Installer) ExecutableFromURL(ctx context.Context, url, rename string) (string, error) {
	name := rename
	if name == "" {
		name = assets.Basename(url)
	}
	if name == "" {
		return "", fmt.Errorf("cannot derive a tool name from %q", url)
	}

	if in.Store.HasBinary(name) {
		in.log().Debug("already installed", "tool", name)
		return in.Store.BinPath(name), nil
	}

	lock, err := lockfile.Acquire(in.lockDir(), name)
	if err != nil {
		return "", err
	}
	defer lock.Release()

	if in.Store.HasBinary(name) {
		return in.Store.BinPath(name), nil
	}

	stage, err := in.staging()
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(stage)

	in.log().Info("downloading", "tool", name, "url", url)
	downloaded, err := in.Fetch.Download(ctx, url, stage)
	if err != nil {
		return "", err
	}

	installed, err := in.Store.PlaceFile(downloaded, name)
	if err != nil {
		return "", err
	}

	// Smoke-test the result. A failure is reported but the file stays; the
	// user may have downloaded something that needs arguments to run.
	if err := store.Probe(ctx, installed); err != nil {
		in.log().Warn("installed file failed its smoke test", "tool", name, "error", err)
	}
	return installed, nil
}

// ExecutableFromPackage installs a tool whose release asset is an archive:
// the archive is downloaded and extracted into the package dir under
// pkgName, the executable named execName is located inside it, and a
// symlink is placed in the bin dir. The link name is rename when given,
// otherwise execName. Re-running with the package already extracted skips
// straight to the symlink; a cached tree that no longer contains the
// executable is re-fetched and replaced.
func (in *Installer) ExecutableFromPackage(ctx context.Context, pkgURL, execName, pkgName, rename string) (string, error) {
	if pkgName == "" {
		pkgName = packageNameFromURL(pkgURL)
	}
	linkName := rename
	if linkName == "" {
		linkName = execName
	}

	lock, err := lockfile.Acquire(in.lockDir(), linkName)
	if err != nil {
		return "", err
	}
	defer lock.Release()

	if in.Store.HasPackage(pkgName) {
		execPath, err := archive.LocateExecutable(in.Store.PackagePath(pkgName), execName)
		if err == nil {
			in.log().Debug("package already extracted", "package", pkgName)
			return in.placeLink(execPath, linkName)
		}
		in.log().Warn("cached package lacks executable, refetching", "package", pkgName)
	}

	if err := in.fetchAndExtract(ctx, pkgURL, pkgName); err != nil {
		return "", err
	}
	return in.linkFromPackage(pkgName, execName, linkName)
}

// GitInstallScript installs a single script served raw from a repository.
func (in *Installer) GitInstallScript(ctx context.Context, owner, project, path, tag, rename string) (string, error) {
	if path == "" {
		path = project
	}
	name := rename
	if name == "" {
		name = filepath.Base(path)
	}
	url := in.Releases.RawContentURL(owner, project, path, tag)
	return in.ExecutableFromURL(ctx, url, name)
}

// GitInstallRelease installs a tool from a project's release assets. The
// bin dir and the package cache are consulted first; only a miss on both
// lists the release, picks the best asset for the running platform, and
// dispatches on whether that asset is an archive or a bare binary. binary
// defaults to the project name. The package cache is keyed owner_project
// so same-named projects from different owners stay apart.
func (in *Installer) GitInstallRelease(ctx context.Context, owner, project, tag, binary, rename string) (string, error) {
	if tag == "" {
		tag = ghub.TagLatest
	}
	if binary == "" {
		binary = project
	}
	linkName := rename
	if linkName == "" {
		linkName = binary
	}
	pkgName := owner + "_" + project

	if in.Store.HasBinary(linkName) {
		in.log().Debug("already installed", "tool", linkName)
		return in.Store.BinPath(linkName), nil
	}

	if in.Store.HasPackage(pkgName) {
		execPath, err := archive.LocateExecutable(in.Store.PackagePath(pkgName), binary)
		if err == nil {
			in.log().Debug("package cache hit", "package", pkgName)
			return in.placeLink(execPath, linkName)
		}
	}

	urls, err := in.Releases.ListReleaseAssets(ctx, owner, project, tag)
	if err != nil {
		return "", err
	}

	assetURL, ok := assets.SelectBest(urls, in.Filter)
	if !ok {
		return "", &NoMatchingAssetError{
			Owner:   owner,
			Project: project,
			Tag:     tag,
			PageURL: in.Releases.ReleasePageURL(owner, project, tag),
		}
	}
	in.log().Info("selected asset", "tool", linkName, "asset", assets.Basename(assetURL))

	if archive.Classify(assets.Basename(assetURL)) == archive.KindNone {
		return in.ExecutableFromURL(ctx, assetURL, linkName)
	}
	return in.ExecutableFromPackage(ctx, assetURL, binary, pkgName, linkName)
}

// GitInstallRepo clones a repository into the git projects dir and links
// the executable at path inside the checkout into the bin dir. An
// existing checkout is reused as is.
func (in *Installer) GitInstallRepo(ctx context.Context, gitURL, path, tag string) (string, error) {
	repoName := repoNameFromURL(gitURL)
	if repoName == "" {
		return "", fmt.Errorf("cannot derive a project name from %q", gitURL)
	}
	if path == "" {
		path = repoName
	}
	linkName := filepath.Base(path)

	if in.Store.HasBinary(linkName) {
		in.log().Debug("already installed", "tool", linkName)
		return in.Store.BinPath(linkName), nil
	}

	lock, err := lockfile.Acquire(in.lockDir(), linkName)
	if err != nil {
		return "", err
	}
	defer lock.Release()

	checkout := in.Store.GitProjectPath(repoName)
	if _, err := os.Stat(checkout); os.IsNotExist(err) {
		if err := os.MkdirAll(in.Store.GitProjectDir, 0755); err != nil {
			return "", fmt.Errorf("create git project dir: %w", err)
		}
		args := []string{"clone", "--depth", "1"}
		if tag != "" {
			args = append(args, "--branch", tag)
		}
		args = append(args, gitURL, checkout)

		in.log().Info("cloning", "url", gitURL, "dest", checkout)
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return "", fmt.Errorf("clone %s: %w", gitURL, err)
		}
	}

	target := filepath.Join(checkout, path)
	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("locate %s in checkout: %w", path, err)
	}
	if err := store.MakeExecutable(target); err != nil {
		return "", err
	}
	return in.Store.EnsureSymlink(target, linkName)
}

// fetchAndExtract downloads an archive, unpacks it in staging, and moves
// the extracted tree into the package dir under pkgName.
func (in *Installer) fetchAndExtract(ctx context.Context, url, pkgName string) error {
	stage, err := in.staging()
	if err != nil {
		return err
	}
	defer os.RemoveAll(stage)

	in.log().Info("downloading", "package", pkgName, "url", url)
	downloaded, err := in.Fetch.Download(ctx, url, stage)
	if err != nil {
		return err
	}

	extracted := filepath.Join(stage, "extracted")
	if err := in.extractor.Extract(downloaded, extracted); err != nil {
		return err
	}

	_, err = in.Store.PlacePackage(extracted, pkgName)
	return err
}

// linkFromPackage finds execName inside the extracted package, marks it
// executable, and ensures the bin dir symlink.
func (in *Installer) linkFromPackage(pkgName, execName, linkName string) (string, error) {
	execPath, err := archive.LocateExecutable(in.Store.PackagePath(pkgName), execName)
	if err != nil {
		return "", err
	}
	return in.placeLink(execPath, linkName)
}

// placeLink marks a cached executable runnable and ensures its bin dir
// symlink, honoring the collision rules in EnsureSymlink.
func (in *Installer) placeLink(execPath, linkName string) (string, error) {
	if err := store.MakeExecutable(execPath); err != nil {
		return "", err
	}
	return in.Store.EnsureSymlink(execPath, linkName)
}

// packageNameFromURL derives a package dir name from an archive URL by
// stripping the archive suffix from its basename.
func packageNameFromURL(url string) string {
	base := assets.Basename(url)
	for _, suffix := range []string{
		".tar.gz", ".tar.bz2", ".tar.xz", ".tar.zst",
		".tgz", ".tbz", ".tar", ".zip",
	} {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}
	return base
}

// repoNameFromURL extracts the project name from a git clone URL.
func repoNameFromURL(url string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return trimmed
}
