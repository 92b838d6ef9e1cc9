// Package recipes maps tool names to declarative install records. The
// built-in table covers common tools; a user-supplied Lua file can add to
// or override it.
package recipes

// Mode selects which install operation a recipe runs.
type Mode string

const (
	// ModeURL installs a single downloadable executable.
	ModeURL Mode = "url"
	// ModePackage downloads an archive and links an executable out of it.
	ModePackage Mode = "package"
	// ModeRelease resolves a hosted project's release assets.
	ModeRelease Mode = "release"
	// ModeScript downloads one raw file from a repository.
	ModeScript Mode = "script"
	// ModeRepo clones a repository and links an executable inside it.
	ModeRepo Mode = "repo"
)

// Recipe describes how to install one tool. Which fields matter depends
// on Mode; the zero value of the rest is ignored.
type Recipe struct {
	Mode Mode

	// URL is the download or clone URL for ModeURL, ModePackage, ModeRepo.
	URL string

	// Owner and Project identify a hosted repository for ModeRelease and
	// ModeScript.
	Owner   string
	Project string

	// Path selects a file within a repository (ModeScript, ModeRepo).
	Path string

	// Tag pins a release or branch. Empty means latest (or the default
	// branch for scripts).
	Tag string

	// Binary is the executable name to look for when it differs from the
	// project name.
	Binary string

	// PackageName names the extracted tree in the package dir.
	PackageName string

	// Rename overrides the name installed into the bin dir.
	Rename string
}
