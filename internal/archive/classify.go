// Package archive classifies downloaded files by name, extracts zip and
// tar-family archives into a destination directory, and locates the
// intended executable inside an extracted tree.
package archive

import "strings"

// Kind is the archive family of a downloaded file.
type Kind int

const (
	// KindNone marks a bare file that needs no extraction.
	KindNone Kind = iota
	// KindZip marks a .zip archive.
	KindZip
	// KindTar marks a tar-family archive, possibly compressed.
	KindTar
)

// String returns the string representation of the archive kind.
func (k Kind) String() string {
	switch k {
	case KindZip:
		return "zip"
	case KindTar:
		return "tar"
	default:
		return "none"
	}
}

// Classify determines the archive kind from a file's basename. Suffix
// matching is case-sensitive: release assets use lowercase extensions, and
// an uppercase ".ZIP" oddity falls through to the bare-executable path
// rather than failing extraction.
func Classify(basename string) Kind {
	switch {
	case strings.HasSuffix(basename, ".zip"):
		return KindZip
	case strings.Contains(basename, ".tar"),
		strings.HasSuffix(basename, ".tgz"),
		strings.HasSuffix(basename, ".tbz"):
		return KindTar
	default:
		return KindNone
	}
}
