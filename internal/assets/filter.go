// Package assets decides which release asset, out of everything a project
// publishes, is the right download for the current host.
//
// Selection is subtractive: a fixed vocabulary of substrings marks an asset
// as wrong (wrong OS, wrong architecture, checksum sidecar, docs), and the
// entries that are actually correct for the running platform are removed
// from the block-set before matching. A filename survives if none of the
// remaining substrings occurs in it.
package assets

import (
	"sort"
	"strings"
	"sync"

	"github.com/markwhelan/optool/internal/platform"
)

// blockVocabulary is the universal block-set before platform carve-outs.
// Every entry is lowercase and matched case-insensitively against asset
// basenames.
var blockVocabulary = []string{
	// non-binary file types
	".txt",
	"license",
	".md",
	".sha256",
	".sha256sum",
	"checksums",
	"sha256sums",
	".asc",
	".sig",
	"src",

	// packaging formats
	".deb",
	".rpm",

	// operating systems
	"darwin",
	"macos",
	"linux",
	"windows",
	"freebsd",
	"netbsd",
	"openbsd",

	// cpu architectures
	"x86_64",
	"32-bit",
	"amd64",
	"x86",
	"i386",
	"386",
	"arm",
	"armv6hf",
	"aarch64",
	"arm64",
	"armhf",
	"armv5",
	"armv5l",
	"armv6",
	"armv6l",
	"armv7",
	"armv7l",
	"mips",
	"mips64",
	"mips64le",
	"mipsle",
	"ppc64",
	"ppc64le",
	"s390x",
	"i686",
	"powerpc",
	"i486",

	// extensions
	".exe",
}

// Filter rejects asset basenames that contain any blocked substring.
// A Filter is immutable after construction.
type Filter struct {
	blocked []string
}

// NewFilter builds a filter for the given platform profile. Tokens that
// name the host's own OS, architecture (including binary-compatible
// subsets), and installable packaging formats are removed from the
// block-set so correct assets are never rejected for naming their target.
func NewFilter(profile *platform.Profile) *Filter {
	blocked := make(map[string]struct{}, len(blockVocabulary))
	for _, token := range blockVocabulary {
		blocked[token] = struct{}{}
	}

	allow := func(tokens ...string) {
		for _, token := range tokens {
			delete(blocked, token)
		}
	}

	switch profile.OS {
	case platform.OSDarwin:
		allow("darwin", "macos")
	case platform.OSLinux:
		allow("linux")
		if profile.AcceptsDeb() {
			allow(".deb")
		}
		if profile.AcceptsRPM() {
			allow(".rpm")
		}
	case platform.OSWindows:
		allow("windows", ".exe")
	}

	switch profile.Arch {
	case platform.ArchX8664:
		allow("x86_64", "amd64", "x86")
	case platform.ArchARM64:
		// "arm" must be unblocked too: it is a substring of every arm64
		// asset name.
		allow("arm64", "aarch64", "arm")
	case platform.ArchARMv7:
		// armv7 runs armv6 binaries.
		allow("armv7", "armv7l", "armv6", "armv6l", "arm")
	}

	remaining := make([]string, 0, len(blocked))
	for token := range blocked {
		remaining = append(remaining, token)
	}
	sort.Strings(remaining)

	return &Filter{blocked: remaining}
}

// Accept reports whether the asset basename is plausible for this host:
// true iff no blocked substring occurs in its lowercase form.
func (f *Filter) Accept(basename string) bool {
	lower := strings.ToLower(basename)
	for _, token := range f.blocked {
		if strings.Contains(lower, token) {
			return false
		}
	}
	return true
}

// Blocked returns a copy of the remaining block-set, mainly for
// diagnostics and tests.
func (f *Filter) Blocked() []string {
	out := make([]string, len(f.blocked))
	copy(out, f.blocked)
	return out
}

var (
	defaultOnce   sync.Once
	defaultFilter *Filter
)

// Default returns the filter for the current host, built once per process.
func Default() *Filter {
	defaultOnce.Do(func() {
		defaultFilter = NewFilter(platform.Current())
	})
	return defaultFilter
}
