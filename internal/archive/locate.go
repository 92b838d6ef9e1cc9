package archive

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrExecutableNotFound reports that an extracted tree contains no file
// that could be the intended executable.
var ErrExecutableNotFound = errors.New("executable not found")

// auxiliarySuffixes mark files that are never the executable: shell
// completion scripts and man pages shipped alongside the binary.
var auxiliarySuffixes = []string{".bash", ".zsh", ".fish", ".1"}

// LocateExecutable searches dir for the file named name. The walk is
// lexical, so the first hit is deterministic. When no exact basename match
// exists, the first regular file that is not a completion script or man
// page is returned instead, since archives frequently ship the binary
// under a versioned or platform-suffixed name.
func LocateExecutable(dir, name string) (string, error) {
	if exact := findFile(dir, func(base string) bool { return base == name }); exact != "" {
		return exact, nil
	}

	fallback := findFile(dir, func(base string) bool {
		for _, suffix := range auxiliarySuffixes {
			if strings.HasSuffix(base, suffix) {
				return false
			}
		}
		return true
	})
	if fallback != "" {
		return fallback, nil
	}

	return "", &locateError{name: name, dir: dir}
}

// locateError wraps ErrExecutableNotFound with the search parameters.
type locateError struct {
	name string
	dir  string
}

func (e *locateError) Error() string {
	return e.name + " not found in " + e.dir
}

func (e *locateError) Unwrap() error { return ErrExecutableNotFound }

// findFile returns the first regular file in a lexical walk of dir whose
// basename satisfies match, or "" if none does.
func findFile(dir string, match func(base string) bool) string {
	var found string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree: keep walking the rest
		}
		if found != "" {
			return fs.SkipAll
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if match(d.Name()) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}
