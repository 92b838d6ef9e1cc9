//go:build unix

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// execTool replaces the current process with the tool. It only returns on
// failure.
func execTool(_ context.Context, path string, args []string) error {
	argv := append([]string{filepath.Base(path)}, args...)
	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
