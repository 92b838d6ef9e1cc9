package store

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// UnexecutableError reports an installed file that did not respond to a
// smoke-test invocation. The file stays on disk; the caller decides what
// to tell the user.
type UnexecutableError struct {
	Path string
	Err  error
}

func (e *UnexecutableError) Error() string {
	return fmt.Sprintf("%s does not appear to be executable: %v", e.Path, e.Err)
}

func (e *UnexecutableError) Unwrap() error { return e.Err }

// Probe smoke-tests an installed executable by running it with --help. A
// zero exit means it works. Many tools exit nonzero on --help but still
// print usage, so any stdout output also counts as success.
func Probe(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, path, "--help")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if stdout.Len() > 0 {
		return nil
	}
	return &UnexecutableError{Path: path, Err: err}
}
