package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLocateExecutable(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		query string
		want  string
	}{
		{
			name: "exact_match_in_subdir",
			files: map[string]string{
				"tool-1.0/README.md": "docs",
				"tool-1.0/bin/tool":  "binary",
			},
			query: "tool",
			want:  "tool-1.0/bin/tool",
		},
		{
			name: "exact_match_beats_shallower_fallback",
			files: map[string]string{
				"tool-linux-amd64": "wrong",
				"deep/nested/tool": "right",
			},
			query: "tool",
			want:  "deep/nested/tool",
		},
		{
			name: "fallback_to_renamed_binary",
			files: map[string]string{
				"tool-2.1-linux-x86_64": "binary",
			},
			query: "tool",
			want:  "tool-2.1-linux-x86_64",
		},
		{
			name: "fallback_skips_completions_and_man_pages",
			files: map[string]string{
				"completions/tool.bash": "bash",
				"completions/tool.fish": "fish",
				"completions/tool.zsh":  "zsh",
				"man/tool.1":            "man page",
				"zz-actual-binary":      "binary",
			},
			query: "tool",
			want:  "zz-actual-binary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTree(t, dir, tt.files)

			got, err := LocateExecutable(dir, tt.query)
			if err != nil {
				t.Fatalf("LocateExecutable() error = %v", err)
			}
			if want := filepath.Join(dir, filepath.FromSlash(tt.want)); got != want {
				t.Errorf("LocateExecutable() = %q, want %q", got, want)
			}
		})
	}
}

func TestLocateExecutableNotFound(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"completions/tool.bash": "bash",
		"man/tool.1":            "man page",
	})

	_, err := LocateExecutable(dir, "tool")
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("LocateExecutable() error = %v, want ErrExecutableNotFound", err)
	}
}

func TestLocateExecutableEmptyDir(t *testing.T) {
	_, err := LocateExecutable(t.TempDir(), "tool")
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("LocateExecutable() error = %v, want ErrExecutableNotFound", err)
	}
}
