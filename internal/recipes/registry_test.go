package recipes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingInstaller captures which operation a recipe dispatched to.
type recordingInstaller struct {
	op   string
	args []string
}

func (r *recordingInstaller) ExecutableFromURL(_ context.Context, url, rename string) (string, error) {
	r.op, r.args = "url", []string{url, rename}
	return "/opt/bin/" + rename, nil
}

func (r *recordingInstaller) ExecutableFromPackage(_ context.Context, pkgURL, execName, pkgName, rename string) (string, error) {
	r.op, r.args = "package", []string{pkgURL, execName, pkgName, rename}
	return "/opt/bin/" + execName, nil
}

func (r *recordingInstaller) GitInstallScript(_ context.Context, owner, project, path, tag, rename string) (string, error) {
	r.op, r.args = "script", []string{owner, project, path, tag, rename}
	return "/opt/bin/" + rename, nil
}

func (r *recordingInstaller) GitInstallRelease(_ context.Context, owner, project, tag, binary, rename string) (string, error) {
	r.op, r.args = "release", []string{owner, project, tag, binary, rename}
	return "/opt/bin/" + project, nil
}

func (r *recordingInstaller) GitInstallRepo(_ context.Context, gitURL, path, tag string) (string, error) {
	r.op, r.args = "repo", []string{gitURL, path, tag}
	return "/opt/bin/repo", nil
}

func TestBuiltinTable(t *testing.T) {
	builtin := Builtin()

	assert.Equal(t, Recipe{Mode: ModeRelease, Owner: "BurntSushi", Project: "ripgrep", Binary: "rg"}, builtin["rg"])
	assert.Equal(t, Recipe{Mode: ModeRelease, Owner: "mvdan", Project: "sh", Rename: "shfmt"}, builtin["shfmt"])
	assert.Equal(t, Recipe{Mode: ModeScript, Owner: "lemnos", Project: "theme.sh", Path: "bin/theme.sh"}, builtin["theme.sh"])
	assert.Equal(t, Recipe{Mode: ModeRepo, URL: "https://github.com/pyenv/pyenv", Path: "libexec/pyenv"}, builtin["pyenv"])

	adb := builtin["adb"]
	assert.Equal(t, ModePackage, adb.Mode)
	assert.Equal(t, "platform-tools", adb.PackageName)
	assert.Contains(t, adb.URL, "platform-tools-latest-")
}

func TestRegistryMergeUserWins(t *testing.T) {
	registry := NewRegistry(map[string]Recipe{
		"rg":     {Mode: ModeURL, URL: "https://example.com/my-rg"},
		"custom": {Mode: ModeURL, URL: "https://example.com/custom"},
	})

	rg, ok := registry.Lookup("rg")
	require.True(t, ok)
	assert.Equal(t, ModeURL, rg.Mode)

	_, ok = registry.Lookup("custom")
	assert.True(t, ok)
	_, ok = registry.Lookup("fzf")
	assert.True(t, ok)
}

func TestRegistryNamesSorted(t *testing.T) {
	names := NewRegistry(nil).Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "lazygit")
}

func TestRegistryInstallDispatch(t *testing.T) {
	tests := []struct {
		tool     string
		wantOp   string
		wantArgs []string
	}{
		{"rg", "release", []string{"BurntSushi", "ripgrep", "", "rg", ""}},
		{"theme.sh", "script", []string{"lemnos", "theme.sh", "bin/theme.sh", "", "theme.sh"}},
		{"repo", "url", []string{"https://storage.googleapis.com/git-repo-downloads/repo", "repo"}},
		{"pyenv", "repo", []string{"https://github.com/pyenv/pyenv", "libexec/pyenv", ""}},
	}

	registry := NewRegistry(nil)
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			rec := &recordingInstaller{}
			_, err := registry.Install(context.Background(), rec, tt.tool)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOp, rec.op)
			assert.Equal(t, tt.wantArgs, rec.args)
		})
	}
}

func TestRegistryInstallUnknownTool(t *testing.T) {
	_, err := NewRegistry(nil).Install(context.Background(), &recordingInstaller{}, "no-such-tool")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}
