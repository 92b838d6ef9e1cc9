package recipes

import (
	"context"
	"fmt"
	"sort"

	"github.com/markwhelan/optool/internal/platform"
)

// Builtin returns the built-in recipe table. The map is freshly built on
// each call so callers may mutate their copy.
func Builtin() map[string]Recipe {
	profile := platform.Current()

	return map[string]Recipe{
		"theme.sh": {Mode: ModeScript, Owner: "lemnos", Project: "theme.sh", Path: "bin/theme.sh"},
		"neofetch": {Mode: ModeScript, Owner: "dylanaraps", Project: "neofetch"},
		"adb-sync": {Mode: ModeScript, Owner: "google", Project: "adb-sync"},

		"adb": {
			Mode:        ModePackage,
			URL:         fmt.Sprintf("https://dl.google.com/android/repository/platform-tools-latest-%s.zip", profile.OS),
			Binary:      "adb",
			PackageName: "platform-tools",
		},
		"repo": {Mode: ModeURL, URL: "https://storage.googleapis.com/git-repo-downloads/repo"},

		"shiv":           {Mode: ModeRelease, Owner: "linkedin", Project: "shiv"},
		"pre-commit":     {Mode: ModeRelease, Owner: "pre-commit", Project: "pre-commit"},
		"fzf":            {Mode: ModeRelease, Owner: "junegunn", Project: "fzf"},
		"rg":             {Mode: ModeRelease, Owner: "BurntSushi", Project: "ripgrep", Binary: "rg"},
		"docker-compose": {Mode: ModeRelease, Owner: "docker", Project: "compose", Binary: "docker-compose"},
		"gdu":            {Mode: ModeRelease, Owner: "dundee", Project: "gdu"},
		"tldr":           {Mode: ModeRelease, Owner: "isacikgoz", Project: "tldr"},
		"lazydocker":     {Mode: ModeRelease, Owner: "jesseduffield", Project: "lazydocker"},
		"lazygit":        {Mode: ModeRelease, Owner: "jesseduffield", Project: "lazygit"},
		"lazynpm":        {Mode: ModeRelease, Owner: "jesseduffield", Project: "lazynpm"},
		"shellcheck":     {Mode: ModeRelease, Owner: "koalaman", Project: "shellcheck"},
		"shfmt":          {Mode: ModeRelease, Owner: "mvdan", Project: "sh", Rename: "shfmt"},
		"bat":            {Mode: ModeRelease, Owner: "sharkdp", Project: "bat"},
		"fd":             {Mode: ModeRelease, Owner: "sharkdp", Project: "fd"},
		"delta":          {Mode: ModeRelease, Owner: "dandavison", Project: "delta"},
		"btop":           {Mode: ModeRelease, Owner: "aristocratos", Project: "btop"},
		"deno":           {Mode: ModeRelease, Owner: "denoland", Project: "deno"},
		"hadolint":       {Mode: ModeRelease, Owner: "hadolint", Project: "hadolint"},
		"clang-format":   {Mode: ModeRelease, Owner: "llvm", Project: "llvm-project", Binary: "clang-format"},
		"clang-tidy":     {Mode: ModeRelease, Owner: "llvm", Project: "llvm-project", Binary: "clang-tidy"},

		"pyenv":  {Mode: ModeRepo, URL: "https://github.com/pyenv/pyenv", Path: "libexec/pyenv"},
		"nodenv": {Mode: ModeRepo, URL: "https://github.com/nodenv/nodenv", Path: "libexec/nodenv"},
	}
}

// Installer is the subset of install operations a recipe can dispatch to.
type Installer interface {
	ExecutableFromURL(ctx context.Context, url, rename string) (string, error)
	ExecutableFromPackage(ctx context.Context, pkgURL, execName, pkgName, rename string) (string, error)
	GitInstallScript(ctx context.Context, owner, project, path, tag, rename string) (string, error)
	GitInstallRelease(ctx context.Context, owner, project, tag, binary, rename string) (string, error)
	GitInstallRepo(ctx context.Context, gitURL, path, tag string) (string, error)
}

// Registry resolves tool names to recipes and runs them.
type Registry struct {
	recipes map[string]Recipe
}

// NewRegistry builds a registry from the built-in table merged with extra
// recipes, which win on name collision.
func NewRegistry(extra map[string]Recipe) *Registry {
	merged := Builtin()
	for name, recipe := range extra {
		merged[name] = recipe
	}
	return &Registry{recipes: merged}
}

// Lookup returns the recipe for a tool name.
func (r *Registry) Lookup(name string) (Recipe, bool) {
	recipe, ok := r.recipes[name]
	return recipe, ok
}

// Names returns every known tool name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.recipes))
	for name := range r.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install runs the named recipe against the installer and returns the
// installed executable path.
func (r *Registry) Install(ctx context.Context, in Installer, name string) (string, error) {
	recipe, ok := r.recipes[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	switch recipe.Mode {
	case ModeURL:
		rename := recipe.Rename
		if rename == "" {
			rename = name
		}
		return in.ExecutableFromURL(ctx, recipe.URL, rename)
	case ModePackage:
		return in.ExecutableFromPackage(ctx, recipe.URL, recipe.Binary, recipe.PackageName, recipe.Rename)
	case ModeScript:
		rename := recipe.Rename
		if rename == "" {
			rename = name
		}
		return in.GitInstallScript(ctx, recipe.Owner, recipe.Project, recipe.Path, recipe.Tag, rename)
	case ModeRelease:
		return in.GitInstallRelease(ctx, recipe.Owner, recipe.Project, recipe.Tag, recipe.Binary, recipe.Rename)
	case ModeRepo:
		return in.GitInstallRepo(ctx, recipe.URL, recipe.Path, recipe.Tag)
	default:
		return "", fmt.Errorf("recipe %q has unknown mode %q", name, recipe.Mode)
	}
}
