package cli

import (
	"fmt"

	"github.com/markwhelan/optool/internal/assets"
	"github.com/markwhelan/optool/internal/fetch"
	"github.com/markwhelan/optool/internal/ghub"
	"github.com/markwhelan/optool/internal/installer"
	"github.com/markwhelan/optool/internal/platform"
	"github.com/markwhelan/optool/internal/recipes"
	"github.com/markwhelan/optool/internal/store"
)

// environment bundles the collaborators every subcommand needs.
type environment struct {
	installer *installer.Installer
	registry  *recipes.Registry
	store     *store.Store
}

// newEnvironment resolves the store, the platform filter, and the recipe
// registry from the global flags.
func newEnvironment() (*environment, error) {
	st, err := store.DefaultStore()
	if err != nil {
		return nil, err
	}

	profile := platform.Current()

	in := installer.New(st, fetch.New(), ghub.NewClient(), assets.NewFilter(profile))
	if verbose {
		in.Logger = newStderrLogger()
	}

	var extra map[string]recipes.Recipe
	if recipesPath != "" {
		extra, err = recipes.Load(recipesPath, profile)
		if err != nil {
			return nil, fmt.Errorf("load recipes from %s: %w", recipesPath, err)
		}
	}

	return &environment{
		installer: in,
		registry:  recipes.NewRegistry(extra),
		store:     st,
	}, nil
}
