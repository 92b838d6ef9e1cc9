package recipes

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/markwhelan/optool/internal/platform"
)

// ParseError reports a recipe file the VM rejected, with the raw Lua
// error preserved for display.
type ParseError struct {
	Message string
	Detail  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// Load reads a Lua recipe file and returns the recipes it declares. The
// file runs in a sandboxed VM with the read-only platform table injected,
// and must set a global table named "tools" mapping tool names to recipe
// tables:
//
//	tools = {
//	    mytool = { mode = "release", owner = "acme", project = "mytool" },
//	}
func Load(path string, profile *platform.Profile) (map[string]Recipe, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe file: %w", err)
	}
	return parse(string(source), profile)
}

func parse(source string, profile *platform.Profile) (map[string]Recipe, error) {
	L := newSandboxedVM()
	defer L.Close()

	if err := platform.InjectLuaTable(L, profile); err != nil {
		return nil, fmt.Errorf("inject platform table: %w", err)
	}

	if err := L.DoString(source); err != nil {
		return nil, &ParseError{Message: "Lua error in recipe file", Detail: err.Error()}
	}

	toolsVal := L.GetGlobal("tools")
	if toolsVal == lua.LNil {
		return map[string]Recipe{}, nil
	}
	toolsTable, ok := toolsVal.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "invalid 'tools' global",
			Detail:  fmt.Sprintf("expected table, got %s", toolsVal.Type()),
		}
	}

	recipes := make(map[string]Recipe)
	var extractErr error
	toolsTable.ForEach(func(key, value lua.LValue) {
		if extractErr != nil {
			return
		}
		name, ok := key.(lua.LString)
		if !ok {
			extractErr = &ParseError{
				Message: "invalid tool name",
				Detail:  fmt.Sprintf("expected string key, got %s", key.Type()),
			}
			return
		}
		entry, ok := value.(*lua.LTable)
		if !ok {
			extractErr = &ParseError{
				Message: fmt.Sprintf("invalid recipe for %q", string(name)),
				Detail:  fmt.Sprintf("expected table, got %s", value.Type()),
			}
			return
		}
		recipe, err := extractRecipe(string(name), entry)
		if err != nil {
			extractErr = err
			return
		}
		recipes[string(name)] = recipe
	})
	if extractErr != nil {
		return nil, extractErr
	}
	return recipes, nil
}

func extractRecipe(name string, table *lua.LTable) (Recipe, error) {
	field := func(key string) string {
		if v := table.RawGetString(key); v != lua.LNil {
			if s, ok := v.(lua.LString); ok {
				return string(s)
			}
		}
		return ""
	}

	recipe := Recipe{
		Mode:        Mode(field("mode")),
		URL:         field("url"),
		Owner:       field("owner"),
		Project:     field("project"),
		Path:        field("path"),
		Tag:         field("tag"),
		Binary:      field("binary"),
		PackageName: field("package_name"),
		Rename:      field("rename"),
	}

	switch recipe.Mode {
	case ModeURL, ModePackage, ModeRepo:
		if recipe.URL == "" {
			return Recipe{}, &ParseError{
				Message: fmt.Sprintf("invalid recipe for %q", name),
				Detail:  fmt.Sprintf("mode %q requires a url", recipe.Mode),
			}
		}
		if recipe.Mode == ModePackage && recipe.Binary == "" {
			return Recipe{}, &ParseError{
				Message: fmt.Sprintf("invalid recipe for %q", name),
				Detail:  `mode "package" requires a binary`,
			}
		}
	case ModeRelease, ModeScript:
		if recipe.Owner == "" || recipe.Project == "" {
			return Recipe{}, &ParseError{
				Message: fmt.Sprintf("invalid recipe for %q", name),
				Detail:  fmt.Sprintf("mode %q requires owner and project", recipe.Mode),
			}
		}
	default:
		return Recipe{}, &ParseError{
			Message: fmt.Sprintf("invalid recipe for %q", name),
			Detail:  fmt.Sprintf("unknown mode %q", recipe.Mode),
		}
	}

	return recipe, nil
}
