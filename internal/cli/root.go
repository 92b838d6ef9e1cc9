// Package cli implements the optool command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	recipesPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "optool",
	Short: "Install prebuilt release binaries into ~/opt",
	Long: `optool downloads release assets for the running platform and places
them under ~/opt: executables and symlinks in ~/opt/bin, extracted
packages in ~/opt/packages, and cloned projects in ~/opt/git_projects.

The directories can be moved with OPTOOL_BIN_DIR, OPTOOL_PACKAGE_DIR,
and OPTOOL_GIT_PROJECT_DIR. Extra tools can be declared in a Lua recipe
file passed with --recipes.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&recipesPath, "recipes", "",
		"Path to a Lua recipe file with additional tool definitions")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false,
		"Log install progress to stderr")

	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewWhichCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewVersionCmd())
}
