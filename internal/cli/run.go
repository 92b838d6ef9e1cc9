package cli

import (
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <tool> [args...]",
		Short: "Install a tool if needed, then run it",
		Long: `Resolve and install the named tool, then run it with the remaining
arguments. On unix the current process is replaced by the tool.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}

			path, err := env.registry.Install(cmd.Context(), env.installer, args[0])
			if err != nil {
				return err
			}
			return execTool(cmd.Context(), path, args[1:])
		},
	}
	// Flags after the tool name belong to the tool, not to optool.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
