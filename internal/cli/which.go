package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhichCmd creates the which command.
func NewWhichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "which <tool>",
		Short: "Print the installed path of a tool, installing it first if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}

			path, err := env.registry.Install(cmd.Context(), env.installer, args[0])
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}
