package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known tools and whether they are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}

			installed := color.New(color.FgGreen).SprintFunc()
			for _, name := range env.registry.Names() {
				if env.store.HasBinary(name) {
					fmt.Printf("%-20s %s\n", name, installed("installed"))
				} else {
					fmt.Println(name)
				}
			}
			return nil
		},
	}
}
