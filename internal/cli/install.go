package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successMark = color.New(color.FgGreen).SprintFunc()
	failureMark = color.New(color.FgRed).SprintFunc()
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <tool>...",
		Short: "Install one or more tools",
		Long: `Install each named tool into the bin directory. A tool that is
already installed is skipped. Failures are reported per tool and do not
stop the rest of the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}

			failed := 0
			for _, tool := range args {
				path, err := env.registry.Install(cmd.Context(), env.installer, tool)
				if err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "%s %s: %v\n", failureMark("✗"), tool, err)
					continue
				}
				fmt.Printf("%s %s %s\n", successMark("✓"), tool, path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d installs failed", failed, len(args))
			}
			return nil
		},
	}
}
