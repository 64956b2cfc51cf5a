package cli

import (
	"fmt"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/app"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single lifecycle engine pass and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.RunEnginePass(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("processed=%d transitions=%d\n", summary.Processed, summary.Transitions)
			return nil
		},
	}

	return cmd
}
