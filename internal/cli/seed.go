package cli

import (
	"fmt"

	"ap-merch-web/internal/domain"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Roll random seeds (adjective + audience + object)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			p, cleanup, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			var s domain.Session
			for range count {
				a.printer.Print("%s", p.RollSeed(&s))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of seeds to roll")
	return cmd
}
