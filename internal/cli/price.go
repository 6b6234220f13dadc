package cli

import (
	"ap-merch-web/internal/cli/output"
	"ap-merch-web/internal/domain"
	"ap-merch-web/internal/merch"

	"github.com/spf13/cobra"
)

func newPriceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "price <product type or idea text>...",
		Short: "Show the resolved product type, category and price",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := output.NewTable(a.printer.Writer(), []string{"input", "type", "category", "price"})
			for _, arg := range args {
				t := merch.Classify(arg)
				tbl.AddRow(arg, string(t), domain.CategoryFromType(t), merch.PriceOf(string(t)))
			}
			return tbl.Render()
		},
	}
}
