package cli

import (
	"fmt"
	"strconv"
	"strings"

	"ap-merch-web/internal/cli/output"
	"ap-merch-web/internal/config"
	"ap-merch-web/internal/domain"

	"github.com/spf13/cobra"
)

func newNicheCmd(a *app) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "niche <candidate>...",
		Short: "Rank candidate niches by marketplace demand or trend momentum",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if source != "" {
				if source != config.NicheSourceEtsy && source != config.NicheSourceTrends {
					return fmt.Errorf("unsupported --source %q: must be etsy or trends", source)
				}
				a.cfg.NicheSource = source
			}

			p, cleanup, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			var s domain.Session
			res, err := p.SelectNiche(cmd.Context(), &s, a.credentials(), strings.Join(args, "\n"))
			if err != nil {
				return reportStepError(a, "niche selection failed", err)
			}

			tbl := output.NewTable(a.printer.Writer(), []string{"rank", "niche", "score"})
			for i, sc := range res.Scores {
				tbl.AddRow(strconv.Itoa(i+1), sc.Phrase, strconv.FormatFloat(sc.Value, 'f', 2, 64))
			}
			if err := tbl.Render(); err != nil {
				return err
			}
			a.printer.Success("hot niche (%s): %s", a.cfg.NicheSource, res.Selected)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "niche source: etsy or trends (default NICHE_SOURCE)")
	return cmd
}
