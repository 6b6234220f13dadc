package cli

import (
	"errors"

	"ap-merch-web/internal/cli/output"
	"ap-merch-web/internal/domain"

	"github.com/spf13/cobra"
)

// ErrStepFailed はステップの失敗を表示し終えた後に返すエラーです。
var ErrStepFailed = errors.New("step failed")

func newDropCmd(a *app) *cobra.Command {
	var contextPhrase string
	var skipPublish bool
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Generate an idea and image, then publish to the webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, cleanup, err := a.pipeline(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			creds := a.credentials()
			s := domain.Session{HotNiche: contextPhrase}

			if err := p.GenerateIdea(ctx, &s, creds); err != nil {
				return reportStepError(a, "idea generation failed", err)
			}
			a.printer.Success("product idea generated (%s)", s.ProductType)
			a.printer.Header("Idea")
			a.printer.Print("%s", s.Idea)

			if err := p.GenerateImage(ctx, &s, creds); err != nil {
				return reportStepError(a, "image generation failed", err)
			}
			a.printer.Success("image created: %s", s.ImageURL)

			if skipPublish {
				a.printer.Info("publish skipped")
				return nil
			}

			res, err := p.Publish(ctx, &s, creds)
			if err != nil {
				return reportStepError(a, "webhook delivery failed", err)
			}
			a.printer.Success("sent to webhook")

			tbl := output.NewTable(a.printer.Writer(), []string{"field", "value"})
			tbl.AddRow("title", res.Payload.Title)
			tbl.AddRow("category", res.Payload.Category)
			tbl.AddRow("price", res.Payload.Price)
			tbl.AddRow("image_url", res.Payload.ImageURL)
			if err := tbl.Render(); err != nil {
				return err
			}

			switch res.Listing.Status {
			case domain.LookupFound:
				a.printer.Success("listing: %s", res.Listing.URL)
			case domain.LookupFailed:
				a.printer.Error("listing lookup failed: %v", res.Listing.Err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&contextPhrase, "context", "", "niche or theme to build the idea around")
	cmd.Flags().BoolVar(&skipPublish, "skip-publish", false, "stop after the image step")
	return cmd
}

// reportStepError は設定エラーと空の結果を警告として、それ以外をエラーとして表示します。
func reportStepError(a *app, label string, err error) error {
	switch domain.KindOf(err) {
	case domain.KindConfig, domain.KindEmpty:
		a.printer.Warning("%s: %v", label, err)
	default:
		a.printer.Error("%s: %v", label, err)
	}
	return ErrStepFailed
}
