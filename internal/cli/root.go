// Package cli はマーチ作成ワークフローのコマンドライン版 merchctl を実装します。
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"ap-merch-web/internal/adapters"
	"ap-merch-web/internal/builder"
	"ap-merch-web/internal/cli/output"
	"ap-merch-web/internal/config"
	"ap-merch-web/internal/domain"
	"ap-merch-web/internal/pipeline"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// credentialFlags は viper のキーと、それを上書きするフラグ名の対応です。
// キーを大文字にしたものが環境変数名になります。
var credentialFlags = map[string]string{
	"ai_api_key":       "ai-key",
	"webhook_url":      "webhook-url",
	"etsy_api_key":     "etsy-key",
	"trends_api_key":   "trends-key",
	"printify_token":   "printify-token",
	"printify_shop_id": "printify-shop",
}

// app は 1 回の実行でサブコマンド間に共有する状態です。
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	printer *output.Printer
	verbose bool
	noColor bool
}

// NewRootCmd はコマンドツリーを新しく組み立てます。viper のインスタンスは呼び出しごとに別です。
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "merchctl",
		Short: "Merch drop workflow CLI",
		Long: `merchctl runs the merch drop workflow from the terminal.

Example usage:
  merchctl seed                         # Roll a random niche seed
  merchctl price mug                    # Show price and category for a product type
  merchctl niche "cat mugs" "dog tees"  # Rank candidate niches
  merchctl drop --context "cat mugs"    # Idea -> image -> publish`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	for key, name := range credentialFlags {
		flags.String(name, "", fmt.Sprintf("override %s", strings.ToUpper(key)))
		_ = a.v.BindPFlag(key, flags.Lookup(name))
		_ = a.v.BindEnv(key, strings.ToUpper(key))
	}

	root.AddCommand(
		newSeedCmd(a),
		newPriceCmd(a),
		newNicheCmd(a),
		newDropCmd(a),
	)
	return root
}

// Execute は os.Args で merchctl を実行します。
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	a.cfg = config.LoadConfig()
	a.printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors(a.noColor) && isTerminal(cmd))
	return nil
}

// credentials はフラグと環境変数をまとめます。両方ある場合はフラグが優先です。
func (a *app) credentials() domain.Credentials {
	return domain.Credentials{
		AIKey:          a.v.GetString("ai_api_key"),
		WebhookURL:     a.v.GetString("webhook_url"),
		EtsyAPIKey:     a.v.GetString("etsy_api_key"),
		TrendsAPIKey:   a.v.GetString("trends_api_key"),
		PrintifyToken:  a.v.GetString("printify_token"),
		PrintifyShopID: a.v.GetString("printify_shop_id"),
	}
}

// pipeline は Web サーバーと同じ構成でパイプラインを組み立てます。
func (a *app) pipeline(ctx context.Context) (*pipeline.MerchPipeline, func(), error) {
	rio, err := builder.BuildRemoteIO(ctx, a.cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if rio != nil && rio.Factory != nil {
			_ = rio.Factory.Close()
		}
	}

	slack, err := adapters.NewSlackAdapter(httpkit.New(config.DefaultHTTPTimeout), a.cfg.SlackWebhookURL)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	p, err := builder.BuildPipeline(ctx, a.cfg, rio, slack)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return p, cleanup, nil
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
