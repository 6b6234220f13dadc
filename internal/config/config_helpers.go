package config

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"ap-merch-web/internal/domain"

	"github.com/shouni/netarmor/securenet"
)

// --- 環境変数ヘルパー ---

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("整数として解釈できない環境変数を無視します", "key", key, "value", raw)
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("真偽値として解釈できない環境変数を無視します", "key", key, "value", raw)
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("期間として解釈できない環境変数を無視します", "key", key, "value", raw)
		return fallback
	}
	return v
}

func parseCommaSeparatedList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}

// --- パス ---

// GetImageDir は生成画像を保存するディレクトリパスを返します。
// 例: "drops/images"
func (c Config) GetImageDir() string {
	return path.Join(c.BaseOutputDir, "images")
}

// GetGCSObjectURL は、指定されたパスから完全なGCSオブジェクトURL ("gs://...") を組み立てます。
// pathが既に "gs://" プレフィックスを持つ場合は、そのままpathを返します。
// c.GCSBucketが空文字列の場合、この関数は引数で与えられたpathをそのまま返します。
func (c Config) GetGCSObjectURL(path string) string {
	if strings.HasPrefix(path, "gs://") {
		return path
	}
	if c.GCSBucket != "" {
		return fmt.Sprintf("gs://%s/%s", c.GCSBucket, path)
	}

	return path
}

// AuthEnabled は Google ログインによるアクセス制限が有効かどうかを返します。
func (c Config) AuthEnabled() bool {
	return c.GoogleClientID != ""
}

// DefaultCredentials はフォーム未入力時に使用するサーバー側の既定値です。
func (c Config) DefaultCredentials() domain.Credentials {
	return domain.Credentials{
		AIKey:          c.AIAPIKey,
		WebhookURL:     c.WebhookURL,
		EtsyAPIKey:     c.EtsyAPIKey,
		TrendsAPIKey:   c.TrendsAPIKey,
		PrintifyToken:  c.PrintifyToken,
		PrintifyShopID: c.PrintifyShopID,
	}
}

// --- バリデーション ---

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
func ValidateEssentialConfig(cfg *Config) error {
	if !IsSecureURL(cfg.ServiceURL) {
		return fmt.Errorf("security error: SERVICE_URL ('%s') must be HTTPS in production", cfg.ServiceURL)
	}

	switch cfg.AIProvider {
	case ProviderOpenAI:
	case ProviderGemini:
		if cfg.GCSBucket == "" {
			return fmt.Errorf("configuration error: GCS_BUCKET is required when AI_PROVIDER is gemini")
		}
	default:
		return fmt.Errorf("configuration error: unsupported AI_PROVIDER %q", cfg.AIProvider)
	}

	switch cfg.NicheSource {
	case NicheSourceEtsy, NicheSourceTrends:
	default:
		return fmt.Errorf("configuration error: unsupported NICHE_SOURCE %q", cfg.NicheSource)
	}

	switch cfg.IdeaContext {
	case IdeaContextOptional, IdeaContextNiche, IdeaContextSeed:
	default:
		return fmt.Errorf("configuration error: unsupported IDEA_CONTEXT %q", cfg.IdeaContext)
	}

	if cfg.SessionEncryptKey != "" {
		// SessionEncryptKey の長さチェック (AES要件: 16, 24, 32 bytes)
		keyLen := len([]byte(cfg.SessionEncryptKey))
		if keyLen != 16 && keyLen != 24 && keyLen != 32 {
			return fmt.Errorf("SESSION_ENCRYPT_KEY の長さが不正です (%d バイト)。16, 24, 32 バイトのいずれかにしてください", keyLen)
		}
	}

	if !cfg.AuthEnabled() {
		return nil
	}

	if cfg.GoogleClientSecret == "" || cfg.SessionSecret == "" {
		return fmt.Errorf("configuration error: OAuth settings are missing")
	}

	if len(cfg.AllowedEmails) == 0 && len(cfg.AllowedDomains) == 0 {
		return fmt.Errorf("configuration error: authorization lists are empty")
	}

	if cfg.SessionEncryptKey == "" {
		return fmt.Errorf("SESSION_ENCRYPT_KEY が設定されていません。ログインを有効にする場合は必須です")
	}

	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
