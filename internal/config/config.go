package config

import (
	"os"
	"path"
	"time"
)

const (
	// ImageURLExpiration は Webhook の先で画像を取得し終えるまでの時間を考慮した有効期限
	ImageURLExpiration      = 24 * time.Hour
	DefaultOpenAIBaseURL    = "https://api.openai.com/v1"
	DefaultOpenAIChatModel  = "gpt-4o"
	DefaultOpenAIImageModel = "dall-e-3"
	DefaultGeminiModel      = "gemini-3-flash-preview"
	DefaultGeminiImageModel = "imagen-4.0-generate-001"
	DefaultEtsyBaseURL      = "https://openapi.etsy.com"
	DefaultTrendsBaseURL    = "https://serpapi.com"
	DefaultPrintifyBaseURL  = "https://api.printify.com"
	// DefaultHTTPTimeout 画像生成 API の応答を考慮したタイムアウト
	DefaultHTTPTimeout = 120 * time.Second
	// DefaultWebhookTimeout は Webhook への POST に許容する時間です。
	DefaultWebhookTimeout = 10 * time.Second
	// DefaultNicheRateLimit はマーケットプレイス検索 API の呼び出し間隔です。
	DefaultNicheRateLimit   = 200 * time.Millisecond
	DefaultSessionTTL       = 12 * time.Hour
	DefaultPrintifyPageSize = 50
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	NicheSourceEtsy   = "etsy"
	NicheSourceTrends = "trends"

	IdeaContextOptional = "optional"
	IdeaContextNiche    = "niche"
	IdeaContextSeed     = "seed"
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	ServiceURL      string
	Port            string
	TemplateDir     string
	ShutdownTimeout time.Duration

	// AI Provider Settings
	AIProvider       string // "openai" または "gemini"
	AIAPIKey         string // フォーム未入力時に使う既定キー
	OpenAIBaseURL    string
	OpenAIChatModel  string
	OpenAIImageModel string
	GeminiModel      string // アイデア生成用モデル
	GeminiImageModel string // Imagen モデル
	ImageSize        string
	ImageQuality     string
	HTTPTimeout      time.Duration
	// SkipNetworkValidation は外部 API と Webhook への内部ネットワーク宛て通信を許可します (ローカル開発用)。
	SkipNetworkValidation bool

	// Workflow Settings
	IdeaContext    string // "optional", "niche", "seed"
	NicheSource    string // "etsy" または "trends"
	NicheRateLimit time.Duration
	CatalogPath    string // 空の場合は埋め込みのカタログを使用

	// Downstream Settings
	WebhookURL         string
	WebhookTimeout     time.Duration
	EtsyAPIKey         string
	EtsyBaseURL        string
	TrendsAPIKey       string
	TrendsBaseURL      string
	PrintifyToken      string
	PrintifyShopID     string
	PrintifyBaseURL    string
	PrintifyPageSize   int
	SlackWebhookURL    string
	ImageURLExpiration time.Duration

	// Storage Settings
	GCSBucket     string // Gemini で生成した画像を置くバケット
	BaseOutputDir string // GCS内のベースルート (例: "drops")
	RedisURL      string // 空の場合はメモリ上のセッションストアを使用
	SessionTTL    time.Duration

	// OAuth & Session Settings
	GoogleClientID     string
	GoogleClientSecret string
	// SessionSecret はセッションデータのHMAC署名用シークレットキーです。
	SessionSecret string
	// SessionEncryptKey はセッションデータのAES暗号化用シークレットキーです。 16, 24, 32 バイトのいずれかである必要があります。
	SessionEncryptKey string

	// Authz Settings
	AllowedEmails  []string
	AllowedDomains []string
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	serviceURL := getEnv("SERVICE_URL", "http://localhost:8080")

	// 実行環境（Cloud Run, ko）に応じたパスの解決
	baseDir := "."
	if os.Getenv("KO_DATA_PATH") != "" || os.Getenv("K_SERVICE") != "" {
		baseDir = "/app"
	}

	return &Config{
		ServiceURL:      serviceURL,
		Port:            getEnv("PORT", "8080"),
		TemplateDir:     getEnv("TEMPLATE_DIR", path.Join(baseDir, "templates")),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		AIProvider:       getEnv("AI_PROVIDER", ProviderOpenAI),
		AIAPIKey:         getEnv("AI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		OpenAIChatModel:  getEnv("OPENAI_CHAT_MODEL", DefaultOpenAIChatModel),
		OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", DefaultOpenAIImageModel),
		GeminiModel:      getEnv("GEMINI_MODEL", DefaultGeminiModel),
		GeminiImageModel: getEnv("GEMINI_IMAGE_MODEL", DefaultGeminiImageModel),
		ImageSize:        getEnv("IMAGE_SIZE", "1024x1024"),
		ImageQuality:     getEnv("IMAGE_QUALITY", "hd"),
		HTTPTimeout:      getEnvDuration("HTTP_TIMEOUT", DefaultHTTPTimeout),

		SkipNetworkValidation: getEnvBool("SKIP_NETWORK_VALIDATION", false),

		IdeaContext:    getEnv("IDEA_CONTEXT", IdeaContextOptional),
		NicheSource:    getEnv("NICHE_SOURCE", NicheSourceTrends),
		NicheRateLimit: getEnvDuration("NICHE_RATE_LIMIT", DefaultNicheRateLimit),
		CatalogPath:    getEnv("CATALOG_PATH", ""),

		WebhookURL:         getEnv("WEBHOOK_URL", ""),
		WebhookTimeout:     getEnvDuration("WEBHOOK_TIMEOUT", DefaultWebhookTimeout),
		EtsyAPIKey:         getEnv("ETSY_API_KEY", ""),
		EtsyBaseURL:        getEnv("ETSY_BASE_URL", DefaultEtsyBaseURL),
		TrendsAPIKey:       getEnv("TRENDS_API_KEY", ""),
		TrendsBaseURL:      getEnv("TRENDS_BASE_URL", DefaultTrendsBaseURL),
		PrintifyToken:      getEnv("PRINTIFY_TOKEN", ""),
		PrintifyShopID:     getEnv("PRINTIFY_SHOP_ID", ""),
		PrintifyBaseURL:    getEnv("PRINTIFY_BASE_URL", DefaultPrintifyBaseURL),
		PrintifyPageSize:   getEnvInt("PRINTIFY_PAGE_SIZE", DefaultPrintifyPageSize),
		SlackWebhookURL:    getEnv("SLACK_WEBHOOK_URL", ""),
		ImageURLExpiration: getEnvDuration("IMAGE_URL_EXPIRATION", ImageURLExpiration),

		GCSBucket:     getEnv("GCS_BUCKET", ""),
		BaseOutputDir: getEnv("BASE_OUTPUT_DIR", "drops"),
		RedisURL:      getEnv("REDIS_URL", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", DefaultSessionTTL),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		SessionEncryptKey:  getEnv("SESSION_ENCRYPT_KEY", ""),

		AllowedEmails:  parseCommaSeparatedList(getEnv("ALLOWED_EMAILS", "")),
		AllowedDomains: parseCommaSeparatedList(getEnv("ALLOWED_DOMAINS", "")),
	}
}
