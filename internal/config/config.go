package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Letter    LetterConfig    `yaml:"letter"`
	Mail      MailConfig      `yaml:"mail"`
	Notify    NotifyConfig    `yaml:"notify"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig limits requests per client IP.
type RateLimitConfig struct {
	APIPerMinute    int           `yaml:"api_per_minute"    env:"RATE_LIMIT_API_PER_MINUTE"    env-default:"120"`
	AdminPerMinute  int           `yaml:"admin_per_minute"  env:"RATE_LIMIT_ADMIN_PER_MINUTE"  env-default:"10"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"5m"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"credit-disputer"`
}

// AuthConfig holds bearer-token validation settings. Tokens are issued by
// the account service; this service only verifies them.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"credit-disputer"`
	JWTLeeway time.Duration `yaml:"jwt_leeway" env:"AUTH_JWT_LEEWAY" env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LifecycleConfig holds dispute lifecycle timing. The bureau response window
// is fixed by law and lives in the domain package.
type LifecycleConfig struct {
	FollowUpInterval time.Duration `yaml:"follow_up_interval" env:"LIFECYCLE_FOLLOW_UP_INTERVAL" env-default:"360h"`
	ConflictBackoff  time.Duration `yaml:"conflict_backoff"   env:"LIFECYCLE_CONFLICT_BACKOFF"   env-default:"200ms"`
}

// ReconcileConfig holds batch reconciliation settings.
type ReconcileConfig struct {
	Workers     int           `yaml:"workers"      env:"RECONCILE_WORKERS"      env-default:"1"`
	BatchLimit  int           `yaml:"batch_limit"  env:"RECONCILE_BATCH_LIMIT"  env-default:"500"`
	ItemTimeout time.Duration `yaml:"item_timeout" env:"RECONCILE_ITEM_TIMEOUT" env-default:"2m"`
	RunTimeout  time.Duration `yaml:"run_timeout"  env:"RECONCILE_RUN_TIMEOUT"  env-default:"30m"`
}

// Letter providers.
const (
	LetterProviderAnthropic = "anthropic"
	LetterProviderOpenAI    = "openai"
	LetterProviderTemplate  = "template"
)

// LetterConfig selects the AI letter writer.
type LetterConfig struct {
	Provider  string        `yaml:"provider"   env:"LETTER_PROVIDER"   env-default:"template"`
	APIKey    string        `yaml:"api_key"    env:"LETTER_API_KEY"`
	Model     string        `yaml:"model"      env:"LETTER_MODEL"`
	Timeout   time.Duration `yaml:"timeout"    env:"LETTER_TIMEOUT"    env-default:"30s"`
	MaxTokens int           `yaml:"max_tokens" env:"LETTER_MAX_TOKENS" env-default:"1024"`
}

// MailConfig holds the postal mail API settings.
type MailConfig struct {
	BaseURL string        `yaml:"base_url" env:"MAIL_BASE_URL" env-default:"https://api.lob.com"`
	APIKey  string        `yaml:"api_key"  env:"MAIL_API_KEY"`
	Timeout time.Duration `yaml:"timeout"  env:"MAIL_TIMEOUT"  env-default:"30s"`
}

// NotifyConfig holds the reminder webhook settings. An empty URL disables it.
type NotifyConfig struct {
	WebhookURL string        `yaml:"webhook_url" env:"NOTIFY_WEBHOOK_URL"`
	Timeout    time.Duration `yaml:"timeout"     env:"NOTIFY_TIMEOUT"     env-default:"10s"`
}

// DefaultModel returns the model used when none is configured.
func (c LetterConfig) DefaultModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case LetterProviderAnthropic:
		return "claude-sonnet-4-5"
	case LetterProviderOpenAI:
		return "gpt-4o-mini"
	}
	return ""
}

// NotifyEnabled reports whether reminder notifications are configured.
func (c NotifyConfig) NotifyEnabled() bool {
	return c.WebhookURL != ""
}
