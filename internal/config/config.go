package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	MongoURI string `env:"MONGO_URI"`
	MongoDB  string `env:"MONGO_DB" envDefault:"linkswipe"`

	// StorageBackend selects where submitted photos are kept: "firebase"
	// uploads to the configured bucket, "local" writes under UploadDir and
	// serves files from /uploads/.
	StorageBackend          string `env:"STORAGE_BACKEND" envDefault:"firebase"`
	StorageBucket           string `env:"STORAGE_BUCKET"`
	FirebaseCredentialsJSON string `env:"FIREBASE_CREDENTIALS_JSON"`
	UploadDir               string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	MaxUploadSizeMB         int64  `env:"MAX_UPLOAD_SIZE_MB" envDefault:"10"`

	// Gumroad payment gating. ProductID is the single product code accepted
	// by the webhook. WebhookSecret, when set, enables HMAC-SHA256
	// verification of webhook payloads; when empty the webhook is accepted
	// on the product check alone, matching the provider's plain ping setup.
	GumroadProductID     string `env:"GUMROAD_PRODUCT_ID" envDefault:"xziod"`
	GumroadWebhookSecret string `env:"GUMROAD_WEBHOOK_SECRET"`
	PaymentPageURL       string `env:"PAYMENT_PAGE_URL" envDefault:"https://linkswipe.gumroad.com/l/xziod"`

	// AllowedLinkDomains restricts submitted profile links to recognized
	// platforms. An empty list disables the check.
	AllowedLinkDomains []string `env:"ALLOWED_LINK_DOMAINS" envSeparator:"," envDefault:"facebook.com,instagram.com,x.com,twitter.com,tiktok.com,youtube.com"`

	// Optional Redis cache for the approved-profiles feed.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	FeedCacheTTL  time.Duration `env:"FEED_CACHE_TTL" envDefault:"30s"`

	// Admin review surface.
	JWTSecret         string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`
	JWTExpiration     time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	AdminEmail        string        `env:"ADMIN_EMAIL"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`

	// Optional SendGrid notifications to submitters.
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	FromEmail      string `env:"FROM_EMAIL"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StorageBackend != "firebase" && cfg.StorageBackend != "local" {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	return cfg, nil
}
