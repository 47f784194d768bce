package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	Env           string `envconfig:"ENV" default:"development"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN" default:"http://localhost:3000"`

	// Remote Service
	RemoteBaseURL   string        `envconfig:"REMOTE_BASE_URL"`
	RemoteTimeout   time.Duration `envconfig:"REMOTE_TIMEOUT" default:"15s"`
	RemoteJWTSecret string        `envconfig:"REMOTE_JWT_SECRET"`

	// Slot storage
	StorageDriver     string        `envconfig:"STORAGE_DRIVER" default:"memory"`
	DBUrl             string        `envconfig:"DB_DSN"`
	DBMaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns        int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	DBMaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"15m"`
	SlotPurgeInterval time.Duration `envconfig:"SLOT_PURGE_INTERVAL" default:"10m"`

	// Session and checkout lifetimes
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	DraftTTL     time.Duration `envconfig:"DRAFT_TTL" default:"30m"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`

	// Cache
	CacheProductTTL  time.Duration `envconfig:"CACHE_PRODUCT_TTL" default:"5m"`
	CacheTaxonomyTTL time.Duration `envconfig:"CACHE_TAXONOMY_TTL" default:"30m"`

	// Rate limiting
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"100"`

	// R2 Storage
	R2AccountID       string        `envconfig:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string        `envconfig:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string        `envconfig:"R2_ACCESS_KEY_SECRET"`
	R2BucketName      string        `envconfig:"R2_BUCKET_NAME"`
	R2PublicURL       string        `envconfig:"R2_PUBLIC_URL"`
	R2UploadTimeout   time.Duration `envconfig:"R2_UPLOAD_TIMEOUT" default:"30s"`
	MaxUploadSizeMB   int64         `envconfig:"MAX_UPLOAD_SIZE_MB" default:"10"`

	// Facebook Conversions API
	FBPixelID     string `envconfig:"FB_PIXEL_ID"`
	FBAccessToken string `envconfig:"FB_ACCESS_TOKEN"`
	FBAPIVersion  string `envconfig:"FB_API_VERSION" default:"v21.0"`

	// Business rules
	MaxCartQuantity int `envconfig:"MAX_CART_QUANTITY" default:"1000"`
}

// LoadConfig reads CONFIG_FILE (or .env) into the environment, then fills
// Config from it.
func LoadConfig() (*Config, error) {
	loadEnvFile()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDatabaseURL reads only DB_DSN, for the migrate command.
func LoadDatabaseURL() (string, error) {
	loadEnvFile()

	var db struct {
		URL string `envconfig:"DB_DSN" required:"true"`
	}
	if err := envconfig.Process("", &db); err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}
	if db.URL == "" {
		return "", errors.New("DB_DSN is required")
	}
	return db.URL, nil
}

func loadEnvFile() {
	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else if err := godotenv.Load(); err != nil {
		// In docker/prod there is usually no .env; system env vars apply.
		log.Println("No .env file found or error loading it, relying on system env vars")
	}
}

func (c *Config) Validate() error {
	if c.RemoteBaseURL == "" {
		return errors.New("REMOTE_BASE_URL is required")
	}
	if u, err := url.Parse(c.RemoteBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("REMOTE_BASE_URL %q is not an absolute URL", c.RemoteBaseURL)
	}
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DBUrl == "" {
			return errors.New("DB_DSN is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.MaxCartQuantity <= 0 {
		return errors.New("MAX_CART_QUANTITY must be positive")
	}
	if c.DraftTTL <= 0 || c.SessionTTL <= 0 {
		return errors.New("DRAFT_TTL and SESSION_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UploadsEnabled reports whether R2 credentials are configured.
func (c *Config) UploadsEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2BucketName != ""
}
