package confs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string
	LogLevel    string

	Database DatabaseConfig
	Session  SessionConfig
	Storage  StorageConfig
	Upload   UploadConfig
	CMS      CMSConfig
}

type DatabaseConfig struct {
	Driver     string // postgres | sqlite
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

type SessionConfig struct {
	Secret       string
	CookieName   string
	TTL          time.Duration
	CookieSecure bool
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string
}

type UploadConfig struct {
	MaxFiles  int
	MaxMemory int64
	MaxBody   int64 // whole multipart request
}

type CMSConfig struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	CacheTTL   time.Duration
	ImageField string
}

const minSecretLength = 32

// LoadConfig loads environment variables from a .env file if present
// and builds the application configuration from them.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	r := &envReader{}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			URL:        os.Getenv("DB_URL"),
			Host:       os.Getenv("DB_HOST"),
			Port:       os.Getenv("DB_PORT"),
			User:       os.Getenv("DB_USER"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       os.Getenv("DB_NAME"),
			SQLitePath: getEnv("SQLITE_PATH", "realestate.db"),
		},
		Session: SessionConfig{
			Secret:       os.Getenv("JWT_SECRET"),
			CookieName:   getEnv("SESSION_COOKIE", "re_session"),
			TTL:          r.duration("SESSION_TTL", 24*time.Hour),
			CookieSecure: r.boolean("COOKIE_SECURE", true),
		},
		Storage: StorageConfig{
			Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
			AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
			Bucket:    getEnv("STORAGE_BUCKET", "property-media"),
			Region:    getEnv("STORAGE_REGION", "us-east-1"),
			UseSSL:    r.boolean("STORAGE_USE_SSL", true),
			PublicURL: strings.TrimRight(os.Getenv("STORAGE_PUBLIC_URL"), "/"),
		},
		Upload: UploadConfig{
			MaxFiles:  r.integer("UPLOAD_MAX_FILES", 40),
			MaxMemory: int64(r.integer("UPLOAD_MAX_MEMORY", 32<<20)),
			MaxBody:   int64(r.integer("UPLOAD_MAX_BODY", 512<<20)),
		},
		CMS: CMSConfig{
			BaseURL:    strings.TrimRight(os.Getenv("CMS_BASE_URL"), "/"),
			Token:      os.Getenv("CMS_TOKEN"),
			Timeout:    r.duration("CMS_TIMEOUT", 5*time.Second),
			CacheTTL:   r.duration("CMS_CACHE_TTL", 5*time.Minute),
			ImageField: getEnv("CMS_IMAGE_FIELD", "images"),
		},
	}

	if r.err != nil {
		return nil, r.err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Session.Secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported DB_DRIVER %q (expected postgres or sqlite)", c.Database.Driver)
	}
	if c.Upload.MaxFiles <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILES must be positive")
	}
	if c.Upload.MaxBody <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BODY must be positive")
	}
	return nil
}

// envReader keeps the first parse error so LoadConfig can report it once.
type envReader struct {
	err error
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *envReader) boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *envReader) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) fail(key, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
