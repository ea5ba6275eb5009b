package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/experience-marketplace/internal/data/db"
	"github.com/yungbote/experience-marketplace/internal/platform/envutil"
)

const (
	AccessModePlatform = "platform"
	AccessModeStatic   = "static"
)

// Config is resolved in three layers: built-in defaults, an optional YAML
// file, then environment variables.
type Config struct {
	Env     string `yaml:"env"`
	Addr    string `yaml:"addr"`
	LogMode string `yaml:"log_mode"`

	Database DatabaseConfig `yaml:"database"`
	Access   AccessConfig   `yaml:"access"`
	Storage  StorageConfig  `yaml:"storage"`
	Tracing  TracingConfig  `yaml:"tracing"`
	CORS     CORSConfig     `yaml:"cors"`
}

type DatabaseConfig struct {
	Driver        string        `yaml:"driver"`
	DSN           string        `yaml:"dsn"`
	Host          string        `yaml:"host"`
	Port          string        `yaml:"port"`
	User          string        `yaml:"user"`
	Password      string        `yaml:"password"`
	Name          string        `yaml:"name"`
	SSLMode       string        `yaml:"sslmode"`
	SQLitePath    string        `yaml:"sqlite_path"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
	LogLevel      string        `yaml:"log_level"`
}

type AccessConfig struct {
	Mode string `yaml:"mode"`

	PlatformURL string        `yaml:"platform_url"`
	APIKey      string        `yaml:"api_key"`
	AgentUserID string        `yaml:"agent_user_id"`
	CompanyID   string        `yaml:"company_id"`
	Timeout     time.Duration `yaml:"timeout"`

	TokenSecret    string        `yaml:"token_secret"`
	TokenPublicKey string        `yaml:"token_public_key"`
	TokenIssuer    string        `yaml:"token_issuer"`
	TokenLeeway    time.Duration `yaml:"token_leeway"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`

	// Static mode tables. Tokens maps token to user id; Tiers maps
	// "user:experience" (or "user:*") to a tier.
	StaticTokens      map[string]string `yaml:"static_tokens"`
	StaticTiers       map[string]string `yaml:"static_tiers"`
	StaticTrustTokens bool              `yaml:"static_trust_tokens"`
	StaticDefaultTier string            `yaml:"static_default_tier"`
}

type StorageConfig struct {
	Mode          string `yaml:"mode"`
	EmulatorHost  string `yaml:"emulator_host"`
	PublicBaseURL string `yaml:"public_base_url"`
	Bucket        string `yaml:"bucket"`
	CDNDomain     string `yaml:"cdn_domain"`
	Credentials   string `yaml:"credentials"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Exporter    string  `yaml:"exporter"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func DefaultConfig() Config {
	return Config{
		Env:     "development",
		Addr:    ":8080",
		LogMode: "development",
		Database: DatabaseConfig{
			Driver:        db.DriverPostgres,
			Host:          "localhost",
			Port:          "5432",
			User:          "postgres",
			Name:          "marketplace",
			SSLMode:       "disable",
			SQLitePath:    "marketplace.db",
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      "warn",
		},
		Access: AccessConfig{
			Mode:     AccessModePlatform,
			Timeout:  10 * time.Second,
			CacheTTL: 30 * time.Second,
		},
		Tracing: TracingConfig{
			ServiceName: "experience-marketplace",
			SampleRatio: 1,
		},
	}
}

// LoadConfig reads path (or CONFIG_FILE when path is empty) if one is given,
// then applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("APP_ENV", cfg.Env)
	if port := envutil.String("PORT", ""); port != "" {
		cfg.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)

	d := &cfg.Database
	d.Driver = strings.ToLower(envutil.String("DB_DRIVER", d.Driver))
	d.DSN = envutil.String("DATABASE_URL", d.DSN)
	d.Host = envutil.String("POSTGRES_HOST", d.Host)
	d.Port = envutil.String("POSTGRES_PORT", d.Port)
	d.User = envutil.String("POSTGRES_USER", d.User)
	d.Password = envutil.String("POSTGRES_PASSWORD", d.Password)
	d.Name = envutil.String("POSTGRES_NAME", d.Name)
	d.SSLMode = envutil.String("POSTGRES_SSLMODE", d.SSLMode)
	d.SQLitePath = envutil.String("SQLITE_PATH", d.SQLitePath)
	d.SlowThreshold = envutil.Duration("DB_SLOW_THRESHOLD", d.SlowThreshold)
	d.LogLevel = envutil.String("DB_LOG_LEVEL", d.LogLevel)

	a := &cfg.Access
	a.Mode = strings.ToLower(envutil.String("ACCESS_MODE", a.Mode))
	a.PlatformURL = envutil.String("PLATFORM_API_URL", a.PlatformURL)
	a.APIKey = envutil.String("PLATFORM_API_KEY", a.APIKey)
	a.AgentUserID = envutil.String("PLATFORM_AGENT_USER_ID", a.AgentUserID)
	a.CompanyID = envutil.String("PLATFORM_COMPANY_ID", a.CompanyID)
	a.Timeout = envutil.Duration("ACCESS_TIMEOUT", a.Timeout)
	a.TokenSecret = envutil.String("USER_TOKEN_SECRET", a.TokenSecret)
	a.TokenPublicKey = envutil.String("USER_TOKEN_PUBLIC_KEY", a.TokenPublicKey)
	a.TokenIssuer = envutil.String("USER_TOKEN_ISSUER", a.TokenIssuer)
	a.TokenLeeway = envutil.Duration("USER_TOKEN_LEEWAY", a.TokenLeeway)
	a.RedisAddr = envutil.String("REDIS_ADDR", a.RedisAddr)
	a.RedisPassword = envutil.String("REDIS_PASSWORD", a.RedisPassword)
	a.RedisDB = envutil.Int("REDIS_DB", a.RedisDB)
	a.CacheTTL = envutil.Duration("ACCESS_CACHE_TTL", a.CacheTTL)
	if pairs := envutil.List("ACCESS_STATIC_TOKENS", nil); pairs != nil {
		a.StaticTokens = parsePairs(pairs, "=")
	}
	if pairs := envutil.List("ACCESS_STATIC_TIERS", nil); pairs != nil {
		a.StaticTiers = parsePairs(pairs, "=")
	}
	a.StaticTrustTokens = envutil.Bool("ACCESS_STATIC_TRUST_TOKENS", a.StaticTrustTokens)
	a.StaticDefaultTier = envutil.String("ACCESS_STATIC_DEFAULT_TIER", a.StaticDefaultTier)

	s := &cfg.Storage
	s.Mode = envutil.String("OBJECT_STORAGE_MODE", s.Mode)
	s.EmulatorHost = envutil.String("STORAGE_EMULATOR_HOST", s.EmulatorHost)
	s.PublicBaseURL = envutil.String("OBJECT_STORAGE_PUBLIC_BASE_URL", s.PublicBaseURL)
	s.Bucket = envutil.String("LISTING_GCS_BUCKET_NAME", s.Bucket)
	s.CDNDomain = envutil.String("LISTING_CDN_DOMAIN", s.CDNDomain)
	s.Credentials = envutil.String("GOOGLE_APPLICATION_CREDENTIALS", s.Credentials)

	t := &cfg.Tracing
	t.Enabled = envutil.Bool("OTEL_ENABLED", t.Enabled)
	t.ServiceName = envutil.String("OTEL_SERVICE_NAME", t.ServiceName)
	t.Exporter = envutil.String("OTEL_EXPORTER", t.Exporter)
	t.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", t.Endpoint)
	t.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", t.Headers)
	t.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", t.Insecure)
	t.SampleRatio = envutil.Float("OTEL_SAMPLE_RATIO", t.SampleRatio)

	cfg.CORS.AllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.CORS.AllowedOrigins)
}

// parsePairs turns ["k=v", ...] into a map. Entries without sep are skipped.
func parsePairs(pairs []string, sep string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, sep)
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func (c Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.Database.Driver))
	}
	switch c.Access.Mode {
	case AccessModePlatform:
		if strings.TrimSpace(c.Access.APIKey) == "" {
			errs = append(errs, errors.New("PLATFORM_API_KEY is required when ACCESS_MODE=platform"))
		}
		if strings.TrimSpace(c.Access.TokenSecret) == "" && strings.TrimSpace(c.Access.TokenPublicKey) == "" {
			errs = append(errs, errors.New("USER_TOKEN_SECRET or USER_TOKEN_PUBLIC_KEY is required when ACCESS_MODE=platform"))
		}
	case AccessModeStatic:
	default:
		errs = append(errs, fmt.Errorf("ACCESS_MODE must be %q or %q, got %q", AccessModePlatform, AccessModeStatic, c.Access.Mode))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATIO must be within [0,1], got %v", c.Tracing.SampleRatio))
	}
	return errors.Join(errs...)
}

func (c Config) dbConfig() db.Config {
	return db.Config{
		Driver:        c.Database.Driver,
		DSN:           c.Database.DSN,
		Host:          c.Database.Host,
		Port:          c.Database.Port,
		User:          c.Database.User,
		Password:      c.Database.Password,
		Name:          c.Database.Name,
		SSLMode:       c.Database.SSLMode,
		SQLitePath:    c.Database.SQLitePath,
		SlowThreshold: c.Database.SlowThreshold,
		LogLevel:      c.Database.LogLevel,
	}
}
