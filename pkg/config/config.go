package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	DB        DBConfig
	Redis     RedisConfig
	Session   SessionConfig
	WhatsApp  WhatsAppConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	if cfg.Catalog.UsesDB() {
		if err := cfg.DB.EnsureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ESIHLE_APP_ENV" required:"true"`
	Port         string `envconfig:"ESIHLE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ESIHLE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ESIHLE_LOG_WARN_STACK" default:"false"`
	BrandName    string `envconfig:"ESIHLE_BRAND_NAME" default:"Esihle Skin Hair"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig selects where the startup catalog is loaded from.
type CatalogConfig struct {
	Source      string `envconfig:"ESIHLE_CATALOG_SOURCE" default:"fixture"`
	FixturePath string `envconfig:"ESIHLE_CATALOG_FIXTURE_PATH"`
	AutoMigrate bool   `envconfig:"ESIHLE_CATALOG_AUTO_MIGRATE" default:"false"`
}

// UsesDB reports whether the catalog is read from the products table.
func (c CatalogConfig) UsesDB() bool {
	return strings.EqualFold(c.Source, CatalogSourceDB)
}

func (c CatalogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Source)) {
	case CatalogSourceFixture, CatalogSourceDB:
		return nil
	}
	return fmt.Errorf("%s must be %q or %q, got %q", EnvCatalogSource, CatalogSourceFixture, CatalogSourceDB, c.Source)
}

type DBConfig struct {
	DSN    string `envconfig:"ESIHLE_DB_DSN"`
	Driver string `envconfig:"ESIHLE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ESIHLE_DB_HOST"`
	LegacyPort     int    `envconfig:"ESIHLE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ESIHLE_DB_USER"`
	LegacyPassword string `envconfig:"ESIHLE_DB_PASSWORD"`
	LegacyName     string `envconfig:"ESIHLE_DB_NAME"`
	LegacySSLMode  string `envconfig:"ESIHLE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESIHLE_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"ESIHLE_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"ESIHLE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESIHLE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

// RedisConfig is optional: an empty URL and address leave carts in memory only.
type RedisConfig struct {
	URL          string        `envconfig:"ESIHLE_REDIS_URL"`
	Address      string        `envconfig:"ESIHLE_REDIS_ADDR"`
	Password     string        `envconfig:"ESIHLE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ESIHLE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ESIHLE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ESIHLE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ESIHLE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ESIHLE_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"ESIHLE_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// SessionConfig controls cart session tokens and their lifetime.
type SessionConfig struct {
	Secret        string        `envconfig:"ESIHLE_SESSION_SECRET" required:"true"`
	Issuer        string        `envconfig:"ESIHLE_SESSION_ISSUER" default:"esihle-storefront"`
	TTL           time.Duration `envconfig:"ESIHLE_SESSION_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"ESIHLE_SESSION_SWEEP_INTERVAL" default:"5m"`
}

type WhatsAppConfig struct {
	PhoneNumber string `envconfig:"ESIHLE_WHATSAPP_PHONE" default:"+1234567890"`
	BaseURL     string `envconfig:"ESIHLE_WHATSAPP_BASE_URL" default:"https://wa.me"`
}

// RateLimitConfig throttles the messaging handoff endpoints per client IP
// and per cart session. Limits only apply when redis is configured.
type RateLimitConfig struct {
	HandoffWindow       time.Duration `envconfig:"ESIHLE_RATE_LIMIT_HANDOFF_WINDOW" default:"1m"`
	HandoffIPLimit      int           `envconfig:"ESIHLE_RATE_LIMIT_HANDOFF_IP_LIMIT" default:"10"`
	HandoffSessionLimit int           `envconfig:"ESIHLE_RATE_LIMIT_HANDOFF_SESSION_LIMIT" default:"5"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ESIHLE_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
}

// EnsureDSN fills DSN from the legacy host/user/name variables when it is unset.
func (db *DBConfig) EnsureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
