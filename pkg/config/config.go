package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Company       CompanyConfig
	Notify        NotifyConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env              string   `envconfig:"IRRIGO_APP_ENV" required:"true"`
	Port             string   `envconfig:"IRRIGO_APP_PORT" required:"true"`
	LogLevel         string   `envconfig:"IRRIGO_LOG_LEVEL" default:"info"`
	LogWarnStack     bool     `envconfig:"IRRIGO_LOG_WARN_STACK" default:"false"`
	ExtraCORSOrigins []string `envconfig:"IRRIGO_CORS_EXTRA_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"IRRIGO_DB_DSN"`
	Driver string `envconfig:"IRRIGO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"IRRIGO_DB_HOST"`
	LegacyPort     int    `envconfig:"IRRIGO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"IRRIGO_DB_USER"`
	LegacyPassword string `envconfig:"IRRIGO_DB_PASSWORD"`
	LegacyName     string `envconfig:"IRRIGO_DB_NAME"`
	LegacySSLMode  string `envconfig:"IRRIGO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"IRRIGO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"IRRIGO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"IRRIGO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"IRRIGO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"IRRIGO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"IRRIGO_REDIS_ADDR"`
	Password     string        `envconfig:"IRRIGO_REDIS_PASSWORD"`
	DB           int           `envconfig:"IRRIGO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"IRRIGO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"IRRIGO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"IRRIGO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"IRRIGO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"IRRIGO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig holds the signing inputs for access tokens. Secret has no
// fallback: a missing value aborts startup instead of silently minting
// tokens that die on the next restart.
type JWTConfig struct {
	Secret                 string `envconfig:"IRRIGO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"IRRIGO_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"IRRIGO_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"IRRIGO_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"IRRIGO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"IRRIGO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"IRRIGO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"IRRIGO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"IRRIGO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"IRRIGO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"IRRIGO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"IRRIGO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	QuoteWindow     time.Duration `envconfig:"IRRIGO_AUTH_RATE_LIMIT_QUOTE_WINDOW" default:"5m"`
	QuoteIPLimit    int           `envconfig:"IRRIGO_AUTH_RATE_LIMIT_QUOTE_IP_LIMIT" default:"10"`
}

// CompanyConfig feeds the quote document letterhead.
type CompanyConfig struct {
	Name       string `envconfig:"IRRIGO_COMPANY_NAME" default:"IrriGo Irrigation Systems"`
	Tagline    string `envconfig:"IRRIGO_COMPANY_TAGLINE" default:"Smart irrigation for every farm"`
	Address    string `envconfig:"IRRIGO_COMPANY_ADDRESS" default:"Mombasa Road, Nairobi, Kenya"`
	Email      string `envconfig:"IRRIGO_COMPANY_EMAIL" default:"quotes@irrigo.example"`
	Phone      string `envconfig:"IRRIGO_COMPANY_PHONE" default:"+254 700 000000"`
	VATNumber  string `envconfig:"IRRIGO_COMPANY_VAT_NUMBER"`
	WebsiteURL string `envconfig:"IRRIGO_COMPANY_WEBSITE_URL" default:"https://irrigo.example"`
}

type NotifyConfig struct {
	FromEmail       string `envconfig:"IRRIGO_NOTIFY_FROM_EMAIL" default:"quotes@irrigo.example"`
	WhatsAppEnabled bool   `envconfig:"IRRIGO_NOTIFY_WHATSAPP_ENABLED" default:"true"`
	SMSEnabled      bool   `envconfig:"IRRIGO_NOTIFY_SMS_ENABLED" default:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"IRRIGO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
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
