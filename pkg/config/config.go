package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Pricing      PricingConfig
	Checkout     CheckoutConfig
	RateLimit    RateLimitConfig
	Admin        AdminConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"COCOBLOOM_APP_ENV" required:"true"`
	Port         string `envconfig:"COCOBLOOM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COCOBLOOM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COCOBLOOM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"COCOBLOOM_DB_DSN"`
	Driver string `envconfig:"COCOBLOOM_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"COCOBLOOM_DB_HOST"`
	LegacyPort     int    `envconfig:"COCOBLOOM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"COCOBLOOM_DB_USER"`
	LegacyPassword string `envconfig:"COCOBLOOM_DB_PASSWORD"`
	LegacyName     string `envconfig:"COCOBLOOM_DB_NAME"`
	LegacySSLMode  string `envconfig:"COCOBLOOM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COCOBLOOM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COCOBLOOM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COCOBLOOM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COCOBLOOM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is sqlite (dev/test only).
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"COCOBLOOM_REDIS_URL" required:"true"`
	Address      string        `envconfig:"COCOBLOOM_REDIS_ADDR"`
	Password     string        `envconfig:"COCOBLOOM_REDIS_PASSWORD"`
	DB           int           `envconfig:"COCOBLOOM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COCOBLOOM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COCOBLOOM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COCOBLOOM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COCOBLOOM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COCOBLOOM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	// TTL bounds how long an idle session cart survives in Redis.
	TTL time.Duration `envconfig:"COCOBLOOM_CART_TTL" default:"720h"`
}

type PricingConfig struct {
	FreeShippingThreshold int `envconfig:"COCOBLOOM_PRICING_FREE_SHIPPING_THRESHOLD" default:"399"`
	FlatShippingFee       int `envconfig:"COCOBLOOM_PRICING_FLAT_SHIPPING_FEE" default:"39"`
}

type CheckoutConfig struct {
	OrderCodePrefix string        `envconfig:"COCOBLOOM_CHECKOUT_ORDER_CODE_PREFIX" default:"ORD"`
	WhatsAppNumber  string        `envconfig:"COCOBLOOM_CHECKOUT_WHATSAPP_NUMBER" default:"212607076940"`
	IdempotencyTTL  time.Duration `envconfig:"COCOBLOOM_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

// RateLimitConfig throttles the abuse-prone public endpoints. Zero limits
// or a zero window disable the corresponding counter.
type RateLimitConfig struct {
	Window               time.Duration `envconfig:"COCOBLOOM_RATE_LIMIT_WINDOW" default:"1m"`
	CheckoutIPLimit      int           `envconfig:"COCOBLOOM_RATE_LIMIT_CHECKOUT_IP" default:"15"`
	CheckoutSessionLimit int           `envconfig:"COCOBLOOM_RATE_LIMIT_CHECKOUT_SESSION" default:"5"`
	PromoIPLimit         int           `envconfig:"COCOBLOOM_RATE_LIMIT_PROMO_IP" default:"30"`
	PromoSessionLimit    int           `envconfig:"COCOBLOOM_RATE_LIMIT_PROMO_SESSION" default:"10"`
}

type AdminConfig struct {
	Token string `envconfig:"COCOBLOOM_ADMIN_TOKEN"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"COCOBLOOM_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"COCOBLOOM_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
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
