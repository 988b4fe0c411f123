package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BLINDQUOTE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv      = "BLINDQUOTE_APP_ENV"
	EnvPort        = "BLINDQUOTE_APP_PORT"
	EnvLogLevel    = "BLINDQUOTE_LOG_LEVEL"
	EnvLogFormat   = "BLINDQUOTE_LOG_FORMAT"
	EnvDBDSN       = "BLINDQUOTE_DB_DSN"
	EnvDBDriver    = "BLINDQUOTE_DB_DRIVER"
	EnvDBHost      = "BLINDQUOTE_DB_HOST"
	EnvDBUser      = "BLINDQUOTE_DB_USER"
	EnvDBName      = "BLINDQUOTE_DB_NAME"
	EnvRedisURL    = "BLINDQUOTE_REDIS_URL"
	EnvDraftTTL    = "BLINDQUOTE_REDIS_DRAFT_TTL"
	EnvPricingRate = "BLINDQUOTE_PRICING_RATES"
	EnvCORSOrigins = "BLINDQUOTE_CORS_ALLOWED_ORIGINS"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Quote        QuoteConfig
	Pricing      PricingConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"BLINDQUOTE_APP_ENV" required:"true"`
	Port         string `envconfig:"BLINDQUOTE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BLINDQUOTE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"BLINDQUOTE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"BLINDQUOTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BLINDQUOTE_DB_DSN"`
	Driver string `envconfig:"BLINDQUOTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BLINDQUOTE_DB_HOST"`
	LegacyPort     int    `envconfig:"BLINDQUOTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BLINDQUOTE_DB_USER"`
	LegacyPassword string `envconfig:"BLINDQUOTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"BLINDQUOTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"BLINDQUOTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BLINDQUOTE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BLINDQUOTE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BLINDQUOTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BLINDQUOTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	// SlowQuery is the latency above which queries are logged as warnings; 0 disables it.
	SlowQuery time.Duration `envconfig:"BLINDQUOTE_DB_SLOW_QUERY" default:"250ms"`
}

// IsSQLite reports whether the quote store runs on the embedded sqlite driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"BLINDQUOTE_REDIS_URL"`
	Address      string        `envconfig:"BLINDQUOTE_REDIS_ADDR"`
	Password     string        `envconfig:"BLINDQUOTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BLINDQUOTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BLINDQUOTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BLINDQUOTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BLINDQUOTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BLINDQUOTE_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"BLINDQUOTE_REDIS_WRITE_TIMEOUT" default:"3s"`
	DraftTTL     time.Duration `envconfig:"BLINDQUOTE_REDIS_DRAFT_TTL" default:"72h"`
}

type QuoteConfig struct {
	DefaultProduct string `envconfig:"BLINDQUOTE_QUOTE_DEFAULT_PRODUCT" default:"rollerBlind"`
	CompanyName    string `envconfig:"BLINDQUOTE_QUOTE_COMPANY_NAME" default:"Roller Blind Studio"`
	ValidityDays   int    `envconfig:"BLINDQUOTE_QUOTE_VALIDITY_DAYS" default:"14"`
}

type PricingConfig struct {
	// RatesPerSqm maps fabric type to a price per square metre.
	RatesPerSqm   map[string]float64 `envconfig:"BLINDQUOTE_PRICING_RATES" default:"B1:120,B2:135,B3:150,B4:170,B5:190,SN:160,LF:180"`
	MotorPrice    float64            `envconfig:"BLINDQUOTE_PRICING_MOTOR" default:"350"`
	HDWinderPrice float64            `envconfig:"BLINDQUOTE_PRICING_HD_WINDER" default:"45"`
	MinimumArea   float64            `envconfig:"BLINDQUOTE_PRICING_MIN_AREA_SQM" default:"1"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BLINDQUOTE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BLINDQUOTE_AUTO_MIGRATE" default:"false"`
	DraftCache  bool `envconfig:"BLINDQUOTE_DRAFT_CACHE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:blindquote.db?cache=shared"
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
