package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "HUGLI"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "HUGLI_APP_ENV"
	EnvDBDSN  = "HUGLI_DB_DSN"
	EnvDBHost = "HUGLI_DB_HOST"
	EnvDBUser = "HUGLI_DB_USER"
	EnvDBName = "HUGLI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	OTP           OTPConfig
	AuthRateLimit AuthRateLimitConfig
	Cart          CartConfig
	FeatureFlags  FeatureFlagsConfig
	Business      BusinessConfig
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
	Env          string `envconfig:"HUGLI_APP_ENV" required:"true"`
	Port         string `envconfig:"HUGLI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HUGLI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HUGLI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HUGLI_DB_DSN"`
	Driver string `envconfig:"HUGLI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HUGLI_DB_HOST"`
	LegacyPort     int    `envconfig:"HUGLI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HUGLI_DB_USER"`
	LegacyPassword string `envconfig:"HUGLI_DB_PASSWORD"`
	LegacyName     string `envconfig:"HUGLI_DB_NAME"`
	LegacySSLMode  string `envconfig:"HUGLI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HUGLI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HUGLI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HUGLI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HUGLI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HUGLI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HUGLI_REDIS_ADDR"`
	Password     string        `envconfig:"HUGLI_REDIS_PASSWORD"`
	DB           int           `envconfig:"HUGLI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HUGLI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HUGLI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HUGLI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HUGLI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HUGLI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HUGLI_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HUGLI_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HUGLI_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"HUGLI_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HUGLI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HUGLI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HUGLI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HUGLI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HUGLI_ARGON_KEY_LEN" default:"32"`
}

type OTPConfig struct {
	Digits      int           `envconfig:"HUGLI_OTP_DIGITS" default:"6"`
	TTL         time.Duration `envconfig:"HUGLI_OTP_TTL" default:"10m"`
	MaxAttempts int           `envconfig:"HUGLI_OTP_MAX_ATTEMPTS" default:"5"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"HUGLI_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"HUGLI_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"HUGLI_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	OTPWindow          time.Duration `envconfig:"HUGLI_AUTH_RATE_LIMIT_OTP_WINDOW" default:"5m"`
	OTPEmailLimit      int           `envconfig:"HUGLI_AUTH_RATE_LIMIT_OTP_EMAIL_LIMIT" default:"3"`
	OTPIPLimit         int           `envconfig:"HUGLI_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"10"`
	RegisterWindow     time.Duration `envconfig:"HUGLI_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"HUGLI_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"HUGLI_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"HUGLI_CART_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HUGLI_AUTO_MIGRATE" default:"false"`
}

// BusinessConfig carries the shop's public contact details, echoed to
// customers when an order cannot be placed online.
type BusinessConfig struct {
	Name    string `envconfig:"HUGLI_BUSINESS_NAME" default:"Hugli Printing Press"`
	Email   string `envconfig:"HUGLI_BUSINESS_EMAIL" default:"bhavnishgarg94@gmail.com"`
	Phone   string `envconfig:"HUGLI_BUSINESS_PHONE" default:"+91-7837315102"`
	Address string `envconfig:"HUGLI_BUSINESS_ADDRESS" default:"Handiaya Bazaar Rd, Barnala, Punjab 148101"`
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
