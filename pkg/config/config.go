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
	FeatureFlags  FeatureFlagsConfig
	Minio         MinioConfig
	Media         MediaConfig
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
	Env          string `envconfig:"MEALDIARY_APP_ENV" required:"true"`
	Port         string `envconfig:"MEALDIARY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MEALDIARY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEALDIARY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MEALDIARY_DB_DSN"`
	Driver string `envconfig:"MEALDIARY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MEALDIARY_DB_HOST"`
	LegacyPort     int    `envconfig:"MEALDIARY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MEALDIARY_DB_USER"`
	LegacyPassword string `envconfig:"MEALDIARY_DB_PASSWORD"`
	LegacyName     string `envconfig:"MEALDIARY_DB_NAME"`
	LegacySSLMode  string `envconfig:"MEALDIARY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MEALDIARY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MEALDIARY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MEALDIARY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MEALDIARY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MEALDIARY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MEALDIARY_REDIS_ADDR"`
	Password     string        `envconfig:"MEALDIARY_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEALDIARY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEALDIARY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEALDIARY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEALDIARY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEALDIARY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEALDIARY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"MEALDIARY_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"MEALDIARY_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"MEALDIARY_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"MEALDIARY_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MEALDIARY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MEALDIARY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MEALDIARY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MEALDIARY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MEALDIARY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MEALDIARY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MEALDIARY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MEALDIARY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MEALDIARY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MEALDIARY_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MEALDIARY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MEALDIARY_AUTO_MIGRATE" default:"false"`
}

type MinioConfig struct {
	Endpoint      string `envconfig:"MEALDIARY_MINIO_ENDPOINT" required:"true"`
	AccessKey     string `envconfig:"MEALDIARY_MINIO_ACCESS_KEY" required:"true"`
	SecretKey     string `envconfig:"MEALDIARY_MINIO_SECRET_KEY" required:"true"`
	UseSSL        bool   `envconfig:"MEALDIARY_MINIO_USE_SSL" default:"false"`
	PublicBaseURL string `envconfig:"MEALDIARY_MINIO_PUBLIC_BASE_URL"`
	FoodBucket    string `envconfig:"MEALDIARY_MINIO_FOOD_BUCKET" default:"food-images"`
	ProfileBucket string `envconfig:"MEALDIARY_MINIO_PROFILE_BUCKET" default:"profile-images"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"MEALDIARY_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes converts the configured megabyte cap into bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	return int64(m.MaxUploadMB) * 1024 * 1024
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
