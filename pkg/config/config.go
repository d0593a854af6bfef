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
	JWT          JWTConfig
	Password     PasswordConfig
	Admin        AdminSeedConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Media        MediaConfig
	Cache        CacheConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"STALLCRAFT_APP_ENV" required:"true"`
	Port         string `envconfig:"STALLCRAFT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STALLCRAFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STALLCRAFT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STALLCRAFT_DB_DSN"`
	Driver string `envconfig:"STALLCRAFT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STALLCRAFT_DB_HOST"`
	LegacyPort     int    `envconfig:"STALLCRAFT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STALLCRAFT_DB_USER"`
	LegacyPassword string `envconfig:"STALLCRAFT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STALLCRAFT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STALLCRAFT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STALLCRAFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STALLCRAFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STALLCRAFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STALLCRAFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STALLCRAFT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STALLCRAFT_REDIS_ADDR"`
	Password     string        `envconfig:"STALLCRAFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STALLCRAFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STALLCRAFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STALLCRAFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STALLCRAFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STALLCRAFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STALLCRAFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STALLCRAFT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STALLCRAFT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STALLCRAFT_JWT_EXPIRATION_MINUTES" default:"720"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STALLCRAFT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STALLCRAFT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STALLCRAFT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STALLCRAFT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STALLCRAFT_ARGON_KEY_LEN" default:"32"`
}

// AdminSeedConfig provisions the first dashboard account on startup. Leaving
// the email empty disables the bootstrap.
type AdminSeedConfig struct {
	Email    string `envconfig:"STALLCRAFT_ADMIN_EMAIL"`
	Password string `envconfig:"STALLCRAFT_ADMIN_PASSWORD"`
}

type RateLimitConfig struct {
	LoginWindow    time.Duration `envconfig:"STALLCRAFT_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit   int           `envconfig:"STALLCRAFT_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
	ContactWindow  time.Duration `envconfig:"STALLCRAFT_RATE_LIMIT_CONTACT_WINDOW" default:"1m"`
	ContactIPLimit int           `envconfig:"STALLCRAFT_RATE_LIMIT_CONTACT_IP_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STALLCRAFT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STALLCRAFT_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"STALLCRAFT_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"STALLCRAFT_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"STALLCRAFT_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"STALLCRAFT_GCS_BUCKET_NAME" required:"true"`
	DownloadURLExpiry time.Duration `envconfig:"STALLCRAFT_GCS_DOWNLOAD_URL_EXPIRY" default:"87600h"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"STALLCRAFT_MAX_UPLOAD_MB" default:"50"`
}

type CacheConfig struct {
	TTL                  time.Duration `envconfig:"STALLCRAFT_CACHE_TTL" default:"30s"`
	BlogBatchSize        int           `envconfig:"STALLCRAFT_CACHE_BLOG_BATCH_SIZE" default:"10"`
	TestimonialBatchSize int           `envconfig:"STALLCRAFT_CACHE_TESTIMONIAL_BATCH_SIZE" default:"20"`
	DefaultBatchSize     int           `envconfig:"STALLCRAFT_CACHE_DEFAULT_BATCH_SIZE" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STALLCRAFT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
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
