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
	FeatureFlags  FeatureFlagsConfig
	Notifications NotificationsConfig
	Notifier      NotifierConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
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
	Env          string `envconfig:"VERDULERIA_APP_ENV" required:"true"`
	Port         string `envconfig:"VERDULERIA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VERDULERIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VERDULERIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VERDULERIA_DB_DSN"`
	Driver string `envconfig:"VERDULERIA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VERDULERIA_DB_HOST"`
	LegacyPort     int    `envconfig:"VERDULERIA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VERDULERIA_DB_USER"`
	LegacyPassword string `envconfig:"VERDULERIA_DB_PASSWORD"`
	LegacyName     string `envconfig:"VERDULERIA_DB_NAME"`
	LegacySSLMode  string `envconfig:"VERDULERIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VERDULERIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VERDULERIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VERDULERIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VERDULERIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VERDULERIA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VERDULERIA_REDIS_ADDR"`
	Password     string        `envconfig:"VERDULERIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"VERDULERIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VERDULERIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VERDULERIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VERDULERIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VERDULERIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VERDULERIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VERDULERIA_AUTO_MIGRATE" default:"false"`
}

// NotificationsConfig holds the two fixed operational recipients that receive
// a copy of every order confirmation, alongside the paying customer.
type NotificationsConfig struct {
	AdminChatID    string `envconfig:"VERDULERIA_ADMIN_CHAT_ID" required:"true"`
	SupplierChatID string `envconfig:"VERDULERIA_SUPPLIER_CHAT_ID" required:"true"`
}

type NotifierConfig struct {
	BatchSize      int    `envconfig:"VERDULERIA_NOTIFIER_BATCH_SIZE" default:"50"`
	PollIntervalMS int    `envconfig:"VERDULERIA_NOTIFIER_POLL_MS" default:"500"`
	MaxAttempts    int    `envconfig:"VERDULERIA_NOTIFIER_MAX_ATTEMPTS" default:"10"`
	MetricsPort    string `envconfig:"VERDULERIA_NOTIFIER_METRICS_PORT" default:"9091"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"VERDULERIA_GCP_PROJECT_ID" required:"true"`
}

type PubSubConfig struct {
	NotificationTopic        string `envconfig:"VERDULERIA_PUBSUB_NOTIFICATION_TOPIC" default:"vd-notification-events"`
	NotificationSubscription string `envconfig:"VERDULERIA_PUBSUB_NOTIFICATION_SUBSCRIPTION"`
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
