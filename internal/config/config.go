package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	QueueDriverAsynq = "asynq"
	QueueDriverLocal = "local"
)

type Config struct {
	Env         string `env:"ENV" env-required:"true"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	Log         Log
	HttpServer  HttpServer
	Limiter     Limiter
	Database    Database
	Cache       Cache
	RegionCache RegionCache
	Queue       Queue
	Geo         Geo
	Auth        AuthConfig
	Backfill    Backfill
}

type Log struct {
	File       string `env:"LOG_FILE" env-default:"" env-description:"optional path of a rotated json log file"`
	MaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" env-default:"100"`
	MaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" env-default:"5"`
	MaxAgeDays int    `env:"LOG_FILE_MAX_AGE_DAYS" env-default:"14"`
	Compress   bool   `env:"LOG_FILE_COMPRESS" env-default:"true"`
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	MetricsEnabled bool          `env:"HTTP_METRICS_ENABLED" env-default:"true"`
	CORSOrigins    []string      `env:"HTTP_CORS_ORIGINS" env-default:"*" env-description:"comma separated allowed origins, * allows any"`
}

// Limiter throttles api requests per client ip.
type Limiter struct {
	RPS   float64       `env:"LIMITER_RPS" env-default:"20"`
	Burst int           `env:"LIMITER_BURST" env-default:"40"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m" env-description:"how long an idle client keeps its bucket"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
	ConnMaxLifetime    time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
	MigrateOnStart     bool          `env:"DB_MIGRATE_ON_START" env-default:"true"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-default:"redis" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"localhost:6379" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

// RegionCache sizes the id -> region lookup cache.
type RegionCache struct {
	Size int           `env:"REGION_CACHE_SIZE" env-default:"1000"`
	TTL  time.Duration `env:"REGION_CACHE_TTL" env-default:"180s"`
}

type Queue struct {
	Driver      string        `env:"QUEUE_DRIVER" env-default:"asynq" env-description:"asynq or local"`
	Concurrency int           `env:"QUEUE_CONCURRENCY" env-default:"10"`
	BufferSize  int           `env:"QUEUE_BUFFER_SIZE" env-default:"1024" env-description:"local driver only"`
	TaskTimeout time.Duration `env:"QUEUE_TASK_TIMEOUT" env-default:"30s"`
	MaxRetry    int           `env:"QUEUE_MAX_RETRY" env-default:"3"`
}

type Geo struct {
	DefaultNearDistance float64 `env:"GEO_DEFAULT_NEAR_DISTANCE_METERS" env-default:"50000"`
	MaxNearDistance     float64 `env:"GEO_MAX_NEAR_DISTANCE_METERS" env-default:"100000"`
	MaxGeoPageSize      int     `env:"GEO_MAX_PAGE_SIZE" env-default:"250"`
	TreeMaxDepth        int     `env:"GEO_TREE_MAX_DEPTH" env-default:"100"`
}

type AuthConfig struct {
	Enabled bool `env:"AUTH_ENABLED" env-default:"false" env-description:"require a bearer token on admin routes"`
	JWT     JWTConfig
}

type JWTConfig struct {
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"1h"`
	SigningKey     string        `env:"JWT_SIGNING_KEY" env-default:""`
}

type Backfill struct {
	Tasks     []string `env:"BACKFILL_TASKS" env-default:"bounds,assignments,counts"`
	RPS       float64  `env:"BACKFILL_RPS" env-default:"50"`
	Burst     int      `env:"BACKFILL_BURST" env-default:"10"`
	BatchSize int      `env:"BACKFILL_BATCH_SIZE" env-default:"200"`
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then the environment.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.Queue.Driver {
	case QueueDriverAsynq, QueueDriverLocal:
	default:
		return fmt.Errorf("unknown queue driver %q", c.Queue.Driver)
	}
	if c.Queue.Concurrency < 1 {
		return errors.New("queue concurrency must be positive")
	}
	if c.Auth.Enabled && c.Auth.JWT.SigningKey == "" {
		return errors.New("JWT_SIGNING_KEY is required when AUTH_ENABLED is set")
	}
	if c.Geo.DefaultNearDistance > c.Geo.MaxNearDistance {
		return errors.New("default near distance exceeds max near distance")
	}
	return nil
}
