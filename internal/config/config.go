package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"

	CacheRedis  = "redis"
	CacheMemory = "memory"
)

type Config struct {
	Debug     bool          `yaml:"debug" env:"DEBUG"`
	Limiter   Limiter       `yaml:"limiter"`
	AppSecret string        `yaml:"app_secret" env:"APP_SECRET" env-required:"true"`
	Server    Server        `yaml:"server"`
	DB        DB            `yaml:"db"`
	Cache     Cache         `yaml:"cache"`
	Listing   Listing       `yaml:"listing"`
	Session   Session       `yaml:"session"`
	Images    Images        `yaml:"images"`
	Tasks     Tasks         `yaml:"tasks"`
	Clients   ClientsConfig `yaml:"clients"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Client struct {
	Addr         string        `yaml:"addr" env:"SSO_ADDR" env-required:"true"`
	RetryTimeout time.Duration `yaml:"retry_timeout" env-default:"1s"`
	RetriesCount int           `yaml:"retries_count" env-default:"1"`
}

type ClientsConfig struct {
	SSO Client `yaml:"sso"`
}

type Server struct {
	Port string `yaml:"port" env-default:"8000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"2s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DB struct {
	Driver          string        `yaml:"driver" env-default:"postgres"`
	Dsn             string        `yaml:"dsn" env:"DB_DSN" env-required:"true"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type Cache struct {
	Backend        string        `yaml:"backend" env-default:"memory"`
	Addr           string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password       string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB             int           `yaml:"db" env-default:"0"`
	DefaultTimeout time.Duration `yaml:"default_timeout" env-default:"5m"`
	KeyPrefix      string        `yaml:"key_prefix" env-default:"mymdb:page:"`
}

type Listing struct {
	PageSize int `yaml:"page_size" env-default:"10"`
	// CacheTimeout overrides Cache.DefaultTimeout for the movie listing.
	CacheTimeout time.Duration `yaml:"cache_timeout"`
}

type Session struct {
	CookieName string `yaml:"cookie_name" env-default:"sessionid"`
}

type Images struct {
	Endpoint      string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey     string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket        string `yaml:"bucket" env-default:"movie-images"`
	UseSSL        bool   `yaml:"use_ssl"`
	PublicURL     string `yaml:"public_url"`
	MaxUploadSize int64  `yaml:"max_upload_size" env-default:"10485760"`
}

type Tasks struct {
	Workers   int `yaml:"workers" env-default:"4"`
	QueueSize int `yaml:"queue_size" env-default:"100"`
}

func Load(configPath string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	switch cfg.DB.Driver {
	case DriverPostgres, DriverSqlite:
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
	}
	switch cfg.Cache.Backend {
	case CacheRedis, CacheMemory:
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
	// a zero expiry means "never" to both stores
	if cfg.Cache.DefaultTimeout <= 0 {
		return nil, fmt.Errorf("cache default_timeout must be positive, got %s", cfg.Cache.DefaultTimeout)
	}
	if cfg.Listing.CacheTimeout < 0 {
		return nil, fmt.Errorf("listing cache_timeout must not be negative, got %s", cfg.Listing.CacheTimeout)
	}
	return &cfg, nil
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}
