package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API        *APIConfig        `mapstructure:"api"`
	Gin        *GinConfig        `mapstructure:"gin"`
	Postgres   *PostgresConfig   `mapstructure:"postgres"`
	Log        *LogConfig        `mapstructure:"log"`
	NATS       *NATSConfig       `mapstructure:"nats"`
	Pagination *PaginationConfig `mapstructure:"pagination"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	CookieSecure       bool          `mapstructure:"cookie_secure"`

	mu sync.RWMutex
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type NATSConfig struct {
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

type PaginationConfig struct {
	MaxLimit int `mapstructure:"max_limit"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

// Token returns the signing key and token lifetime. Only the lifetime follows
// config reloads; the key is fixed for the life of the process.
func (c *APIConfig) Token() ([]byte, time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return []byte(c.JWTSigningKey), c.TokenTTL
}

func (c *APIConfig) CORSDomains() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.AllowedCORSDomains...)
}

func (c *APIConfig) SecureCookie() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.CookieSecure
}

func (c *APIConfig) apply(other *APIConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.TokenTTL = other.TokenTTL
	c.AllowedCORSDomains = other.AllowedCORSDomains
	c.CookieSecure = other.CookieSecure
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "3000")
	v.SetDefault("api.base_url", "localhost:3000")
	v.SetDefault("api.token_ttl", 24*time.Hour)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("nats.subject_prefix", "stadium")
	v.SetDefault("pagination.max_limit", 100)
}

// Load reads the yaml file at path, lets environment variables override it
// (api.port -> API_PORT) and starts watching the file for changes.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}

	if conf.API.JWTSigningKey == "" {
		return nil, fmt.Errorf("api.jwt_signing_key is required")
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) {
			return
		}

		reloaded, err := decode(v)
		if err != nil {
			zap.L().Warn("config reload failed", zap.String("file", e.Name), zap.Error(err))
			return
		}

		conf.API.apply(reloaded.API)
		zap.L().Info("config reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return conf, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if conf.API == nil || conf.Gin == nil || conf.Postgres == nil {
		return nil, fmt.Errorf("config is missing api, gin or postgres section")
	}
	if conf.Log == nil {
		conf.Log = &LogConfig{}
	}
	if conf.NATS == nil {
		conf.NATS = &NATSConfig{SubjectPrefix: "stadium"}
	}
	if conf.Pagination == nil {
		conf.Pagination = &PaginationConfig{MaxLimit: 100}
	}

	return conf, nil
}
