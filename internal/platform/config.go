package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/aretw0/jot/pkg/core"
)

// ConfigName is the base name of the configuration file (jot.yaml).
const ConfigName = "jot"

// Config is the file/environment configuration of the CLI.
// Environment variables use the JOT_ prefix, e.g. JOT_ADAPTER or JOT_REDIS_ADDR.
type Config struct {
	Adapter  string       `mapstructure:"adapter"`
	Path     string       `mapstructure:"path"`
	Key      string       `mapstructure:"key"`
	ReadOnly bool         `mapstructure:"read_only"`
	Redis    RedisConfig  `mapstructure:"redis"`
	SQLite   SQLiteConfig `mapstructure:"sqlite"`
}

// RedisConfig configures the redis adapter.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// SQLiteConfig configures the sqlite adapter.
type SQLiteConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LoadConfig reads configuration from file and environment.
// With an empty file, jot.yaml is searched in searchDirs; a missing file is
// not an error. An explicit file must exist.
func LoadConfig(file string, searchDirs ...string) (Config, error) {
	v := viper.New()

	v.SetDefault("adapter", "fs")
	v.SetDefault("path", "")
	v.SetDefault("key", core.DefaultKey)
	v.SetDefault("read_only", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "jot:")
	v.SetDefault("sqlite.dsn", "")

	v.SetEnvPrefix("JOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		for _, dir := range searchDirs {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// URI returns the adapter-specific location for New.
func (c Config) URI() string {
	switch c.Adapter {
	case "redis":
		return c.Redis.Addr
	case "sqlite":
		return c.SQLite.DSN
	default:
		return c.Path
	}
}

// Options converts the configuration into functional options.
func (c Config) Options() []Option {
	opts := []Option{
		WithAdapter(c.Adapter),
		WithKey(c.Key),
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.Adapter == "redis" {
		opts = append(opts,
			WithRedisAuth(c.Redis.Password, c.Redis.DB),
			WithRedisPrefix(c.Redis.Prefix),
		)
	}
	return opts
}
