// Package config loads service settings from defaults, an optional .env file, a YAML
// config file and VISA_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	configName = ".visa-engine"
	envPrefix  = "VISA"
)

type Config struct {
	ServerAddr        string
	LogLevel          string
	LogFormat         string
	PolicyFeedURL     string
	PolicyFeedTimeout time.Duration
	PolicyCacheTTL    time.Duration
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	Timezone          string
}

// SetDefaults registers every key so that environment overrides resolve even
// without a config file. PORT is honored as the default listen port.
func SetDefaults(v *viper.Viper) {
	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	v.SetDefault("server.addr", addr)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("policy.feed_url", "")
	v.SetDefault("policy.feed_timeout", 2*time.Second)
	v.SetDefault("policy.cache_ttl", 15*time.Minute)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("ratelimit.capacity", 30)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("engine.timezone", "Local")
}

// Load reads configuration into v. cfgFile overrides the default
// $HOME/.visa-engine.yaml; a missing default file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		ServerAddr:        v.GetString("server.addr"),
		LogLevel:          v.GetString("log.level"),
		LogFormat:         v.GetString("log.format"),
		PolicyFeedURL:     v.GetString("policy.feed_url"),
		PolicyFeedTimeout: v.GetDuration("policy.feed_timeout"),
		PolicyCacheTTL:    v.GetDuration("policy.cache_ttl"),
		RedisAddr:         v.GetString("redis.addr"),
		RedisPassword:     v.GetString("redis.password"),
		RedisDB:           v.GetInt("redis.db"),
		RateLimitCapacity: v.GetInt("ratelimit.capacity"),
		RateLimitWindow:   v.GetDuration("ratelimit.window"),
		Timezone:          v.GetString("engine.timezone"),
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves Timezone; "Local" and "" mean the host's zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("engine.timezone: %w", err)
	}
	return loc, nil
}
