package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Bitbucket BitbucketConfig `mapstructure:"bitbucket"`
	Sync      SyncConfig      `mapstructure:"sync"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// Validate ensures required fields are present before any sync attempt.
func (c Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	if c.Bitbucket.Username == "" || c.Bitbucket.AppPassword == "" {
		return errors.New("bitbucket credentials are required")
	}
	if c.Bitbucket.Workspace == "" {
		return errors.New("bitbucket.workspace is required")
	}
	if c.Bitbucket.BaseURL == "" {
		return errors.New("bitbucket.base_url is required")
	}
	return nil
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// BitbucketConfig describes the remote API and its credentials.
type BitbucketConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Workspace   string `mapstructure:"workspace"`
	Username    string `mapstructure:"username"`
	AppPassword string `mapstructure:"app_password"`
}

// SyncConfig controls snapshot synchronization.
type SyncConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}
