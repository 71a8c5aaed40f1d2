package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type SecurityConfig interface {
	GetSessionTTL() time.Duration
	GetMinPasswordLength() int
	GetMaxBodyBytes() int64
	GetSystemAdminUser() string
	GetSystemAdminPassword() string
	GetLoginAttemptsPerMinute() int
	GetLoginBurst() int
}

type StorageConfig interface {
	GetDataFolder() string
	GetDatabasePath() string
}

type mainConfig struct {
	EnvVars
	Cors
	Security
	Storage
}

// New reads the configuration from the process environment.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("[config New] parse env: %w", err)
	}
	if err := c.Security.validate(); err != nil {
		return nil, fmt.Errorf("[config New] %w", err)
	}
	return c, nil
}
