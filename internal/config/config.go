package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Uploads   UploadsConfig   `yaml:"uploads"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        string   `yaml:"port"`
	Mode        string   `yaml:"mode"`         // debug, release, test
	CORSOrigins []string `yaml:"cors_origins"` // empty means allow all
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret            string `yaml:"secret"`
	ExpireHour        int    `yaml:"expire_hour"`
	RefreshExpireHour int    `yaml:"refresh_expire_hour"`
}

type UploadsConfig struct {
	Dir       string `yaml:"dir"`        // filesystem root for uploaded files
	PublicURL string `yaml:"public_url"` // URL prefix the files are served under
}

// RateLimitConfig throttles the credential endpoints (register, login,
// oauth exchange, refresh) per client IP.
type RateLimitConfig struct {
	AuthRPS        float64 `yaml:"auth_rps"`
	AuthBurst      int     `yaml:"auth_burst"`
	IdleTTLMinutes int     `yaml:"idle_ttl_minutes"` // forget an IP after this long without a request
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "squadforge.db",
		},
		JWT: JWTConfig{
			Secret:            "squadforge-secret-key-change-in-production",
			ExpireHour:        24,
			RefreshExpireHour: 24 * 30,
		},
		Uploads: UploadsConfig{
			Dir:       "public/uploads",
			PublicURL: "/uploads",
		},
		RateLimit: RateLimitConfig{
			AuthRPS:        5,
			AuthBurst:      10,
			IdleTTLMinutes: 5,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if hours := os.Getenv("JWT_EXPIRE_HOUR"); hours != "" {
		if h, err := strconv.Atoi(hours); err == nil && h > 0 {
			c.JWT.ExpireHour = h
		}
	}
	if hours := os.Getenv("JWT_REFRESH_EXPIRE_HOUR"); hours != "" {
		if h, err := strconv.Atoi(hours); err == nil && h > 0 {
			c.JWT.RefreshExpireHour = h
		}
	}
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		c.Uploads.Dir = dir
	}
	if url := os.Getenv("UPLOADS_PUBLIC_URL"); url != "" {
		c.Uploads.PublicURL = url
	}
}
