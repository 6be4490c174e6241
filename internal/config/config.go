package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         int               `yaml:"port"`
		ReadTimeout  time.Duration     `yaml:"readTimeout"`
		WriteTimeout time.Duration     `yaml:"writeTimeout"`
		IdleTimeout  time.Duration     `yaml:"idleTimeout"`
		CORSOrigins  []string          `yaml:"corsOrigins"`
		APIKeys      map[string]string `yaml:"apiKeys"`
		RateLimit    struct {
			Capacity   int `yaml:"capacity"`
			RefillRate int `yaml:"refillRate"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	AI struct {
		// openai | backend | offline
		Provider   string        `yaml:"provider"`
		BaseURL    string        `yaml:"baseURL"`
		APIKey     string        `yaml:"apiKey"`
		Model      string        `yaml:"model"`
		BackendURL string        `yaml:"backendURL"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"ai"`

	Chat struct {
		Timeout  time.Duration `yaml:"timeout"`
		Greeting bool          `yaml:"greeting"`
	} `yaml:"chat"`

	Sessions struct {
		TTL           time.Duration `yaml:"ttl"`
		SweepInterval time.Duration `yaml:"sweepInterval"`
	} `yaml:"sessions"`

	Database struct {
		// sqlite | mysql | postgres | none
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Path     string `yaml:"path"`
		DSN      string `yaml:"dsn"`
	} `yaml:"database"`

	Minio struct {
		Enabled    bool          `yaml:"enabled"`
		Endpoint   string        `yaml:"endpoint"`
		AccessKey  string        `yaml:"accessKey"`
		SecretKey  string        `yaml:"secretKey"`
		BucketName string        `yaml:"bucketName"`
		Region     string        `yaml:"region"`
		UseSSL     bool          `yaml:"useSSL"`
		Presign    time.Duration `yaml:"presign"`
	} `yaml:"minio"`

	Upload struct {
		MaxBytes int64 `yaml:"maxBytes"`
	} `yaml:"upload"`
}

// Load baca file config.yaml. File yang tidak ada dianggap kosong,
// lalu default dan env override dipasang.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 90 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if c.Server.RateLimit.Capacity == 0 {
		c.Server.RateLimit.Capacity = 60
	}
	if c.Server.RateLimit.RefillRate == 0 {
		c.Server.RateLimit.RefillRate = 1
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "offline"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 60 * time.Second
	}
	if c.Chat.Timeout == 0 {
		c.Chat.Timeout = 30 * time.Second
	}
	if c.Sessions.TTL == 0 {
		c.Sessions.TTL = 2 * time.Hour
	}
	if c.Sessions.SweepInterval == 0 {
		c.Sessions.SweepInterval = 5 * time.Minute
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/lexguard.db"
	}
	if c.Minio.BucketName == "" {
		c.Minio.BucketName = "lexguard-documents"
	}
	if c.Upload.MaxBytes == 0 {
		c.Upload.MaxBytes = 20 << 20
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		c.AI.Provider = v
	}
	// GEMINI_API_KEY dipakai oleh backend lama, AI_API_KEY menang kalau dua-duanya ada
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("AI_BACKEND_URL"); v != "" {
		c.AI.BackendURL = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		c.Minio.Endpoint = v
		c.Minio.Enabled = true
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		c.Minio.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		c.Minio.SecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		c.Minio.BucketName = v
	}
}

// Validate checks the combinations the server cannot start with.
func (c *Config) Validate() error {
	c.AI.Provider = strings.ToLower(c.AI.Provider)
	switch c.AI.Provider {
	case "openai":
		if c.AI.APIKey == "" {
			return errors.New("ai.apiKey (or AI_API_KEY) is required for provider openai")
		}
	case "backend":
		if c.AI.BackendURL == "" {
			return errors.New("ai.backendURL is required for provider backend")
		}
	case "offline":
	default:
		return fmt.Errorf("unknown ai.provider %q", c.AI.Provider)
	}

	c.Database.Driver = strings.ToLower(c.Database.Driver)
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres", "none":
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}

	if c.Minio.Enabled && c.Minio.Endpoint == "" {
		return errors.New("minio.endpoint is required when minio is enabled")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	for name, d := range map[string]time.Duration{
		"ai.timeout":             c.AI.Timeout,
		"chat.timeout":           c.Chat.Timeout,
		"sessions.ttl":           c.Sessions.TTL,
		"sessions.sweepInterval": c.Sessions.SweepInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if c.Server.RateLimit.Capacity <= 0 {
		return fmt.Errorf("server.rateLimit.capacity must be positive, got %d", c.Server.RateLimit.Capacity)
	}
	if c.Server.RateLimit.RefillRate <= 0 {
		return fmt.Errorf("server.rateLimit.refillRate must be positive, got %d", c.Server.RateLimit.RefillRate)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.maxBytes must be positive, got %d", c.Upload.MaxBytes)
	}
	return nil
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
