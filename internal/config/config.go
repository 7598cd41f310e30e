package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App     AppConfig     `toml:"app"`
	Extend  ExtendConfig  `toml:"extend"`
	Upload  UploadConfig  `toml:"upload"`
	Session SessionConfig `toml:"session"`
	Log     LogConfig     `toml:"log"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type ExtendConfig struct {
	BaseURL        string `toml:"base_url"`
	APIToken       string `toml:"api_token"`
	ProcessorID    string `toml:"processor_id"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type UploadConfig struct {
	MaxSizeMB         int      `toml:"max_size_mb"`
	AllowedExtensions []string `toml:"allowed_extensions"`
}

type SessionConfig struct {
	Secret       string `toml:"secret"`
	ExpireMinute int    `toml:"expire_minute"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "passport-extractor",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Extend: ExtendConfig{
			BaseURL:        "https://api.extend.ai",
			APIToken:       "",
			ProcessorID:    "dp_jT1DNo-oQE5mhdB5YqUcO",
			TimeoutSeconds: 120,
		},
		Upload: UploadConfig{
			MaxSizeMB:         200,
			AllowedExtensions: []string{".pdf", ".png", ".jpg", ".jpeg"},
		},
		Session: SessionConfig{
			Secret:       "change-me-in-production",
			ExpireMinute: 720,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: false,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Extend.BaseURL = getEnv("EXTEND_BASE_URL", cfg.Extend.BaseURL)
	cfg.Extend.APIToken = getEnv("EXTEND_API_TOKEN", cfg.Extend.APIToken)
	cfg.Extend.ProcessorID = getEnv("EXTEND_PROCESSOR_ID", cfg.Extend.ProcessorID)
	cfg.Extend.TimeoutSeconds = getEnvAsInt("EXTEND_TIMEOUT_SECONDS", cfg.Extend.TimeoutSeconds)

	cfg.Upload.MaxSizeMB = getEnvAsInt("UPLOAD_MAX_SIZE_MB", cfg.Upload.MaxSizeMB)
	if raw := getEnv("UPLOAD_ALLOWED_EXTENSIONS", ""); raw != "" {
		if exts := parseExtensionList(raw); len(exts) > 0 {
			cfg.Upload.AllowedExtensions = exts
		}
	}

	cfg.Session.Secret = getEnv("SESSION_SECRET", cfg.Session.Secret)
	cfg.Session.ExpireMinute = getEnvAsInt("SESSION_EXPIRE_MINUTE", cfg.Session.ExpireMinute)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	if raw := getEnv("LOG_PRETTY", ""); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			cfg.Log.Pretty = parsed
		}
	}
}

func parseExtensionList(raw string) []string {
	parts := strings.Split(raw, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		exts = append(exts, p)
	}
	return exts
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
