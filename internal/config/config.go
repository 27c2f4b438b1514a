package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lockievisual/studio-portal/internal/models"
)

type Config struct {
	App           AppConfig          `yaml:"app"`
	Server        ServerConfig       `yaml:"server"`
	Backend       BackendConfig      `yaml:"backend"`
	Session       SessionConfig      `yaml:"session"`
	Redis         RedisConfig        `yaml:"redis"`
	Logging       LoggingConfig      `yaml:"logging"`
	Monitoring    MonitoringConfig   `yaml:"monitoring"`
	Telegram      TelegramConfig     `yaml:"telegram"`
	Exports       ExportConfig       `yaml:"exports"`
	RateLimit     RateLimitConfig    `yaml:"rate_limit"`
	Notifications NotificationConfig `yaml:"notifications"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port          int    `yaml:"port"`
	SessionSecret string `yaml:"session_secret"`
	SecureCookies bool   `yaml:"secure_cookies"`
}

// BackendConfig points at the remote booking API the portal proxies to.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type SessionConfig struct {
	TTLHours int `yaml:"ttl_hours"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	FilePath   string `yaml:"file_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

// TelegramConfig configures the optional staff notifier.
type TelegramConfig struct {
	Enabled  bool    `yaml:"enabled"`
	BotToken string  `yaml:"bot_token"`
	ChatIDs  []int64 `yaml:"chat_ids"`
	Debug    bool    `yaml:"debug"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type NotificationConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Expand ${VAR} references before parsing so secrets stay in the env.
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend base_url is required")
	}

	if c.Server.SessionSecret == "" || c.Server.SessionSecret == "CHANGE_ME" {
		return errors.New("server session_secret is required")
	}

	return nil
}

// ValidateServices checks the service catalog for duplicate or zero IDs.
func ValidateServices(services []models.ServiceOffering) error {
	seen := make(map[int64]bool)
	for _, svc := range services {
		if svc.ID == 0 {
			return fmt.Errorf("service '%s' has invalid ID 0", svc.Name)
		}
		if seen[svc.ID] {
			return fmt.Errorf("duplicate service ID found: %d", svc.ID)
		}
		seen[svc.ID] = true
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = models.GatewayTimeout
	}
	if c.Session.TTLHours == 0 {
		c.Session.TTLHours = models.SessionTTLHours
	}
	if c.Notifications.TTLSeconds == 0 {
		c.Notifications.TTLSeconds = models.NotificationTTL
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = float64(models.RateLimitRequests) / float64(models.RateLimitWindow)
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}
