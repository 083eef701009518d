// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Chakis0/multibot-service/internal/domain/model"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port          int    `yaml:"port"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type RedisConfig struct {
	URL      string        `yaml:"url"` // empty -> in-memory prompt state
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type NicepayConfig struct {
	BaseURL        string        `yaml:"base_url"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	MaxAttempts    int           `yaml:"max_attempts"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
}

type PaymentConfig struct {
	Nicepay NicepayConfig `yaml:"nicepay"`
}

type AccessConfig struct {
	// BaseWhitelist members have access on every tenant and may manage the
	// per-tenant dynamic whitelists.
	BaseWhitelist []int64 `yaml:"base_whitelist"`
	WhitelistDir  string  `yaml:"whitelist_dir"`
}

type AdminConfig struct {
	Token      string        `yaml:"token"` // shared secret exchanged for a JWT
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type TenantConfig struct {
	Key           string `yaml:"key"`
	BotToken      string `yaml:"bot_token"`
	WebhookSecret string `yaml:"webhook_secret"`
	MerchantID    string `yaml:"merchant_id"`
	Secret        string `yaml:"secret"`
}

type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Log     LogConfig      `yaml:"log"`
	Redis   RedisConfig    `yaml:"redis"`
	Payment PaymentConfig  `yaml:"payment"`
	Access  AccessConfig   `yaml:"access"`
	Admin   AdminConfig    `yaml:"admin"`
	Tenants []TenantConfig `yaml:"tenants"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads and validates the YAML config. Tenant credential problems
// are returned as errors and are fatal in main: a gateway with a half
// configured tenant must not come up.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 15 * time.Minute
	}
	if cfg.Payment.Nicepay.BaseURL == "" {
		cfg.Payment.Nicepay.BaseURL = "https://nicepay.io"
	}
	if cfg.Payment.Nicepay.ConnectTimeout <= 0 {
		cfg.Payment.Nicepay.ConnectTimeout = 10 * time.Second
	}
	if cfg.Payment.Nicepay.ReadTimeout <= 0 {
		cfg.Payment.Nicepay.ReadTimeout = 60 * time.Second
	}
	if cfg.Payment.Nicepay.MaxAttempts <= 0 {
		cfg.Payment.Nicepay.MaxAttempts = 5
	}
	if cfg.Payment.Nicepay.RetryBaseDelay <= 0 {
		cfg.Payment.Nicepay.RetryBaseDelay = 800 * time.Millisecond
	}
	if cfg.Access.WhitelistDir == "" {
		cfg.Access.WhitelistDir = "whitelists"
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}

	if len(cfg.Tenants) == 0 {
		return nil, errors.New("tenants list is empty: configure at least one bot")
	}
	seen := make(map[string]struct{}, len(cfg.Tenants))
	for _, tc := range cfg.Tenants {
		t := tc.Tenant()
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("tenants: %w", err)
		}
		if _, dup := seen[t.Key]; dup {
			return nil, fmt.Errorf("tenants: duplicate key %q", t.Key)
		}
		seen[t.Key] = struct{}{}
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// Tenant converts the YAML shape into the domain model.
func (tc TenantConfig) Tenant() *model.Tenant {
	return &model.Tenant{
		Key:             tc.Key,
		BotToken:        tc.BotToken,
		WebhookSecret:   tc.WebhookSecret,
		MerchantID:      tc.MerchantID,
		ProcessorSecret: tc.Secret,
	}
}
