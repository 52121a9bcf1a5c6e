package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Commerce CommerceConfig `json:"commerce"`
	Cart     CartConfig     `json:"cart"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname"`
	SSLMode        string `json:"sslmode"`
	MigrationsPath string `json:"migrations_path"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// CommerceConfig points at the remote commerce/identity backend. The form
// and payment-account identifiers are fixed per storefront installation.
type CommerceConfig struct {
	BaseURL        string `json:"base_url"`
	APIToken       string `json:"api_token"`
	Language       string `json:"language"`
	FormIdentifier string `json:"form_identifier"`
	PaymentAccount string `json:"payment_account"`
	SessionKind    string `json:"session_kind"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type CartConfig struct {
	TTLHours             int `json:"ttl_hours"`
	CheckoutLockSeconds  int `json:"checkout_lock_seconds"`
	CatalogCacheSeconds  int `json:"catalog_cache_seconds"`
	AttemptRetentionDays int `json:"attempt_retention_days"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Commerce.Language == "" {
		c.Commerce.Language = "en_US"
	}
	if c.Commerce.SessionKind == "" {
		c.Commerce.SessionKind = "session"
	}
	if c.Commerce.TimeoutSeconds == 0 {
		c.Commerce.TimeoutSeconds = 10
	}
	if c.Cart.TTLHours == 0 {
		c.Cart.TTLHours = 24 * 7
	}
	if c.Cart.CheckoutLockSeconds == 0 {
		c.Cart.CheckoutLockSeconds = 30
	}
	if c.Cart.CatalogCacheSeconds == 0 {
		c.Cart.CatalogCacheSeconds = 300
	}
	if c.Cart.AttemptRetentionDays == 0 {
		c.Cart.AttemptRetentionDays = 90
	}
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func (c *CommerceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *CartConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

func (c *CartConfig) CheckoutLockTTL() time.Duration {
	return time.Duration(c.CheckoutLockSeconds) * time.Second
}

func (c *CartConfig) CatalogCacheTTL() time.Duration {
	return time.Duration(c.CatalogCacheSeconds) * time.Second
}

func (c *CartConfig) AttemptRetention() time.Duration {
	return time.Duration(c.AttemptRetentionDays) * 24 * time.Hour
}
