package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Log          LogConfig
	HTTP         HTTPConfig
	WhatsApp     WhatsAppConfig
	Messenger    MessengerConfig
	Webhook      WebhookConfig
	Conversation ConversationConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings. Redis is optional; an
// empty host falls back to the in-memory idempotency store.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
	TrustedProxies []string
}

// WhatsAppConfig holds WhatsApp Cloud API settings
type WhatsAppConfig struct {
	Enabled       bool
	APIBaseURL    string `validate:"omitempty,url"`
	PhoneNumberID string
	AccessToken   string
	Timeout       time.Duration
}

// MessengerConfig holds Facebook Messenger Send API settings
type MessengerConfig struct {
	Enabled         bool
	APIBaseURL      string `validate:"omitempty,url"`
	PageAccessToken string
	Timeout         time.Duration
}

// WebhookConfig holds inbound webhook settings shared by all channels
type WebhookConfig struct {
	VerifyToken string // token echoed back during platform subscription handshake
}

// ConversationConfig holds message handling policy
type ConversationConfig struct {
	MessageTimeout   time.Duration
	IdempotencyTTL   time.Duration
	ProductListLimit int
	ApologizeOnError bool
	DefaultOwnerID   string `validate:"omitempty,uuid"` // user new contacts are assigned to
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with OMNICRM_ prefix (e.g., OMNICRM_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("OMNICRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		WhatsApp: WhatsAppConfig{
			Enabled:       v.GetBool("whatsapp.enabled"),
			APIBaseURL:    v.GetString("whatsapp.api_base_url"),
			PhoneNumberID: v.GetString("whatsapp.phone_number_id"),
			AccessToken:   v.GetString("whatsapp.access_token"),
			Timeout:       v.GetDuration("whatsapp.timeout"),
		},
		Messenger: MessengerConfig{
			Enabled:         v.GetBool("messenger.enabled"),
			APIBaseURL:      v.GetString("messenger.api_base_url"),
			PageAccessToken: v.GetString("messenger.page_access_token"),
			Timeout:         v.GetDuration("messenger.timeout"),
		},
		Webhook: WebhookConfig{
			VerifyToken: v.GetString("webhook.verify_token"),
		},
		Conversation: ConversationConfig{
			MessageTimeout:   v.GetDuration("conversation.message_timeout"),
			IdempotencyTTL:   v.GetDuration("conversation.idempotency_ttl"),
			ProductListLimit: v.GetInt("conversation.product_list_limit"),
			ApologizeOnError: v.GetBool("conversation.apologize_on_error"),
			DefaultOwnerID:   v.GetString("conversation.default_owner_id"),
		},
	}

	// Viper's GetBool default is false; apology on failure is the
	// documented default, so it only honors an explicit override.
	if !v.IsSet("conversation.apologize_on_error") {
		cfg.Conversation.ApologizeOnError = true
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "omnicrm-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "omnicrm"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // webhook payloads are small
	}
	if cfg.WhatsApp.APIBaseURL == "" {
		cfg.WhatsApp.APIBaseURL = "https://graph.facebook.com/v19.0"
	}
	if cfg.WhatsApp.Timeout == 0 {
		cfg.WhatsApp.Timeout = 10 * time.Second
	}
	if cfg.Messenger.APIBaseURL == "" {
		cfg.Messenger.APIBaseURL = "https://graph.facebook.com/v19.0"
	}
	if cfg.Messenger.Timeout == 0 {
		cfg.Messenger.Timeout = 10 * time.Second
	}
	if cfg.Conversation.MessageTimeout == 0 {
		cfg.Conversation.MessageTimeout = 30 * time.Second
	}
	if cfg.Conversation.IdempotencyTTL == 0 {
		cfg.Conversation.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.Conversation.ProductListLimit == 0 {
		cfg.Conversation.ProductListLimit = 5
	}
}

// validate performs validation on the configuration
// structValidator checks field formats declared via struct tags
var structValidator = validator.New()

func (c *Config) validate() error {
	if err := structValidator.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	// Validate connection pool settings
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.WhatsApp.Enabled {
		if c.WhatsApp.AccessToken == "" {
			return fmt.Errorf("whatsapp.access_token is required when whatsapp is enabled")
		}
		if c.WhatsApp.PhoneNumberID == "" {
			return fmt.Errorf("whatsapp.phone_number_id is required when whatsapp is enabled")
		}
	}
	if c.Messenger.Enabled && c.Messenger.PageAccessToken == "" {
		return fmt.Errorf("messenger.page_access_token is required when messenger is enabled")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Webhook.VerifyToken == "" {
			return fmt.Errorf("webhook.verify_token is required in production")
		}
		if !c.WhatsApp.Enabled && !c.Messenger.Enabled {
			return fmt.Errorf("at least one channel must be enabled in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the redis host:port pair
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
