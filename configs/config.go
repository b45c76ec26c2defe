package configs

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"telegram-relay/internal/domain"
	"telegram-relay/pkg/validator"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Bot modes
const (
	ModeWebhook = "webhook"
	ModePolling = "polling"
)

// DefaultWebhookSecret is used when WEBHOOK_SECRET is not provided.
const DefaultWebhookSecret = "change-me-secret"

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Bot      `mapstructure:"bot"`
	Webhook  `mapstructure:"webhook"`
	Queue    `mapstructure:"queue"`
	Journal  `mapstructure:"journal"`
	Postgres `mapstructure:"postgres"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port" validate:"required,numeric"`
	URL   string `mapstructure:"url" validate:"omitempty,url"`
}

// Bot struct
type Bot struct {
	Token       string `mapstructure:"token" validate:"required"`
	Mode        string `mapstructure:"mode" validate:"oneof=webhook polling"`
	APIEndpoint string `mapstructure:"api_endpoint" validate:"required"`
	PollTimeout int    `mapstructure:"poll_timeout" validate:"gte=0,lte=60"`
}

// Webhook struct
type Webhook struct {
	Secret string `mapstructure:"secret" validate:"required,secrettoken"`
}

// Queue struct
type Queue struct {
	Size    int `mapstructure:"size" validate:"gte=1"`
	Workers int `mapstructure:"workers" validate:"gte=1"`
}

// Journal struct
type Journal struct {
	TTL           time.Duration `mapstructure:"ttl" validate:"gt=0"`
	PruneInterval time.Duration `mapstructure:"prune_interval" validate:"gt=0"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

var (
	config    Config
	watchOnce sync.Once
)

// InitViper func
func InitViper(path, env string) error {
	return getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) error {
	// .env is a local development convenience; deployed hosts inject real env vars
	if err := godotenv.Load(); err == nil {
		logrus.Debug("Loaded environment from .env")
	}

	setDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// PaaS hosts announce the listen port as PORT
	if err := viper.BindEnv("app.port", "APP_PORT", "PORT"); err != nil {
		return err
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		logrus.Warnf("No config file in %s, using defaults and environment", path)
	case err != nil:
		return fmt.Errorf("read config: %w", err)
	default:
		watchOnce.Do(func() {
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				logrus.Infoln("Config file has changed: ", e.Name)
			})
		})
	}

	if env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil && !errors.As(err, &notFound) {
			return fmt.Errorf("merge %s config: %w", env, err)
		}
		viper.Set("app.env", env)
	}

	config = Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.url", "")
	viper.SetDefault("bot.token", "")
	viper.SetDefault("bot.mode", ModeWebhook)
	viper.SetDefault("bot.api_endpoint", "https://api.telegram.org/bot%s/%s")
	viper.SetDefault("bot.poll_timeout", 30)
	viper.SetDefault("webhook.secret", "")
	viper.SetDefault("queue.size", 100)
	viper.SetDefault("queue.workers", 1)
	viper.SetDefault("journal.ttl", "24h")
	viper.SetDefault("journal.prune_interval", "10m")
	viper.SetDefault("postgres.host", "")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.username", "")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.database", "")
	viper.SetDefault("postgres.sslmode", false)
}

// Validate checks the loaded configuration and fills in the webhook secret default.
func (c *Config) Validate() error {
	c.Bot.Mode = strings.ToLower(strings.TrimSpace(c.Bot.Mode))
	c.App.URL = strings.TrimRight(strings.TrimSpace(c.App.URL), "/")

	if c.Webhook.Secret == "" {
		logrus.Warnf("WEBHOOK_SECRET is not set, falling back to %q", DefaultWebhookSecret)
		c.Webhook.Secret = DefaultWebhookSecret
	}

	if err := validator.New().ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Bot.Mode == ModeWebhook {
		if c.App.URL == "" {
			return errors.New("invalid config: APP_URL is required in webhook mode")
		}
		if !strings.HasPrefix(c.App.URL, "https://") && !strings.HasPrefix(c.App.URL, "http://") {
			return errors.New("invalid config: APP_URL must start with http:// or https://")
		}
	}
	return nil
}

// WebhookURL returns the callback target registered with Telegram.
func (c *Config) WebhookURL() string {
	return domain.BuildWebhookURL(c.App.URL, c.Webhook.Secret)
}

// UsePostgres reports whether a durable journal is configured.
func (c *Config) UsePostgres() bool {
	return c.Postgres.Host != ""
}

// String masks credentials so the config can be logged.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Env: %s, Mode: %s, Port: %s, URL: %s, Token: %s, Secret: %s, Queue: %d/%d, Journal: %s}",
		c.App.Env, c.Bot.Mode, c.App.Port, c.App.URL,
		domain.Mask(c.Bot.Token), domain.Mask(c.Webhook.Secret),
		c.Queue.Size, c.Queue.Workers, c.journalKind(),
	)
}

func (c *Config) journalKind() string {
	if c.UsePostgres() {
		return "postgres"
	}
	return "memory"
}
