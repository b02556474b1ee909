package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultListen       = "0.0.0.0:4700"
	DefaultIdleInterval = time.Hour
)

type Config struct {
	Log Logger `mapstructure:"logger"`
	API API    `mapstructure:"api"`
}

type Logger struct {
	Level    string `mapstructure:"level" validate:"oneof=debug info warn error dpanic panic fatal"`
	Encoding string `mapstructure:"encoding" validate:"oneof=json console"`
}

type API struct {
	Listen          string        `mapstructure:"listen" validate:"required"`
	ExitOnShutdown  bool          `mapstructure:"exit_on_shutdown"`
	IdleInterval    time.Duration `mapstructure:"idle_interval" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	RateLimit       RateLimit     `mapstructure:"rate_limit"`
}

type RateLimit struct {
	Enabled   bool          `mapstructure:"enabled"`
	Rate      float64       `mapstructure:"rate" validate:"required_if=Enabled true,gte=0"`
	Burst     int           `mapstructure:"burst" validate:"gte=0"`
	ExpiresIn time.Duration `mapstructure:"expires_in" validate:"gte=0"`
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"listen":           "api.listen",
	"exit-on-shutdown": "api.exit_on_shutdown",
	"log-level":        "logger.level",
	"log-encoding":     "logger.encoding",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("api.listen", DefaultListen)
	v.SetDefault("api.exit_on_shutdown", false)
	v.SetDefault("api.idle_interval", DefaultIdleInterval)
	v.SetDefault("api.shutdown_timeout", 10*time.Second)
	v.SetDefault("api.rate_limit.enabled", false)
	v.SetDefault("api.rate_limit.rate", 10)
	v.SetDefault("api.rate_limit.burst", 30)
	v.SetDefault("api.rate_limit.expires_in", 3*time.Minute)
}

// Load resolves the configuration from defaults, an optional config.yaml and .env in the
// working directory, FKS_ prefixed environment variables and finally the given flags.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("FKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := goValidator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
