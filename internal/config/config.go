package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Config carries the settings shared by the CLI and the callback
// relay. Values come from SWEETPAY_* environment variables or an
// optional config file.
type Config struct {
	APIToken string        `mapstructure:"api_token"`
	Stage    bool          `mapstructure:"stage"`
	Timeout  time.Duration `mapstructure:"timeout"`

	// CallbackSecret is the shared token Sweetpay echoes on callbacks.
	CallbackSecret string `mapstructure:"callback_secret"`

	ListenAddr  string `mapstructure:"listen_addr"`
	DatabaseDSN string `mapstructure:"database_dsn"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	Debug bool `mapstructure:"debug"`
}

// Load reads configuration from the environment and, when present,
// from sweetpay.yaml in the working directory.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SWEETPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only surfaces keys viper already knows about, so
	// every key needs a default for Unmarshal to see its env value.
	v.SetDefault("api_token", "")
	v.SetDefault("stage", false)
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("callback_secret", "")
	v.SetDefault("listen_addr", ":8380")
	v.SetDefault("database_dsn", "file:sweetpay-relay.db")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("debug", false)

	v.SetConfigName("sweetpay")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
