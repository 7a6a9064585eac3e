package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var validate = validator.New()

type Config struct {
	// Port is the port number to listen on. The default is 5000.
	Port int `mapstructure:"port" validate:"required,gt=0,lte=65535"`
	// Hostname is the hostname to listen on. The default is 0.0.0.0.
	Hostname string `mapstructure:"hostname" validate:"required"`
	SQLite   struct {
		// File is the path to the SQLite database file.
		File string `mapstructure:"file" validate:"required"`
		// Migrations is the directory holding the goose migration files.
		Migrations string `mapstructure:"migrations" validate:"required"`
	} `mapstructure:"sqlite"`
	Sweep struct {
		// Interval is how often the presence sweeper runs.
		Interval time.Duration `mapstructure:"interval" validate:"required,gt=0"`
		// IdleAfter is how long a participant may go without a heartbeat
		// before being evicted. Configured independently from Interval.
		IdleAfter time.Duration `mapstructure:"idle_after" validate:"required,gt=0"`
	} `mapstructure:"sweep"`
	// AllowedOrigins is the list of origins allowed by CORS. The default
	// is ["*"].
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoadConfig reads config.yaml from the working directory (if present) with
// environment variables layered on top; a .env file is loaded first so local
// development can keep everything in one place.
func LoadConfig() (*Config, error) {
	// missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 5000)
	v.SetDefault("hostname", "0.0.0.0")
	v.SetDefault("sqlite.file", "./chat.db")
	v.SetDefault("sqlite.migrations", "./migrations")
	v.SetDefault("sweep.interval", 15*time.Second)
	v.SetDefault("sweep.idle_after", 10*time.Second)
	v.SetDefault("allowed_origins", []string{"*"})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","))),
	); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}
