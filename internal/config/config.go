package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode         string `mapstructure:"mode"`
	Port         int    `mapstructure:"port"`
	Token        string `mapstructure:"token"`
	AppID        string `mapstructure:"app_id"`
	PrivateRooms int    `mapstructure:"private_rooms"`
	LogLevel     string `mapstructure:"log_level"`
}

var ErrNoToken = errors.New("bot token is not configured")

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("private_rooms", 5)
	v.SetDefault("log_level", "info")

	// Secrets come from the environment so the yaml can be committed.
	v.SetEnvPrefix("TOWNSQUARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("token", "DISCORD_TOKEN")
	_ = v.BindEnv("app_id", "DISCORD_APP_ID")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Token == "" {
		return nil, ErrNoToken
	}
	if cfg.PrivateRooms < 1 {
		cfg.PrivateRooms = 5
	}
	return &cfg, nil
}
