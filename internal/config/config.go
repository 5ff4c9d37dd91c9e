// Package config loads runtime configuration from the environment.
//
// Every knob has a sensible default except JWT_SECRET, which must be set
// explicitly — a defaulted signing secret would make every deployment's
// tokens forgeable. Viper also picks up an optional config.yaml from the
// working directory for local development.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup. It is read once in
// main and passed down by value; nothing mutates it afterwards.
type Config struct {
	Port   int
	DBPath string

	// Session tokens
	JWTSecret string
	TokenTTL  time.Duration

	// Password hashing work factor.
	BcryptCost int
}

// Load reads configuration from env vars (and an optional config file) and
// validates the parts that have no safe default.
func Load() (Config, error) {
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DB_PATH", "data/twitter.db")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("BCRYPT_COST", 10)

	viper.AutomaticEnv()

	// Optional config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // ignore error if no file

	cfg := Config{
		Port:       viper.GetInt("PORT"),
		DBPath:     viper.GetString("DB_PATH"),
		JWTSecret:  viper.GetString("JWT_SECRET"),
		TokenTTL:   viper.GetDuration("TOKEN_TTL"),
		BcryptCost: viper.GetInt("BCRYPT_COST"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("config: JWT_SECRET must be set")
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("config: TOKEN_TTL must be a positive duration")
	}

	return cfg, nil
}
