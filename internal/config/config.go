// internal/config/config.go
//
// Application configuration, loaded from environment variables with
// struct-tag defaults. A .env file (if present) is loaded by main before
// this runs, so development overrides work without exporting anything.

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Server Server `env-prefix:""`
	Dict   Dict   `env-prefix:""`
	Auth   Auth   `env-prefix:""`
	Log    Log    `env-prefix:""`
}

// Server holds HTTP server and daily-board settings.
type Server struct {
	Port         string        `env:"PORT"          env-default:"5176"`
	DBPath       string        `env:"DB_PATH"       env-default:"./data/quartiles.db"`
	StepBudget   time.Duration `env:"STEP_BUDGET"   env-default:"25ms"`
	DailySalt    string        `env:"DAILY_SALT"    env-default:"quartiles"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" env-default:"http://localhost:5173"`
}

// Dict holds dictionary source selection settings.
type Dict struct {
	Dir  string `env:"DICT_DIR"  env-default:"./dict"`
	Name string `env:"DICT_NAME" env-default:"english"`
}

// Auth holds JWT settings.
type Auth struct {
	JWTSecret  string `env:"JWT_SECRET"       env-default:"dev_secret_change_me"`
	ExpireDays int    `env:"JWT_EXPIRES_DAYS" env-default:"14"`
	CookieName string `env:"COOKIE_NAME"      env-default:"quartiles_token"`
	Production bool   `env:"PRODUCTION"       env-default:"false"`
}

// Log holds logging settings.
type Log struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the environment. Defaults apply for any
// unset variable, so a bare process starts with a usable config.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}
