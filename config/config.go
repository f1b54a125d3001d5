package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the application.
type Config struct {
	Addr      string
	DBPath    string
	LogLevel  string
	LogPretty bool
	Debug     bool
	PublicURL string
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// missing .env is fine; env vars still apply
		log.Printf("no .env file loaded: %v", err)
	}

	v := viper.New()
	v.SetEnvPrefix("DEALDESK")
	v.AutomaticEnv()

	v.SetDefault("ADDR", ":6835")
	v.SetDefault("DB_PATH", "dealdesk.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("DEBUG", false)
	v.SetDefault("PUBLIC_URL", "http://localhost:6835")

	return &Config{
		Addr:      v.GetString("ADDR"),
		DBPath:    v.GetString("DB_PATH"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogPretty: v.GetBool("LOG_PRETTY"),
		Debug:     v.GetBool("DEBUG"),
		PublicURL: v.GetString("PUBLIC_URL"),
	}
}
