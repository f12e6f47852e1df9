package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://localhost:8000"`
	Port           string        `envconfig:"STOREFRONT_PORT" default:":3000"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	SessionDBPath  string        `envconfig:"SESSION_DB_PATH" default:"storefront_session.db"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("Warning: .env file not found, using environment variables or defaults.")
		} else {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Printf("Warning: failed to process environment config, falling back to defaults: %v", err)
	}
	return &cfg
}
