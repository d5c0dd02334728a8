package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

// Upstreams holds the base URLs of the four remote services this gateway
// orchestrates. Every URL is required: the gateway has no local fallback for
// any of them.
type Upstreams struct {
	CatalogURL  string        `yaml:"CATALOG_URL" env:"CATALOG_URL" env-required:"true"`
	AuthorsURL  string        `yaml:"AUTHORS_URL" env:"AUTHORS_URL" env-required:"true"`
	CartURL     string        `yaml:"CART_URL" env:"CART_URL" env-required:"true"`
	IdentityURL string        `yaml:"IDENTITY_URL" env:"IDENTITY_URL" env-required:"true"`
	Timeout     time.Duration `yaml:"UPSTREAM_TIMEOUT" env:"UPSTREAM_TIMEOUT" env-default:"15s"`
}

type RedisConnect struct {
	URL string `yaml:"REDIS_URL" env:"REDIS_URL" env-required:"true"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type Security struct {
	// HMAC key shared with the identity service, used to verify the tokens
	// it issues.
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:""`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Sistema de Gestión Bibliográfica"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"development"`
	HTTPServer   `yaml:"http_server"`
	Upstreams    Upstreams    `yaml:"upstreams"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {

		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}
