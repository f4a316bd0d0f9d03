// Package config provides the structures and loading function for the
// service configuration.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration of the service.
type Config struct {
	Env                     string        `yaml:"env" env:"ENV" env-default:"local"`
	SiteURL                 string        `yaml:"site_url" env:"SITE_URL" env-default:"http://localhost:5173"`
	AuthProvider            string        `yaml:"auth_provider" env:"AUTH_PROVIDER" env-default:"hosted"` // hosted | mock
	SnapshotTimeout         time.Duration `yaml:"snapshot_timeout" env-default:"3s"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string        `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Payment                 `yaml:"payment"`
	Email                   `yaml:"email"`
	RabbitMQ                `yaml:"rabbitmq"`
	Scheduler               `yaml:"scheduler"`
}

// HTTPServer holds server timeouts and the listen address.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection holds the session-store connection settings.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	SessionTTL   time.Duration `yaml:"session_ttl" env-default:"720h"`
}

// JWTToken holds signing settings for credential tokens.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Payment holds the hosted checkout-session endpoint settings.
type Payment struct {
	CheckoutURL    string        `yaml:"checkout_url" env:"CHECKOUT_URL"`
	WebhookSecret  string        `yaml:"webhook_secret" env:"PAYMENT_WEBHOOK_SECRET"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"10s"`
}

// Email holds the transactional mail settings.
type Email struct {
	ResendAPIKey string `yaml:"resend_api_key" env:"RESEND_API_KEY"`
	From         string `yaml:"from" env-default:"ChildHope <no-reply@childhope.org>"`
}

// RabbitMQ holds the notification broker settings. An empty URL
// disables publishing.
type RabbitMQ struct {
	URL string `yaml:"url" env:"RABBITMQ_URL"`
}

// Scheduler holds the cron spec for the subscription expiry task.
type Scheduler struct {
	ExpirySpec string `yaml:"expiry_spec" env-default:"@hourly"`
}

// MustLoad reads the config file pointed to by CONFIG_PATH and exits
// the process if that fails. A .env file next to the binary is loaded
// first when present.
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
