package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Seed     SeedConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Business BusinessConfig
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`
}

// SeedConfig selects where products and accounts come from. A seed file
// wins over a database; with neither, the built-in defaults are used.
type SeedConfig struct {
	File           string `env:"SEED_FILE"`
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type KafkaConfig struct {
	Brokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic         string   `env:"KAFKA_TOPIC_SHOP_EVENTS" envDefault:"shop-events"`
	ConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"storefront-sales"`
}

type ObservabilityConfig struct {
	JaegerEndpoint string `env:"JAEGER_ENDPOINT"`
}

type BusinessConfig struct {
	StrictMergeStock   bool   `env:"BUSINESS_STRICT_MERGE_STOCK" envDefault:"false"`
	StrictPaymentStock bool   `env:"BUSINESS_STRICT_PAYMENT_STOCK" envDefault:"false"`
	PasswordHashCost   int    `env:"PASSWORD_HASH_COST" envDefault:"10"`
	ReportLanguage     string `env:"REPORT_LANGUAGE" envDefault:"en"`
}

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg, nil
}

// KafkaEnabled reports whether event publishing goes to Kafka
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && c.Kafka.Brokers[0] != ""
}

// RedisEnabled reports whether the stock mirror is configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// TracingEnabled reports whether spans are exported
func (c *Config) TracingEnabled() bool {
	return c.Observ.JaegerEndpoint != ""
}
