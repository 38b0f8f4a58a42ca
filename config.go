package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront-service/events"
	awspkg "storefront-service/pkg/aws"

	"github.com/joho/godotenv"
)

// DatabaseURLSecret is the Secrets Manager entry that overrides DATABASE_URL.
const DatabaseURLSecret = "storefront/DATABASE_URL"

// Config holds all configuration for the storefront service.
type Config struct {
	Port            string
	Env             string
	DatabaseURL     string
	DatabaseName    string
	DatabaseTimeout time.Duration
	RequestTimeout  time.Duration

	RedisURL string
	CacheTTL time.Duration

	EventsBackend       string
	OrderEventsTopicARN string
	OrderEventsQueueURL string
	KafkaBrokers        []string
	KafkaTopic          string

	UseSecrets          bool
	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string

	RateLimitPerMinute int
}

// LoadConfig reads configuration from the environment (and .env when
// present), with an optional Secrets Manager override of DATABASE_URL.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8000"),
		Env:                 getEnv("APP_ENV", "development"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		DatabaseName:        getEnv("DATABASE_NAME", "ecommerce"),
		RedisURL:            os.Getenv("REDIS_URL"),
		EventsBackend:       strings.ToLower(getEnv("EVENTS_BACKEND", events.BackendNone)),
		OrderEventsTopicARN: os.Getenv("ORDER_EVENTS_TOPIC_ARN"),
		OrderEventsQueueURL: os.Getenv("ORDER_EVENTS_QUEUE_URL"),
		KafkaBrokers:        splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "storefront-events"),
		UseSecrets:          os.Getenv("AWS_USE_SECRETS") == "true",
		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", awspkg.DefaultNamespace),
		CloudWatchLogGroup:  getEnv("CLOUDWATCH_LOG_GROUP", awspkg.DefaultLogGroup),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}

	var err error
	if cfg.DatabaseTimeout, err = getDuration("DATABASE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "0")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	if err := cfg.validateEvents(); err != nil {
		return nil, err
	}

	// Override the connection string from Secrets Manager when running on AWS
	if cfg.UseSecrets {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		awsCfg, err := awspkg.LoadAWSConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("AWS_USE_SECRETS is set: %w", err)
		}
		if err := cfg.applySecrets(ctx, awspkg.NewSecretsClient(awsCfg)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) applySecrets(ctx context.Context, sm awspkg.SecretGetter) error {
	if _, err := awspkg.OverrideFromSecret(ctx, sm, DatabaseURLSecret, &c.DatabaseURL); err != nil {
		return fmt.Errorf("failed to read secret %s: %w", DatabaseURLSecret, err)
	}
	return nil
}

// NeedsAWS reports whether any component needs an AWS config.
func (c *Config) NeedsAWS() bool {
	return c.CloudWatchEnabled || c.EventsBackend == events.BackendSNS || c.EventsBackend == events.BackendSQS
}

func (c *Config) validateEvents() error {
	switch c.EventsBackend {
	case events.BackendNone:
	case events.BackendSNS:
		if c.OrderEventsTopicARN == "" {
			return fmt.Errorf("EVENTS_BACKEND=sns requires ORDER_EVENTS_TOPIC_ARN")
		}
	case events.BackendSQS:
		if c.OrderEventsQueueURL == "" {
			return fmt.Errorf("EVENTS_BACKEND=sqs requires ORDER_EVENTS_QUEUE_URL")
		}
	case events.BackendKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("EVENTS_BACKEND=kafka requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
