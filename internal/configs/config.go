package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"catalog-service/internal/core/domain"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

const (
	SourceKindHTTP     = "http"
	SourceKindPostgres = "postgres"
)

type DBconfig struct {
	URL      string
	MaxConns int32
}

type RESTconfig struct {
	PORT               string
	AllowedOrigins     []string
	RateLimitPerMinute int
}

// SourceConfig - where the unfiltered property list comes from.
type SourceConfig struct {
	Kind    string
	URL     string
	Timeout time.Duration
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

// PresentationConfig drives how cards are rendered.
type PresentationConfig struct {
	RouteStyle       domain.RouteStyle
	PlaceholderImage string
	DefaultPerPage   int
	Language         language.Tag
	Currency         currency.Unit
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig - the whole service configuration.
type AppConfig struct {
	AppName      string
	Database     DBconfig
	Rest         RESTconfig
	Source       SourceConfig
	RabbitMQ     RabbitMQConfig
	Presentation PresentationConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig reads the configuration from the environment. A missing .env
// file is not an error.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
	}
	if err != nil {
		log.Printf("Info: no .env file loaded (path: %v), using process environment\n", envPath)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "catalog-service")

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Database.MaxConns = int32(getEnvAsInt("DATABASE_MAX_CONNS", 10))

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.Rest.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.Rest.RateLimitPerMinute = getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120)

	cfg.Source.Kind = strings.ToLower(getEnvAsString("SOURCE_KIND", SourceKindHTTP))
	cfg.Source.URL = os.Getenv("SOURCE_URL")
	cfg.Source.Timeout = time.Duration(getEnvAsInt("SOURCE_TIMEOUT_SECONDS", 10)) * time.Second

	switch cfg.Source.Kind {
	case SourceKindHTTP:
		if cfg.Source.URL == "" {
			return nil, fmt.Errorf("SOURCE_URL environment variable is required when SOURCE_KIND=%s", SourceKindHTTP)
		}
	case SourceKindPostgres:
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when SOURCE_KIND=%s", SourceKindPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown SOURCE_KIND %q (expected %s or %s)", cfg.Source.Kind, SourceKindHTTP, SourceKindPostgres)
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", "catalog_exchange")
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			log.Println("WARNING: RABBITMQ_ENABLED is true, but RABBITMQ_URL is not set. Disabling favorite events.")
			cfg.RabbitMQ.Enabled = false
		}
	}

	cfg.Presentation.RouteStyle = domain.ParseRouteStyle(getEnvAsString("ROUTE_STYLE", string(domain.RoutePublic)))
	cfg.Presentation.PlaceholderImage = getEnvAsString("PLACEHOLDER_IMAGE_URL", "/images/property-placeholder.jpg")
	cfg.Presentation.DefaultPerPage = getEnvAsInt("DEFAULT_PER_PAGE", 12)

	cfg.Presentation.Language, err = language.Parse(getEnvAsString("LOCALE", "pt-BR"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCALE: %w", err)
	}
	cfg.Presentation.Currency, err = currency.ParseISO(getEnvAsString("CURRENCY", "BRL"))
	if err != nil {
		return nil, fmt.Errorf("invalid CURRENCY: %w", err)
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsList splits a comma separated value, dropping empty items.
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
