package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort        string
	MetricsPort        string
	Environment        string
	ProductServiceHost string
	MediaServiceHost   string
	UserServiceHost    string
	JWTSecret          string
	SessionConfig      SessionConfig
	TracingConfig      TracingConfig
}

type SessionConfig struct {
	IdleTTLMinutes int
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort:        os.Getenv("SERVICE_PORT"),
		MetricsPort:        os.Getenv("METRICS_PORT"),
		Environment:        os.Getenv("ENVIRONMENT"),
		ProductServiceHost: os.Getenv("PRODUCT_SERVICE_HOST"),
		MediaServiceHost:   os.Getenv("MEDIA_SERVICE_HOST"),
		UserServiceHost:    os.Getenv("USER_SERVICE_HOST"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		SessionConfig: SessionConfig{
			IdleTTLMinutes: getEnvInt("SESSION_IDLE_TTL_MINUTES", 30),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	return &conf
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}
