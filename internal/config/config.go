package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries every runtime setting the service reads from the environment.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	TokenTTL      time.Duration

	AMQPURL      string
	AMQPExchange string

	OTLPEndpoint string
	Environment  string

	SSLCzStoreID     string
	SSLCzStorePass   string
	SSLCzSessionURL  string
	SSLCzValidateURL string
	PaymentRedirect  string

	LogJSON bool
}

// Load reads .env when present and builds the Config with defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	return Config{
		Port:          getEnv("PORT", "5000"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "rexAuction"),
		JWTSecret:     getEnv("ACCESS_TOKEN_SECRET", "dev-secret"),
		TokenTTL:      getDurationEnv("TOKEN_TTL", 24*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "auction.events"),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
		Environment:  getEnv("ENVIRONMENT", "development"),

		SSLCzStoreID:     getEnv("SSLCZ_STORE_ID", ""),
		SSLCzStorePass:   getEnv("SSLCZ_STORE_PASS", ""),
		SSLCzSessionURL:  getEnv("SSLCZ_SESSION_URL", "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"),
		SSLCzValidateURL: getEnv("SSLCZ_VALIDATE_URL", "https://sandbox.sslcommerz.com/validator/api/validationserverAPI.php"),
		PaymentRedirect:  getEnv("PAYMENT_REDIRECT_URL", "http://localhost:5173/dashboard/payment"),

		LogJSON: getEnv("LOG_FORMAT", "text") == "json",
	}
}

// SetupLogging configures logrus according to the config.
func (c Config) SetupLogging() {
	if c.LogJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		logrus.SetLevel(level)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		logrus.WithField("key", key).Warn("invalid duration, using default")
	}
	return fallback
}
