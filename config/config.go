package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Gemini extraction service.
	GeminiAPIKey      string `mapstructure:"GEMINI_API_KEY"`
	ExtractTimeoutSec int    `mapstructure:"EXTRACT_TIMEOUT_SEC"`

	// How many recommendations a completed chat session carries.
	RecommendLimit int `mapstructure:"RECOMMEND_LIMIT"`

	// Session lifecycle.
	SessionTTLMin   int `mapstructure:"SESSION_TTL_MIN"`
	SessionIdleMin  int `mapstructure:"SESSION_IDLE_MIN"`
	SessionSweepMin int `mapstructure:"SESSION_SWEEP_MIN"`

	// Scoring knobs. The decay slopes and ceilings are deliberately
	// configuration, not constants.
	BudgetOverageCeiling float64 `mapstructure:"BUDGET_OVERAGE_CEILING"`
	DeadlineGraceDays    float64 `mapstructure:"DEADLINE_GRACE_DAYS"`
	CapacityComfortRatio float64 `mapstructure:"CAPACITY_COMFORT_RATIO"`
	MaxDiscountRate      float64 `mapstructure:"MAX_DISCOUNT_RATE"`
	ExpertiseSaturation  int     `mapstructure:"EXPERTISE_SATURATION"`
	PointsPerCert        float64 `mapstructure:"POINTS_PER_CERT"`
	DominanceMargin      float64 `mapstructure:"DOMINANCE_MARGIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("EXTRACT_TIMEOUT_SEC", 10)
	viper.SetDefault("RECOMMEND_LIMIT", 3)
	viper.SetDefault("SESSION_TTL_MIN", 1440)
	viper.SetDefault("SESSION_IDLE_MIN", 30)
	viper.SetDefault("SESSION_SWEEP_MIN", 5)
	viper.SetDefault("BUDGET_OVERAGE_CEILING", 0.35)
	viper.SetDefault("DEADLINE_GRACE_DAYS", 2.0)
	viper.SetDefault("CAPACITY_COMFORT_RATIO", 2.0)
	viper.SetDefault("MAX_DISCOUNT_RATE", 0.30)
	viper.SetDefault("EXPERTISE_SATURATION", 500)
	viper.SetDefault("POINTS_PER_CERT", 25.0)
	viper.SetDefault("DOMINANCE_MARGIN", 10.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ExtractTimeout returns the NLU call budget as a duration.
func ExtractTimeout() time.Duration {
	return time.Duration(AppConfig.ExtractTimeoutSec) * time.Second
}

// SessionTTL returns how long a session may live in the store.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMin) * time.Minute
}

// SessionIdleTimeout returns the inactivity window after which a session
// is abandoned by the sweeper.
func SessionIdleTimeout() time.Duration {
	return time.Duration(AppConfig.SessionIdleMin) * time.Minute
}
