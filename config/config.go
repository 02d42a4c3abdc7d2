package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrMissingJWTSecret    = errors.New("JWT_SECRET is required")
	ErrMissingGeminiAPIKey = errors.New("GEMINI_API_KEY is required")
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	LLM       LLMConfig
	Diagnosis DiagnosisConfig
}

type AppConfig struct {
	Port      string
	Env       string
	LogLevel  string
	ClientURL string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// LLMConfig configures the generative model gateway.
type LLMConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

type DiagnosisConfig struct {
	// DailyLimit caps assessments per user per day. Zero disables the cap.
	DailyLimit int
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port:      v.GetString("APP_PORT"),
			Env:       v.GetString("APP_ENV"),
			LogLevel:  v.GetString("LOG_LEVEL"),
			ClientURL: v.GetString("CLIENT_URL"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  parseDuration(v.GetString("JWT_ACCESS_EXPIRY"), 15*time.Minute),
			RefreshExpiry: parseDuration(v.GetString("JWT_REFRESH_EXPIRY"), 7*24*time.Hour),
		},
		LLM: LLMConfig{
			APIKey:  v.GetString("GEMINI_API_KEY"),
			Model:   v.GetString("GEMINI_MODEL"),
			Timeout: parseDuration(v.GetString("LLM_TIMEOUT"), 60*time.Second),
			RPS:     v.GetFloat64("LLM_RPS"),
			Burst:   v.GetInt("LLM_BURST"),
		},
		Diagnosis: DiagnosisConfig{
			DailyLimit: v.GetInt("DIAGNOSIS_DAILY_LIMIT"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}
	if config.LLM.APIKey == "" {
		return nil, ErrMissingGeminiAPIKey
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CLIENT_URL", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("LLM_BURST", 1)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
