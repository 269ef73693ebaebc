// README: Config loader with defaults for HTTP, DB, Redis, AI providers, weather and maps.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ChatProviderConfig describes one OpenAI-compatible chat-completions backend.
type ChatProviderConfig struct {
	Name    string `mapstructure:"name"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	// Keys is a comma separated list of credential slots, tried in order.
	Keys string `mapstructure:"keys"`
}

// KeyList returns the non-empty credential slots in declared order.
func (c ChatProviderConfig) KeyList() []string {
	return splitList(c.Keys)
}

type AIConfig struct {
	GeminiKey string `mapstructure:"gemini_key"`
	// GeminiModels is a comma separated priority list of model variants.
	GeminiModels    string             `mapstructure:"gemini_models"`
	Secondary       ChatProviderConfig `mapstructure:"secondary"`
	Tertiary        ChatProviderConfig `mapstructure:"tertiary"`
	Timeout         time.Duration      `mapstructure:"timeout"`
	ExtractStrategy string             `mapstructure:"extract_strategy"`
}

// GeminiModelList returns the configured Gemini variants in priority order.
func (c AIConfig) GeminiModelList() []string {
	return splitList(c.GeminiModels)
}

type Config struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	HTTP     struct {
		Addr           string        `mapstructure:"addr"`
		AllowedOrigins string        `mapstructure:"allowed_origins"`
		RatePerMinute  int           `mapstructure:"rate_per_minute"`
		RateBurst      int           `mapstructure:"rate_burst"`
		PlanTimeout    time.Duration `mapstructure:"plan_timeout"`
	} `mapstructure:"http"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"redis"`
	Quota struct {
		MonthlyPlans int `mapstructure:"monthly_plans"`
	} `mapstructure:"quota"`
	AI      AIConfig `mapstructure:"ai"`
	Weather struct {
		APIKey   string        `mapstructure:"api_key"`
		BaseURL  string        `mapstructure:"base_url"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"weather"`
	Maps struct {
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"maps"`
	Firebase struct {
		ProjectID       string `mapstructure:"project_id"`
		CredentialsFile string `mapstructure:"credentials_file"`
		CheckRevoked    bool   `mapstructure:"check_revoked"`
	} `mapstructure:"firebase"`
}

// IsProduction reports whether the service runs with production defaults.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOriginList returns the CORS origins; empty means allow all.
func (c Config) AllowedOriginList() []string {
	return splitList(c.HTTP.AllowedOrigins)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", "")
	v.SetDefault("http.rate_per_minute", 20)
	v.SetDefault("http.rate_burst", 5)
	v.SetDefault("http.plan_timeout", 3*time.Minute)

	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("quota.monthly_plans", 30)

	v.SetDefault("ai.gemini_key", "")
	v.SetDefault("ai.gemini_models", "gemini-2.0-flash,gemini-1.5-flash,gemini-1.5-pro")
	v.SetDefault("ai.secondary.name", "openrouter")
	v.SetDefault("ai.secondary.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.secondary.model", "deepseek/deepseek-chat")
	v.SetDefault("ai.secondary.keys", "")
	v.SetDefault("ai.tertiary.name", "openai")
	v.SetDefault("ai.tertiary.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.tertiary.model", "gpt-4o-mini")
	v.SetDefault("ai.tertiary.keys", "")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.extract_strategy", "greedy")

	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.cache_ttl", 30*time.Minute)

	v.SetDefault("maps.api_key", "")

	v.SetDefault("firebase.project_id", "")
	v.SetDefault("firebase.credentials_file", "")
	v.SetDefault("firebase.check_revoked", false)
}

// Load reads config.yaml (optional) and TRIPSMITH_* environment variables.
// Nested keys map to env names by replacing dots with underscores,
// e.g. ai.secondary.keys -> TRIPSMITH_AI_SECONDARY_KEYS.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("TRIPSMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad is Load for entry points; malformed configuration is not recoverable.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c Config) validate() error {
	switch strings.ToLower(c.AI.ExtractStrategy) {
	case "greedy", "balanced":
	default:
		return fmt.Errorf("config: unknown ai.extract_strategy %q", c.AI.ExtractStrategy)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("config: ai.timeout must be positive")
	}
	if c.HTTP.RatePerMinute <= 0 || c.HTTP.RateBurst <= 0 {
		return fmt.Errorf("config: http rate limits must be positive")
	}
	if c.Quota.MonthlyPlans <= 0 {
		return fmt.Errorf("config: quota.monthly_plans must be positive")
	}
	return nil
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
