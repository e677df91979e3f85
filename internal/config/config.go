package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Policy    PolicyConfig    `yaml:"policy" mapstructure:"policy"`
	Generate  GenerateConfig  `yaml:"generate" mapstructure:"generate"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Pricing   PricingConfig   `yaml:"pricing" mapstructure:"pricing"`
	Content   ContentConfig   `yaml:"content" mapstructure:"content"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the page delivery server.
type ServerConfig struct {
	Port            int `yaml:"port" mapstructure:"port"`
	CacheMaxAgeSecs int `yaml:"cache_max_age_secs" mapstructure:"cache_max_age_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// PolicyConfig tunes the enhanced-generation sampling policy. The defaults
// reproduce the launch behavior: pairs in locations above 1000 monthly
// searches are eligible, and roughly one in ten of those is enhanced.
type PolicyConfig struct {
	MinMonthlySearches int     `yaml:"min_monthly_searches" mapstructure:"min_monthly_searches"`
	SampleRate         float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// GenerateConfig configures the generation engine.
type GenerateConfig struct {
	Workers         int `yaml:"workers" mapstructure:"workers"`
	TimeoutSecs     int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheTTLMinutes int `yaml:"cache_ttl_minutes" mapstructure:"cache_ttl_minutes"`
}

// AnthropicConfig holds Anthropic API settings for the enhanced writer.
// An empty key selects the deterministic copy writer instead.
type AnthropicConfig struct {
	Key               string  `yaml:"key" mapstructure:"key"`
	Model             string  `yaml:"model" mapstructure:"model"`
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// PricingConfig holds token pricing and the per-page token assumptions used
// for spend estimates.
type PricingConfig struct {
	Anthropic         map[string]ModelPricing `yaml:"anthropic" mapstructure:"anthropic"`
	EnhancedAvgInput  int                     `yaml:"enhanced_avg_input_tokens" mapstructure:"enhanced_avg_input_tokens"`
	EnhancedAvgOutput int                     `yaml:"enhanced_avg_output_tokens" mapstructure:"enhanced_avg_output_tokens"`
}

// ModelPricing holds per-model token pricing (USD per million tokens).
type ModelPricing struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// ContentConfig points at an optional copy deck overriding the built-in
// trade copy.
type ContentConfig struct {
	PackPath string `yaml:"pack_path" mapstructure:"pack_path"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SEOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "seogen.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cache_max_age_secs", 300)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("policy.min_monthly_searches", 1000)
	v.SetDefault("policy.sample_rate", 0.10)
	v.SetDefault("generate.workers", 8)
	v.SetDefault("generate.timeout_secs", 60)
	v.SetDefault("generate.cache_ttl_minutes", 15)
	// An explicit empty default registers the key with viper so the
	// SEOGEN_ANTHROPIC_KEY env var reaches Unmarshal.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("anthropic.requests_per_second", 2.0)
	v.SetDefault("pricing.enhanced_avg_input_tokens", 900)
	v.SetDefault("pricing.enhanced_avg_output_tokens", 700)
	v.SetDefault("pricing.anthropic", map[string]any{
		"claude-haiku-4-5-20251001":  map[string]any{"input": 0.80, "output": 4.00},
		"claude-sonnet-4-5-20250929": map[string]any{"input": 3.00, "output": 15.00},
	})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
