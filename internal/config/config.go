package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is built once at
// startup and passed explicitly into each component; nothing reads the
// environment after Load returns.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Firecrawl FirecrawlConfig `yaml:"firecrawl" mapstructure:"firecrawl"`
	Browser   BrowserConfig   `yaml:"browser" mapstructure:"browser"`
	Nvidia    NvidiaConfig    `yaml:"nvidia" mapstructure:"nvidia"`
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Langfuse  LangfuseConfig  `yaml:"langfuse" mapstructure:"langfuse"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
}

// ServerConfig configures the web UI server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// FirecrawlConfig holds Firecrawl API settings.
type FirecrawlConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// BrowserConfig configures the local headless browser backend.
type BrowserConfig struct {
	Headless bool `yaml:"headless" mapstructure:"headless"`
}

// NvidiaConfig holds NVIDIA NIM API settings.
type NvidiaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// GoogleConfig holds Google Gemini API settings.
type GoogleConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// LangfuseConfig holds optional Langfuse tracing settings. Tracing is enabled
// only when both keys are present.
type LangfuseConfig struct {
	PublicKey string `yaml:"public_key" mapstructure:"public_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	Host      string `yaml:"host" mapstructure:"host"`
}

// Enabled reports whether tracing is configured.
func (c LangfuseConfig) Enabled() bool {
	return c.PublicKey != "" && c.SecretKey != ""
}

// ScrapeConfig bounds the scrape step.
type ScrapeConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ExtractConfig bounds the LLM extraction step.
type ExtractConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxTokens   int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// Load reads configuration from an optional config.yaml and the environment.
// Missing API keys are not an error here: the affected backend fails on use,
// not at startup.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCRAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional credential variables, first match wins.
	v.BindEnv("firecrawl.key", "FIRECRAWL_API_KEY")                 //nolint:errcheck
	v.BindEnv("nvidia.key", "NVIDIA_API_KEY", "NVIDIA_NIM_API_KEY") //nolint:errcheck
	v.BindEnv("google.key", "GOOGLE_API_KEY", "GEMINI_API_KEY")     //nolint:errcheck
	v.BindEnv("anthropic.key", "ANTHROPIC_API_KEY")                 //nolint:errcheck
	v.BindEnv("langfuse.public_key", "LANGFUSE_PUBLIC_KEY")         //nolint:errcheck
	v.BindEnv("langfuse.secret_key", "LANGFUSE_SECRET_KEY")         //nolint:errcheck
	v.BindEnv("langfuse.host", "LANGFUSE_HOST")                     //nolint:errcheck

	// Defaults
	v.SetDefault("server.port", 7860)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev/v1")
	v.SetDefault("browser.headless", true)
	v.SetDefault("nvidia.base_url", "https://integrate.api.nvidia.com/v1")
	v.SetDefault("langfuse.host", "https://cloud.langfuse.com")
	v.SetDefault("scrape.timeout_secs", 30)
	v.SetDefault("scrape.rate_per_sec", 1.0)
	v.SetDefault("extract.timeout_secs", 120)
	v.SetDefault("extract.max_tokens", 4096)

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
