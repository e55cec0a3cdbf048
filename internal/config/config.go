// Package config loads the bot configuration from a YAML file. Loading never
// fails hard: a missing or malformed file yields the default configuration,
// whose empty whitelist keeps the bot inert.
package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/provider"
)

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug / info / warn / error
	Format string `yaml:"format"` // "console" or "json"
}

// ProviderConfig overrides metadata provider endpoints. Zero values fall
// back to the public endpoints.
type ProviderConfig struct {
	JupiterBaseURL   string `yaml:"jupiter_base_url"`
	GeckoBaseURL     string `yaml:"gecko_base_url"`
	TranslateBaseURL string `yaml:"translate_base_url"`
}

// Config is the root configuration. The bot token deliberately lives in the
// environment, not here, so config files stay safe to commit.
type Config struct {
	// WhitelistedChats is the only processing gate. Empty means the bot
	// replies nowhere.
	WhitelistedChats []int64 `yaml:"whitelisted_chats"`

	// EVMChains is the fallback resolution order for EVM addresses.
	EVMChains []domain.Chain `yaml:"evm_chains"`

	Providers ProviderConfig `yaml:"providers"`

	// MetricsAddr serves Prometheus metrics on /metrics when set,
	// e.g. ":9090".
	MetricsAddr string `yaml:"metrics_addr"`

	// PostgresDSN enables the durable mention log when set.
	PostgresDSN string `yaml:"postgres_dsn"`
	// ClickhouseDSN enables the lookup event sink when set.
	ClickhouseDSN string `yaml:"clickhouse_dsn"`

	Log LogConfig `yaml:"logger"`
}

// Default returns the configuration used when no file can be read.
func Default() Config {
	return Config{
		EVMChains: domain.DefaultEVMChainOrder,
		Providers: ProviderConfig{
			JupiterBaseURL:   provider.DefaultJupiterBaseURL,
			GeckoBaseURL:     provider.DefaultGeckoBaseURL,
			TranslateBaseURL: provider.DefaultTranslateBaseURL,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads the YAML file at path. Read or parse failures are logged and
// answered with Default() so a misconfigured deploy stays silent instead of
// crashing or, worse, replying in unvetted chats.
func Load(path string, log *zap.Logger) Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("failed to read config, using defaults", zap.String("path", path), zap.Error(err))
		return Default()
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		log.Warn("failed to parse config, using defaults", zap.String("path", path), zap.Error(err))
		return Default()
	}

	cfg.normalize()
	log.Debug("loaded config",
		zap.Int("whitelisted_chats", len(cfg.WhitelistedChats)),
		zap.Int("evm_chains", len(cfg.EVMChains)))
	return cfg
}

// normalize backfills zero values with defaults after a partial file.
func (c *Config) normalize() {
	def := Default()
	if len(c.EVMChains) == 0 {
		c.EVMChains = def.EVMChains
	}
	if c.Providers.JupiterBaseURL == "" {
		c.Providers.JupiterBaseURL = def.Providers.JupiterBaseURL
	}
	if c.Providers.GeckoBaseURL == "" {
		c.Providers.GeckoBaseURL = def.Providers.GeckoBaseURL
	}
	if c.Providers.TranslateBaseURL == "" {
		c.Providers.TranslateBaseURL = def.Providers.TranslateBaseURL
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// BotToken reads the Telegram token from the environment. Returns an empty
// string when unset.
func BotToken() string {
	return os.Getenv("BOT_TOKEN")
}
