package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"token-mention-bot/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
whitelisted_chats: [-1001234, 5678]
evm_chains: [base, bsc]
providers:
  jupiter_base_url: http://localhost:9001
postgres_dsn: postgres://app@localhost/mentions
logger:
  level: debug
  format: json
`)

	cfg := Load(path, zap.NewNop())

	if len(cfg.WhitelistedChats) != 2 || cfg.WhitelistedChats[0] != -1001234 {
		t.Errorf("unexpected whitelist %v", cfg.WhitelistedChats)
	}
	if len(cfg.EVMChains) != 2 || cfg.EVMChains[0] != domain.ChainBase {
		t.Errorf("unexpected evm chain order %v", cfg.EVMChains)
	}
	if cfg.Providers.JupiterBaseURL != "http://localhost:9001" {
		t.Errorf("jupiter url not overridden: %q", cfg.Providers.JupiterBaseURL)
	}
	if cfg.Providers.GeckoBaseURL == "" {
		t.Error("unset gecko url must fall back to the default")
	}
	if cfg.PostgresDSN != "postgres://app@localhost/mentions" {
		t.Errorf("unexpected postgres dsn %q", cfg.PostgresDSN)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoad_MissingFileFailsClosed(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop())

	if len(cfg.WhitelistedChats) != 0 {
		t.Errorf("default config must whitelist nothing, got %v", cfg.WhitelistedChats)
	}
	if len(cfg.EVMChains) == 0 {
		t.Error("default config must keep the evm fallback order")
	}
}

func TestLoad_MalformedFileFailsClosed(t *testing.T) {
	path := writeConfig(t, "whitelisted_chats: [not-a-number")

	cfg := Load(path, zap.NewNop())

	if len(cfg.WhitelistedChats) != 0 {
		t.Errorf("malformed config must whitelist nothing, got %v", cfg.WhitelistedChats)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "whitelisted_chats: [42]\n")

	cfg := Load(path, zap.NewNop())

	def := Default()
	if cfg.Providers != def.Providers {
		t.Errorf("provider defaults lost: %+v", cfg.Providers)
	}
	if cfg.Log != def.Log {
		t.Errorf("log defaults lost: %+v", cfg.Log)
	}
	if len(cfg.WhitelistedChats) != 1 || cfg.WhitelistedChats[0] != 42 {
		t.Errorf("unexpected whitelist %v", cfg.WhitelistedChats)
	}
}
