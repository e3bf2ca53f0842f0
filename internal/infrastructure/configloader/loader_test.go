package configloader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "requiredNetwork: arbitrum_sepolia\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("default port: got %q", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level: got %q", cfg.Logging.Level)
	}
	if cfg.Proxy.ForwardTimeoutMillis != 30000 {
		t.Errorf("default proxy timeout: got %d", cfg.Proxy.ForwardTimeoutMillis)
	}
	if cfg.NetSync.SwitchDelayMillis != 1500 {
		t.Errorf("default switch delay: got %d", cfg.NetSync.SwitchDelayMillis)
	}
	if cfg.Raffle.ETHWinners != 3 || cfg.Raffle.NFTWinners != 5 {
		t.Errorf("default winner counts: got %d/%d", cfg.Raffle.ETHWinners, cfg.Raffle.NFTWinners)
	}
}

func TestLoad_ExplicitValuesWin(t *testing.T) {
	path := writeConfig(t, `
server:
  port: ":9191"
requiredNetwork: arbitrum_one
dataApi:
  baseURLOverrides:
    42161: "http://localhost:7070/api/"
proxy:
  forwardTimeoutMillis: 1234
  allowedHosts:
    - indexer.example
raffle:
  ethWinners: 4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != ":9191" {
		t.Errorf("port: got %q", cfg.Server.Port)
	}
	if cfg.RequiredNetwork != "arbitrum_one" {
		t.Errorf("requiredNetwork: got %q", cfg.RequiredNetwork)
	}
	if cfg.DataAPI.BaseURLOverrides[42161] != "http://localhost:7070/api/" {
		t.Errorf("override: got %v", cfg.DataAPI.BaseURLOverrides)
	}
	if cfg.Proxy.ForwardTimeoutMillis != 1234 {
		t.Errorf("proxy timeout: got %d", cfg.Proxy.ForwardTimeoutMillis)
	}
	if len(cfg.Proxy.AllowedHosts) != 1 || cfg.Proxy.AllowedHosts[0] != "indexer.example" {
		t.Errorf("allowedHosts: got %v", cfg.Proxy.AllowedHosts)
	}
	if cfg.Raffle.ETHWinners != 4 {
		t.Errorf("ethWinners: got %d", cfg.Raffle.ETHWinners)
	}
	// Unset sibling still defaults.
	if cfg.Raffle.NFTWinners != 5 {
		t.Errorf("nftWinners default: got %d", cfg.Raffle.NFTWinners)
	}
}

func TestLoad_MissingRequiredNetwork(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \":8080\"\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error when requiredNetwork is unset")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "requiredNetwork: [unclosed\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
