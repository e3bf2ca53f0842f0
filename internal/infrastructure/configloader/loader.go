package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// DataAPIConfig holds configuration for the external indexer client.
type DataAPIConfig struct {
	// BaseURLOverrides maps chain id to an indexer base URL, taking precedence
	// over the URL baked into the network definition.
	BaseURLOverrides     map[uint64]string `yaml:"baseURLOverrides"`
	RequestTimeoutMillis int64             `yaml:"requestTimeoutMillis"`
	CacheTTLSeconds      int               `yaml:"cacheTTLSeconds"`
	CacheCleanupSeconds  int               `yaml:"cacheCleanupSeconds"`
}

// ProxyConfig holds configuration for the request proxy endpoint.
type ProxyConfig struct {
	ForwardTimeoutMillis int64 `yaml:"forwardTimeoutMillis"`
	// AllowedHosts restricts forward targets when non-empty. An empty list
	// forwards to any target and is reported as a warning at startup.
	AllowedHosts []string `yaml:"allowedHosts"`
}

// NetSyncConfig holds configuration for the network synchronization service.
type NetSyncConfig struct {
	// SwitchDelayMillis is the grace period between detecting a chain mismatch
	// and issuing the switch request, so the wallet can finish initializing.
	SwitchDelayMillis int64 `yaml:"switchDelayMillis"`
}

// RaffleConfig holds configuration for the raffle odds sampler.
type RaffleConfig struct {
	ETHWinners         uint64 `yaml:"ethWinners"`
	NFTWinners         uint64 `yaml:"nftWinners"`
	PollIntervalMillis int64  `yaml:"pollIntervalMillis"`
	MinFetchGapMillis  int64  `yaml:"minFetchGapMillis"`
}

// WalletConfig holds the wallet provider bridge configuration.
type WalletConfig struct {
	// ProviderURL is the JSON-RPC endpoint of the wallet provider bridge.
	// Empty means no wallet session; the gateway still serves all read paths.
	ProviderURL string `yaml:"providerURL"`
}

// RPCClientConfig holds configuration for on-chain read clients.
type RPCClientConfig struct {
	ConnectionTimeoutMs int64 `yaml:"connectionTimeoutMs"`
	CallTimeoutMs       int64 `yaml:"callTimeoutMs"`
}

// AssetsConfig holds the NFT media host configuration.
type AssetsConfig struct {
	BaseURL string `yaml:"baseURL"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server          ServerConfig    `yaml:"server"`
	Logging         LoggingConfig   `yaml:"logging"`
	RequiredNetwork string          `yaml:"requiredNetwork"` // identifier of the network the game runs on
	DataAPI         DataAPIConfig   `yaml:"dataApi"`
	Proxy           ProxyConfig     `yaml:"proxy"`
	NetSync         NetSyncConfig   `yaml:"netSync"`
	Raffle          RaffleConfig    `yaml:"raffle"`
	Wallet          WalletConfig    `yaml:"wallet"`
	GameContract    string          `yaml:"gameContract"` // address of the game contract on the required network
	RPCClient       RPCClientConfig `yaml:"rpcClient"`
	Assets          AssetsConfig    `yaml:"assets"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.RequiredNetwork == "" {
		return nil, fmt.Errorf("requiredNetwork must be set in %s", path)
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.DataAPI.RequestTimeoutMillis <= 0 {
		cfg.DataAPI.RequestTimeoutMillis = 10000
	}
	if cfg.DataAPI.CacheTTLSeconds <= 0 {
		cfg.DataAPI.CacheTTLSeconds = 15
	}
	if cfg.DataAPI.CacheCleanupSeconds <= 0 {
		cfg.DataAPI.CacheCleanupSeconds = 60
	}

	if cfg.Proxy.ForwardTimeoutMillis <= 0 {
		cfg.Proxy.ForwardTimeoutMillis = 30000
	}
	if len(cfg.Proxy.AllowedHosts) == 0 {
		logrus.Warn("proxy.allowedHosts is empty: the proxy will forward to any caller-supplied URL")
	}

	if cfg.NetSync.SwitchDelayMillis <= 0 {
		cfg.NetSync.SwitchDelayMillis = 1500
	}

	if cfg.Raffle.ETHWinners == 0 {
		cfg.Raffle.ETHWinners = 3
	}
	if cfg.Raffle.NFTWinners == 0 {
		cfg.Raffle.NFTWinners = 5
	}
	if cfg.Raffle.PollIntervalMillis <= 0 {
		cfg.Raffle.PollIntervalMillis = 30000
	}
	if cfg.Raffle.MinFetchGapMillis <= 0 {
		cfg.Raffle.MinFetchGapMillis = 5000
	}

	if cfg.RPCClient.ConnectionTimeoutMs <= 0 {
		cfg.RPCClient.ConnectionTimeoutMs = 10000
	}
	if cfg.RPCClient.CallTimeoutMs <= 0 {
		cfg.RPCClient.CallTimeoutMs = 10000
	}
}
