package entity

// NativeCurrency describes the native coin of a network as wallets expect it
// in a wallet_addEthereumChain payload.
type NativeCurrency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// NetworkDefinition holds the configuration for a specific blockchain network.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	ChainID          uint64         `json:"chainId" yaml:"chainId"`
	Name             string         `json:"name" yaml:"name"`
	Identifier       string         `json:"identifier" yaml:"identifier"` // unique key, e.g. "arbitrum_one"
	NativeCurrency   NativeCurrency `json:"nativeCurrency" yaml:"nativeCurrency"`
	RPCURLs          []string       `json:"rpcUrls" yaml:"rpcUrls"` // ordered, first entry is preferred
	BlockExplorerURL string         `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	Testnet          bool           `json:"testnet" yaml:"testnet"`
	DataAPIBaseURL   string         `json:"dataApiBaseUrl" yaml:"dataApiBaseUrl"`
}

// PrimaryRPCURL returns the preferred RPC endpoint, or "" when none is configured.
func (d NetworkDefinition) PrimaryRPCURL() string {
	if len(d.RPCURLs) == 0 {
		return ""
	}
	return d.RPCURLs[0]
}
