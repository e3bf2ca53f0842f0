package networkdefinition

import (
	"fmt"

	"cosmic_gateway/internal/app/port"
	"cosmic_gateway/internal/domain/entity"
)

// NetworkDefinitionProvider provides the supported network definitions.
type NetworkDefinitionProvider struct {
	logger      port.Logger
	allDefs     map[string]entity.NetworkDefinition
	requiredDef entity.NetworkDefinition
}

// Predefined network definitions. The game contracts are deployed on Arbitrum;
// the Sepolia and local presets exist for staging and development.
var ( //nolint:gochecknoglobals // Global for definitions
	ArbitrumOne = entity.NetworkDefinition{
		ChainID:    42161,
		Name:       "Arbitrum One",
		Identifier: "arbitrum_one",
		NativeCurrency: entity.NativeCurrency{
			Name:     "Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		RPCURLs:          []string{"https://arb1.arbitrum.io/rpc", "https://arbitrum.llamarpc.com", "https://arbitrum.publicnode.com"},
		BlockExplorerURL: "https://arbiscan.io",
		Testnet:          false,
		DataAPIBaseURL:   "http://161.129.67.42:7070/api/cosmicgame/",
	}
	ArbitrumSepolia = entity.NetworkDefinition{
		ChainID:    421614,
		Name:       "Arbitrum Sepolia",
		Identifier: "arbitrum_sepolia",
		NativeCurrency: entity.NativeCurrency{
			Name:     "Sepolia Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		RPCURLs:          []string{"https://sepolia-rollup.arbitrum.io/rpc", "https://arbitrum-sepolia.publicnode.com"},
		BlockExplorerURL: "https://sepolia.arbiscan.io",
		Testnet:          true,
		DataAPIBaseURL:   "http://161.129.67.42:8080/api/cosmicgame/",
	}
	LocalDevnet = entity.NetworkDefinition{
		ChainID:    31337,
		Name:       "Local Devnet",
		Identifier: "local",
		NativeCurrency: entity.NativeCurrency{
			Name:     "Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		RPCURLs:        []string{"http://127.0.0.1:8545"},
		Testnet:        true,
		DataAPIBaseURL: "http://127.0.0.1:7070/api/cosmicgame/",
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[string]entity.NetworkDefinition{
	ArbitrumOne.Identifier:     ArbitrumOne,
	ArbitrumSepolia.Identifier: ArbitrumSepolia,
	LocalDevnet.Identifier:     LocalDevnet,
}

// NewNetworkDefinitionProvider creates a provider and resolves the required
// network. Chain ids must be unique across the definition table.
func NewNetworkDefinitionProvider(log port.Logger, requiredIdentifier string) (*NetworkDefinitionProvider, error) {
	seen := make(map[uint64]string, len(allKnownDefinitions))
	for _, def := range allKnownDefinitions {
		if prev, dup := seen[def.ChainID]; dup {
			return nil, fmt.Errorf("duplicate chain id %d shared by %q and %q", def.ChainID, prev, def.Identifier)
		}
		seen[def.ChainID] = def.Identifier
	}

	required, ok := allKnownDefinitions[requiredIdentifier]
	if !ok {
		return nil, fmt.Errorf("unknown required network %q", requiredIdentifier)
	}

	p := &NetworkDefinitionProvider{
		logger:      log,
		allDefs:     allKnownDefinitions,
		requiredDef: required,
	}
	log.Info("NetworkDefinitionProvider initialized",
		"required_network", required.Name, "chain_id", required.ChainID, "testnet", required.Testnet)
	return p, nil
}

// RequiredNetwork returns the configured required network definition.
func (p *NetworkDefinitionProvider) RequiredNetwork() entity.NetworkDefinition {
	return p.requiredDef
}

// GetAllNetworkDefinitions returns the list of supported network definitions.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defs := make([]entity.NetworkDefinition, 0, len(p.allDefs))
	for _, def := range p.allDefs {
		defs = append(defs, def)
	}
	return defs
}

// GetNetworkDefinitionByIdentifier returns a specific network definition by its identifier.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByIdentifier(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.allDefs[identifier]
	return def, ok
}

// GetNetworkDefinitionByChainID returns a specific network definition by its chain id.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.allDefs {
		if def.ChainID == chainID {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}
