package port

import "cosmic_gateway/internal/domain/entity"

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all supported network definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByIdentifier returns a specific network definition by
	// its identifier. Returns the definition and true when found.
	GetNetworkDefinitionByIdentifier(identifier string) (entity.NetworkDefinition, bool)

	// GetNetworkDefinitionByChainID returns a specific network definition by its chain id.
	GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool)
}
