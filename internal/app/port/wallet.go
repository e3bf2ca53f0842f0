package port

import "context"

// WalletBridge defines the capability surface of the user's wallet as seen by
// the network synchronization service. Implementations wrap an external wallet
// provider; nothing here signs or broadcasts on its own.
type WalletBridge interface {
	// IsConnected reports whether a wallet session exists.
	IsConnected() bool

	// ChainID returns the chain id the wallet is currently connected to.
	ChainID(ctx context.Context) (uint64, error)

	// SwitchChain issues the wallet library's standard switch-chain request.
	SwitchChain(ctx context.Context, chainID uint64) error

	// RawRequest invokes a raw provider method (e.g. wallet_switchEthereumChain,
	// wallet_addEthereumChain) with the given params.
	RawRequest(ctx context.Context, method string, params any) error
}
