// Package walletbridge implements port.WalletBridge over a JSON-RPC wallet
// provider endpoint. The bridge never holds keys; every switch or add request
// still goes through the wallet's own confirmation flow.
package walletbridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"cosmic_gateway/internal/app/port"
	"cosmic_gateway/internal/domain/entity"
)

// RPCBridge talks to a wallet provider over JSON-RPC.
type RPCBridge struct {
	client *rpc.Client
	logger port.Logger
}

// NewRPCBridge dials the wallet provider endpoint. A nil bridge (no provider
// configured) is a valid "never connected" wallet.
func NewRPCBridge(ctx context.Context, providerURL string, log port.Logger) (*RPCBridge, error) {
	client, err := rpc.DialContext(ctx, providerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial wallet provider %s: %w", providerURL, err)
	}
	return &RPCBridge{client: client, logger: log}, nil
}

// IsConnected reports whether a wallet session exists.
func (b *RPCBridge) IsConnected() bool {
	return b != nil && b.client != nil
}

// ChainID returns the chain id the wallet is currently connected to.
func (b *RPCBridge) ChainID(ctx context.Context) (uint64, error) {
	var result hexutil.Big
	if err := b.client.CallContext(ctx, &result, "eth_chainId"); err != nil {
		return 0, wrapProviderError(err)
	}
	return result.ToInt().Uint64(), nil
}

// SwitchChain issues the standard switch-chain request with a typed parameter.
func (b *RPCBridge) SwitchChain(ctx context.Context, chainID uint64) error {
	param := struct {
		ChainID string `json:"chainId"`
	}{ChainID: hexutil.EncodeUint64(chainID)}
	if err := b.client.CallContext(ctx, nil, "wallet_switchEthereumChain", param); err != nil {
		return wrapProviderError(err)
	}
	return nil
}

// RawRequest invokes a raw provider method with positional params.
func (b *RPCBridge) RawRequest(ctx context.Context, method string, params any) error {
	args, ok := params.([]any)
	if !ok {
		args = []any{params}
	}
	if err := b.client.CallContext(ctx, nil, method, args...); err != nil {
		return wrapProviderError(err)
	}
	return nil
}

// wrapProviderError converts go-ethereum rpc errors carrying a provider error
// code into entity.WalletError so callers can branch on codes like 4902.
func wrapProviderError(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &entity.WalletError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
	}
	return err
}
