package entity

import "fmt"

// Wallet provider error codes (EIP-1193 / EIP-3085).
const (
	// WalletErrUserRejected is returned when the user dismisses the wallet prompt.
	WalletErrUserRejected = 4001
	// WalletErrUnrecognizedChain is returned by wallet_switchEthereumChain when
	// the wallet has never seen the chain; the caller should add it first.
	WalletErrUnrecognizedChain = 4902
)

// WalletError is a structured error from the wallet provider.
type WalletError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *WalletError) Error() string {
	return fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
}
