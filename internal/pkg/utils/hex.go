package utils

import "github.com/ethereum/go-ethereum/common/hexutil"

// ChainIDToHex encodes a chain id the way wallet_switchEthereumChain and
// wallet_addEthereumChain expect it ("0x" + minimal hex, e.g. 42161 -> "0xa4b1").
func ChainIDToHex(chainID uint64) string {
	return hexutil.EncodeUint64(chainID)
}
