package port

import (
	"context"
	"math/big"

	"cosmic_gateway/internal/domain/entity"
)

// GameState is one batched read of the auction game contract.
type GameState struct {
	RoundNum       uint64
	BidPriceWei    *big.Int
	CstBidPriceWei *big.Int
	LastBidderAddr string
	PrizeAmountWei *big.Int
	PrizeTimeSec   int64
}

// GameReader defines read access to the on-chain auction game. Implementations
// are specific to network types (EVM today).
type GameReader interface {
	// ReadGameState fetches the current round state in one RPC batch.
	ReadGameState(ctx context.Context) (GameState, error)

	// Definition returns the network definition this reader is bound to.
	Definition() entity.NetworkDefinition
}
