package entity

import "fmt"

// BidType enumerates how a bid can be placed in a round.
type BidType int

const (
	// BidTypeETH is a plain bid paid in ETH at the current Dutch-auction price.
	BidTypeETH BidType = iota
	// BidTypeETHWithNFT is an ETH bid discounted by spending a random-walk NFT.
	BidTypeETHWithNFT
	// BidTypeCST is a bid paid in Cosmic Signature Tokens.
	BidTypeCST
)

// String implements fmt.Stringer.
func (t BidType) String() string {
	switch t {
	case BidTypeETH:
		return "eth"
	case BidTypeETHWithNFT:
		return "eth_with_nft"
	case BidTypeCST:
		return "cst"
	default:
		return "unknown"
	}
}

// ParseBidType maps the wire name of a bid type back to its enum value.
func ParseBidType(s string) (BidType, error) {
	switch s {
	case "eth":
		return BidTypeETH, nil
	case "eth_with_nft":
		return BidTypeETHWithNFT, nil
	case "cst":
		return BidTypeCST, nil
	default:
		return 0, fmt.Errorf("unknown bid type %q", s)
	}
}

// MaxBidMessageLength caps the free-form message attached to a bid.
const MaxBidMessageLength = 280

// BidIntent is a client's request to place a bid, checked before any network round-trip.
type BidIntent struct {
	Type      BidType
	Message   string
	NFTID     uint64 // only meaningful for BidTypeETHWithNFT
	DonateETH bool
}

// Validate reports intent problems that must surface before submission.
func (b BidIntent) Validate() error {
	if len(b.Message) > MaxBidMessageLength {
		return fmt.Errorf("bid message too long: %d characters (max %d)", len(b.Message), MaxBidMessageLength)
	}
	switch b.Type {
	case BidTypeETH, BidTypeCST:
		return nil
	case BidTypeETHWithNFT:
		// NFT id 0 is a valid token id, nothing further to check client-side.
		return nil
	default:
		return fmt.Errorf("unknown bid type: %d", b.Type)
	}
}
