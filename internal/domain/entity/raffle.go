package entity

// RaffleOddsSample is the derived, read-only view of a user's chances in the
// current round's raffle draws. Probabilities are in [0, 1].
type RaffleOddsSample struct {
	RoundNum       uint64  `json:"roundNum"`
	UserBids       uint64  `json:"userBids"`
	TotalBids      uint64  `json:"totalBids"`
	ETHWinners     uint64  `json:"ethWinners"`
	NFTWinners     uint64  `json:"nftWinners"`
	ETHProbability float64 `json:"ethProbability"`
	NFTProbability float64 `json:"nftProbability"`
	// Applicable is false when the user holds no tickets or the round has no
	// bids; callers are expected to suppress display in that case.
	Applicable bool `json:"applicable"`
}
