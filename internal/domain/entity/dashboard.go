package entity

// DashboardInfo is the indexer's aggregate snapshot of the active round.
// Field names follow the backend's JSON surface.
type DashboardInfo struct {
	CurRoundNum           uint64  `json:"CurRoundNum"`
	BidPriceEth           string  `json:"BidPriceEth"`
	CstBidPriceEth        string  `json:"CstBidPriceEth"`
	CurNumBids            uint64  `json:"CurNumBids"`
	LastBidderAddr        string  `json:"LastBidderAddr"`
	PrizeAmountEth        string  `json:"PrizeAmountEth"`
	PrizeClaimTimestamp   int64   `json:"PrizeClaimTs"`
	RaffleAmountEth       string  `json:"RaffleAmountEth"`
	CharityAmountEth      string  `json:"CharityAmountEth"`
	NumRaffleEthWinners   uint64  `json:"NumRaffleEthWinners"`
	NumRaffleNFTWinners   uint64  `json:"NumRaffleNFTWinners"`
	MainStats             Stats   `json:"MainStats"`
	TotalVolumeEth        float64 `json:"TotalVolumeEth"`
	NumCosmicSignatureNFT uint64  `json:"NumCosmicSignatureNFT"`
}

// Stats holds global counters maintained by the indexer.
type Stats struct {
	NumBids          uint64 `json:"NumBids"`
	NumPrizes        uint64 `json:"NumPrizes"`
	NumUniqueBidders uint64 `json:"NumUniqueBidders"`
	NumUniqueWinners uint64 `json:"NumUniqueWinners"`
	NumDonations     uint64 `json:"NumDonatedNFTs"`
}

// RoundBidCounts pairs the two counts the raffle estimator needs, both resolved
// against the same explicit round number so a round rollover between fetches
// cannot mix rounds.
type RoundBidCounts struct {
	RoundNum  uint64 `json:"roundNum"`
	TotalBids uint64 `json:"totalBids"`
	UserBids  uint64 `json:"userBids"`
}

// BidRecord is one bid event as reported by the indexer.
type BidRecord struct {
	EvtLogID     uint64 `json:"EvtLogId"`
	RoundNum     uint64 `json:"RoundNum"`
	BidderAddr   string `json:"BidderAddr"`
	BidPriceEth  string `json:"BidPriceEth"`
	BidType      string `json:"BidType"`
	Message      string `json:"Message"`
	TimestampSec int64  `json:"TimeStamp"`
}

// RoundRecord is one finished or active round as reported by the indexer.
type RoundRecord struct {
	RoundNum       uint64 `json:"RoundNum"`
	TotalBids      uint64 `json:"TotalBids"`
	WinnerAddr     string `json:"WinnerAddr"`
	PrizeAmountEth string `json:"AmountEth"`
	TimestampSec   int64  `json:"TimeStamp"`
}

// NFTRecord describes one Cosmic Signature NFT.
type NFTRecord struct {
	TokenID      uint64 `json:"TokenId"`
	OwnerAddr    string `json:"OwnerAddr"`
	Name         string `json:"TokenName"`
	Seed         string `json:"Seed"`
	RoundNum     uint64 `json:"RoundNum"`
	TimestampSec int64  `json:"TimeStamp"`
	Staked       bool   `json:"Staked"`
}

// StakingAction is a stake or unstake event.
type StakingAction struct {
	ActionID     uint64 `json:"ActionId"`
	TokenID      uint64 `json:"TokenId"`
	StakerAddr   string `json:"StakerAddr"`
	IsUnstake    bool   `json:"IsUnstake"`
	TimestampSec int64  `json:"TimeStamp"`
}

// DonationRecord is one direct ETH or NFT donation to a round.
type DonationRecord struct {
	RecordID     uint64 `json:"RecordId"`
	RoundNum     uint64 `json:"RoundNum"`
	DonorAddr    string `json:"DonorAddr"`
	AmountEth    string `json:"AmountEth"`
	TimestampSec int64  `json:"TimeStamp"`
}

// RaffleDeposit is one ETH raffle win credited to an address, claimable later.
type RaffleDeposit struct {
	RecordID     uint64 `json:"RecordId"`
	RoundNum     uint64 `json:"RoundNum"`
	WinnerAddr   string `json:"WinnerAddr"`
	AmountEth    string `json:"AmountEth"`
	Claimed      bool   `json:"Claimed"`
	TimestampSec int64  `json:"TimeStamp"`
}

// CharityDeposit is one entry of the charity ledger: a share of a round's pot
// set aside for the designated charity address.
type CharityDeposit struct {
	RecordID     uint64 `json:"RecordId"`
	RoundNum     uint64 `json:"RoundNum"`
	AmountEth    string `json:"AmountEth"`
	TimestampSec int64  `json:"TimeStamp"`
}

// UserProfile aggregates one address's participation history.
type UserProfile struct {
	Address           string `json:"Address"`
	NumBids           uint64 `json:"NumBids"`
	NumPrizes         uint64 `json:"NumPrizes"`
	MaxWinAmountEth   string `json:"MaxWinAmountEth"`
	NumRaffleEthWins  uint64 `json:"NumRaffleEthWins"`
	NumRaffleNFTWins  uint64 `json:"NumRaffleNFTWins"`
	NumStakeActions   uint64 `json:"NumStakeActions"`
	UnclaimedEth      string `json:"UnclaimedEth"`
	NumDonatedNFTWins uint64 `json:"NumDonatedNFTWins"`
}

// LeaderboardEntry is one row of a leaderboard (bidders or winners).
type LeaderboardEntry struct {
	Rank      uint64 `json:"Rank"`
	Address   string `json:"Address"`
	NumBids   uint64 `json:"NumBids"`
	AmountEth string `json:"AmountEth"`
}

// ServerTime carries the indexer's clock for client-side offset computation.
type ServerTime struct {
	CurrentTimeSec int64 `json:"CurrentTimeStamp"`
}
