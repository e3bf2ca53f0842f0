package port

import (
	"context"

	"cosmic_gateway/internal/domain/entity"
)

// DataAPIClient defines the read-only surface of the external indexer consumed
// by the gateway. All endpoints are GET; writes go directly to contracts.
type DataAPIClient interface {
	// SetBaseURL rebinds the client to another indexer deployment. Single-writer:
	// only the network synchronization service calls this, once at startup.
	SetBaseURL(baseURL string)

	// BaseURL returns the currently bound base URL.
	BaseURL() string

	GetDashboardInfo(ctx context.Context) (entity.DashboardInfo, error)

	// GetRoundBidCounts fetches the total bid count of the given round and the
	// user's bid count within it, both for the same explicit round number.
	GetRoundBidCounts(ctx context.Context, roundNum uint64, userAddr string) (entity.RoundBidCounts, error)

	GetBidsByRound(ctx context.Context, roundNum uint64) ([]entity.BidRecord, error)
	GetBidDetails(ctx context.Context, evtLogID uint64) (entity.BidRecord, error)
	GetRoundList(ctx context.Context) ([]entity.RoundRecord, error)
	GetNFTList(ctx context.Context) ([]entity.NFTRecord, error)
	GetNFTInfo(ctx context.Context, tokenID uint64) (entity.NFTRecord, error)
	GetStakingActions(ctx context.Context, stakerAddr string) ([]entity.StakingAction, error)
	GetDonations(ctx context.Context, roundNum uint64) ([]entity.DonationRecord, error)
	GetRaffleDeposits(ctx context.Context, winnerAddr string) ([]entity.RaffleDeposit, error)
	GetCharityLedger(ctx context.Context) ([]entity.CharityDeposit, error)
	GetUserProfile(ctx context.Context, addr string) (entity.UserProfile, error)
	GetLeaderboard(ctx context.Context) ([]entity.LeaderboardEntry, error)
	GetServerTime(ctx context.Context) (entity.ServerTime, error)
}
