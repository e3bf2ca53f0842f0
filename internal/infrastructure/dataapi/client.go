// Package dataapi implements the client for the external REST indexer that
// serves historical and aggregate game data. All endpoints are GET; contract
// writes never go through this client.
package dataapi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	gocache "github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cosmic_gateway/internal/domain/entity"
	"cosmic_gateway/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	cacheKeyDashboard  = "dashboard"
	cacheKeyServerTime = "server_time"
)

// Client talks to the indexer over fasthttp. The base URL is mutable but
// single-writer: only the network synchronization service rebinds it, once at
// startup; wallet network changes never touch it.
type Client struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
	cache   *gocache.Cache

	mu      sync.RWMutex
	baseURL string
}

// NewClient creates an indexer client. The base URL may be empty at
// construction; it is bound by the netsync service before first use.
func NewClient(timeout time.Duration, cacheTTL, cacheCleanup time.Duration, logger *zap.Logger) *Client {
	return &Client{
		client:  &fasthttp.Client{},
		timeout: timeout,
		logger:  logger.Named("DataAPIClient"),
		cache:   gocache.New(cacheTTL, cacheCleanup),
	}
}

// SetBaseURL rebinds the client to another indexer deployment and drops the cache.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.mu.Unlock()
	c.cache.Flush()
	c.logger.Info("Data API base URL bound", zap.String("baseURL", baseURL))
}

// BaseURL returns the currently bound base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// getJSON performs a GET against the bound base URL and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	base := c.BaseURL()
	if base == "" {
		return fmt.Errorf("data API base URL is not bound")
	}
	requestURL := base + "/" + strings.TrimLeft(path, "/")

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	endpoint := endpointLabel(path)
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			metrics.DataAPIFetches.WithLabelValues(endpoint, "error").Inc()
			c.logger.Error("Failed to execute request to data API", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			metrics.DataAPIFetches.WithLabelValues(endpoint, "error").Inc()
			c.logger.Error("Failed to execute request to data API (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		metrics.DataAPIFetches.WithLabelValues(endpoint, "error").Inc()
		c.logger.Error("Data API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return fmt.Errorf("data API request to %s failed with status %d: %s", requestURL, resp.StatusCode(), string(rawBody))
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		metrics.DataAPIFetches.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("failed to unmarshal data API response from %s: %w. Body: %s", requestURL, err, string(rawBody))
	}
	metrics.DataAPIFetches.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

// endpointLabel reduces a path with ids to a stable metric label.
func endpointLabel(path string) string {
	if idx := strings.IndexAny(path, "0123456789"); idx > 0 {
		path = path[:idx]
	}
	return strings.Trim(path, "/")
}

type dashboardResponse struct {
	DashboardInfo entity.DashboardInfo `json:"DashboardInfo"`
}

// GetDashboardInfo fetches the aggregate round snapshot, served from cache
// within the TTL to bound request volume during rapid re-polling.
func (c *Client) GetDashboardInfo(ctx context.Context) (entity.DashboardInfo, error) {
	if cached, ok := c.cache.Get(cacheKeyDashboard); ok {
		if info, ok := cached.(entity.DashboardInfo); ok {
			return info, nil
		}
	}
	var resp dashboardResponse
	if err := c.getJSON(ctx, "statistics/dashboard", &resp); err != nil {
		return entity.DashboardInfo{}, err
	}
	c.cache.SetDefault(cacheKeyDashboard, resp.DashboardInfo)
	return resp.DashboardInfo, nil
}

type bidCountResponse struct {
	NumBids uint64 `json:"NumBids"`
}

// GetRoundBidCounts fetches the round's total bid count and the user's bid
// count for the same explicit round number. The two requests run concurrently;
// because the round is pinned by the caller, a round rollover mid-fetch cannot
// mix counts from different rounds.
func (c *Client) GetRoundBidCounts(ctx context.Context, roundNum uint64, userAddr string) (entity.RoundBidCounts, error) {
	var totalResp, userResp bidCountResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, fmt.Sprintf("bid/count/%d", roundNum), &totalResp)
	})
	g.Go(func() error {
		return c.getJSON(gctx, fmt.Sprintf("bid/count/%d/%s", roundNum, userAddr), &userResp)
	})
	if err := g.Wait(); err != nil {
		return entity.RoundBidCounts{}, err
	}

	return entity.RoundBidCounts{
		RoundNum:  roundNum,
		TotalBids: totalResp.NumBids,
		UserBids:  userResp.NumBids,
	}, nil
}

type bidListResponse struct {
	Bids []entity.BidRecord `json:"Bids"`
}

// GetBidsByRound lists all bids placed in the given round.
func (c *Client) GetBidsByRound(ctx context.Context, roundNum uint64) ([]entity.BidRecord, error) {
	var resp bidListResponse
	if err := c.getJSON(ctx, fmt.Sprintf("bid/round/%d", roundNum), &resp); err != nil {
		return nil, err
	}
	return resp.Bids, nil
}

type bidInfoResponse struct {
	BidInfo entity.BidRecord `json:"BidInfo"`
}

// GetBidDetails fetches one bid by its event log id.
func (c *Client) GetBidDetails(ctx context.Context, evtLogID uint64) (entity.BidRecord, error) {
	var resp bidInfoResponse
	if err := c.getJSON(ctx, fmt.Sprintf("bid/info/%d", evtLogID), &resp); err != nil {
		return entity.BidRecord{}, err
	}
	return resp.BidInfo, nil
}

type roundListResponse struct {
	Rounds []entity.RoundRecord `json:"Rounds"`
}

// GetRoundList lists all rounds.
func (c *Client) GetRoundList(ctx context.Context) ([]entity.RoundRecord, error) {
	var resp roundListResponse
	if err := c.getJSON(ctx, "round/list", &resp); err != nil {
		return nil, err
	}
	return resp.Rounds, nil
}

type nftListResponse struct {
	NFTs []entity.NFTRecord `json:"CosmicSignatureTokens"`
}

// GetNFTList lists all minted Cosmic Signature NFTs.
func (c *Client) GetNFTList(ctx context.Context) ([]entity.NFTRecord, error) {
	var resp nftListResponse
	if err := c.getJSON(ctx, "cst/list", &resp); err != nil {
		return nil, err
	}
	return resp.NFTs, nil
}

type nftInfoResponse struct {
	NFT entity.NFTRecord `json:"TokenInfo"`
}

// GetNFTInfo fetches one NFT by token id.
func (c *Client) GetNFTInfo(ctx context.Context, tokenID uint64) (entity.NFTRecord, error) {
	var resp nftInfoResponse
	if err := c.getJSON(ctx, fmt.Sprintf("cst/info/%d", tokenID), &resp); err != nil {
		return entity.NFTRecord{}, err
	}
	return resp.NFT, nil
}

type stakingActionsResponse struct {
	Actions []entity.StakingAction `json:"StakingActions"`
}

// GetStakingActions lists stake/unstake events for an address.
func (c *Client) GetStakingActions(ctx context.Context, stakerAddr string) ([]entity.StakingAction, error) {
	var resp stakingActionsResponse
	if err := c.getJSON(ctx, "staking/actions/by_user/"+stakerAddr, &resp); err != nil {
		return nil, err
	}
	return resp.Actions, nil
}

type donationsResponse struct {
	Donations []entity.DonationRecord `json:"Donations"`
}

// GetDonations lists ETH donations made to the given round.
func (c *Client) GetDonations(ctx context.Context, roundNum uint64) ([]entity.DonationRecord, error) {
	var resp donationsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("donations/eth/by_round/%d", roundNum), &resp); err != nil {
		return nil, err
	}
	return resp.Donations, nil
}

type raffleDepositsResponse struct {
	Deposits []entity.RaffleDeposit `json:"RaffleDeposits"`
}

// GetRaffleDeposits lists ETH raffle wins credited to an address.
func (c *Client) GetRaffleDeposits(ctx context.Context, winnerAddr string) ([]entity.RaffleDeposit, error) {
	var resp raffleDepositsResponse
	if err := c.getJSON(ctx, "raffle/deposits/by_user/"+winnerAddr, &resp); err != nil {
		return nil, err
	}
	return resp.Deposits, nil
}

type charityLedgerResponse struct {
	Deposits []entity.CharityDeposit `json:"CharityDonations"`
}

// GetCharityLedger lists the per-round charity shares.
func (c *Client) GetCharityLedger(ctx context.Context) ([]entity.CharityDeposit, error) {
	var resp charityLedgerResponse
	if err := c.getJSON(ctx, "charity/deposits", &resp); err != nil {
		return nil, err
	}
	return resp.Deposits, nil
}

type userProfileResponse struct {
	UserInfo entity.UserProfile `json:"UserInfo"`
}

// GetUserProfile fetches one address's participation history.
func (c *Client) GetUserProfile(ctx context.Context, addr string) (entity.UserProfile, error) {
	var resp userProfileResponse
	if err := c.getJSON(ctx, "user/info/"+addr, &resp); err != nil {
		return entity.UserProfile{}, err
	}
	return resp.UserInfo, nil
}

type leaderboardResponse struct {
	Entries []entity.LeaderboardEntry `json:"Leaderboard"`
}

// GetLeaderboard fetches the global bidder leaderboard.
func (c *Client) GetLeaderboard(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	var resp leaderboardResponse
	if err := c.getJSON(ctx, "statistics/leaderboard", &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// GetServerTime fetches the indexer's clock, cached briefly like the dashboard.
func (c *Client) GetServerTime(ctx context.Context) (entity.ServerTime, error) {
	if cached, ok := c.cache.Get(cacheKeyServerTime); ok {
		if st, ok := cached.(entity.ServerTime); ok {
			return st, nil
		}
	}
	var st entity.ServerTime
	if err := c.getJSON(ctx, "time/current", &st); err != nil {
		return entity.ServerTime{}, err
	}
	c.cache.SetDefault(cacheKeyServerTime, st)
	return st, nil
}
