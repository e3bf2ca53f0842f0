package restapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cosmic_gateway/internal/app/port"
	"cosmic_gateway/internal/app/service/netsync"
	"cosmic_gateway/internal/app/service/raffle"
	"cosmic_gateway/internal/app/service/txerror"
	"cosmic_gateway/internal/domain/entity"
	"cosmic_gateway/internal/pkg/utils"
)

// GatewayHandler serves the gateway's own read endpoints: raffle odds, network
// status, dashboard and indexer passthrough, and on-chain game state.
type GatewayHandler struct {
	// appCtx bounds the background odds pollers started from odds requests;
	// request contexts end with the request and cannot own them.
	appCtx        context.Context
	sampler       *raffle.Sampler
	netSync       *netsync.Service
	api           port.DataAPIClient
	netDefs       port.NetworkDefinitionProvider
	gameReader    port.GameReader // nil when no RPC endpoint could be dialed
	assetsBaseURL string
}

// NewGatewayHandler creates a new GatewayHandler.
func NewGatewayHandler(
	appCtx context.Context,
	sampler *raffle.Sampler,
	netSync *netsync.Service,
	api port.DataAPIClient,
	netDefs port.NetworkDefinitionProvider,
	gameReader port.GameReader,
	assetsBaseURL string,
) *GatewayHandler {
	return &GatewayHandler{
		appCtx:        appCtx,
		sampler:       sampler,
		netSync:       netSync,
		api:           api,
		netDefs:       netDefs,
		gameReader:    gameReader,
		assetsBaseURL: assetsBaseURL,
	}
}

// GetOddsHandler handles GET /api/v1/odds/:address.
func (h *GatewayHandler) GetOddsHandler(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	sample, err := h.sampler.Sample(c.Request.Context(), address)
	if err != nil {
		// Fall back to the last known sample so a transient indexer failure
		// does not blank the display.
		if last, ok := h.sampler.LastSample(address); ok {
			c.JSON(http.StatusOK, gin.H{"sample": last, "stale": true})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	// First successful fetch starts a background poller keeping the address fresh.
	h.sampler.Watch(h.appCtx, address)
	c.JSON(http.StatusOK, gin.H{"sample": sample, "stale": false})
}

// UnwatchOddsHandler handles DELETE /api/v1/odds/:address/watch.
func (h *GatewayHandler) UnwatchOddsHandler(c *gin.Context) {
	address := c.Param("address")
	h.sampler.Unwatch(address)
	c.JSON(http.StatusOK, gin.H{"watching": false})
}

type visibilityRequest struct {
	Visible *bool `json:"visible"`
}

// SetVisibilityHandler handles POST /api/v1/visibility. Clients report their
// document visibility here; hidden clients stop consuming odds refreshes.
func (h *GatewayHandler) SetVisibilityHandler(c *gin.Context) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Visible == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visible field is required"})
		return
	}
	h.sampler.SetVisible(*req.Visible)
	c.JSON(http.StatusOK, gin.H{"visible": *req.Visible})
}

// GetNetworkStatusHandler handles GET /api/v1/network/status.
func (h *GatewayHandler) GetNetworkStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":          h.netSync.State(),
		"dataApiBaseUrl": h.api.BaseURL(),
	})
}

// GetNetworksHandler handles GET /api/v1/networks.
func (h *GatewayHandler) GetNetworksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"networks": h.netDefs.GetAllNetworkDefinitions()})
}

// GetDashboardHandler handles GET /api/v1/dashboard.
func (h *GatewayHandler) GetDashboardHandler(c *gin.Context) {
	info, err := h.api.GetDashboardInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": info})
}

// GetServerTimeHandler handles GET /api/v1/time.
func (h *GatewayHandler) GetServerTimeHandler(c *gin.Context) {
	serverTime, err := h.api.GetServerTime(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, serverTime)
}

// GetRoundListHandler handles GET /api/v1/rounds.
func (h *GatewayHandler) GetRoundListHandler(c *gin.Context) {
	rounds, err := h.api.GetRoundList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

// GetRoundBidsHandler handles GET /api/v1/rounds/:roundNum/bids.
func (h *GatewayHandler) GetRoundBidsHandler(c *gin.Context) {
	roundNum, ok := uintParam(c, "roundNum")
	if !ok {
		return
	}
	bids, err := h.api.GetBidsByRound(c.Request.Context(), roundNum)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roundNum": roundNum, "bids": bids})
}

// GetRoundDonationsHandler handles GET /api/v1/rounds/:roundNum/donations.
func (h *GatewayHandler) GetRoundDonationsHandler(c *gin.Context) {
	roundNum, ok := uintParam(c, "roundNum")
	if !ok {
		return
	}
	donations, err := h.api.GetDonations(c.Request.Context(), roundNum)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roundNum": roundNum, "donations": donations})
}

// GetBidDetailsHandler handles GET /api/v1/bids/:evtLogId.
func (h *GatewayHandler) GetBidDetailsHandler(c *gin.Context) {
	evtLogID, ok := uintParam(c, "evtLogId")
	if !ok {
		return
	}
	bid, err := h.api.GetBidDetails(c.Request.Context(), evtLogID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bid": bid})
}

// GetNFTListHandler handles GET /api/v1/nfts.
func (h *GatewayHandler) GetNFTListHandler(c *gin.Context) {
	nfts, err := h.api.GetNFTList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nfts": nfts})
}

// GetNFTInfoHandler handles GET /api/v1/nfts/:tokenId. The response carries the
// media URLs derived from the NFT's seed and the configured assets host.
func (h *GatewayHandler) GetNFTInfoHandler(c *gin.Context) {
	tokenID, ok := uintParam(c, "tokenId")
	if !ok {
		return
	}
	nft, err := h.api.GetNFTInfo(c.Request.Context(), tokenID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	resp := gin.H{"nft": nft}
	if h.assetsBaseURL != "" && nft.Seed != "" {
		resp["imageUrl"] = h.assetsBaseURL + nft.Seed + ".png"
		resp["videoUrl"] = h.assetsBaseURL + nft.Seed + ".mp4"
	}
	c.JSON(http.StatusOK, resp)
}

// GetStakingActionsHandler handles GET /api/v1/staking/:address.
func (h *GatewayHandler) GetStakingActionsHandler(c *gin.Context) {
	actions, err := h.api.GetStakingActions(c.Request.Context(), c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stakingActions": actions})
}

// GetRaffleDepositsHandler handles GET /api/v1/raffle/deposits/:address.
func (h *GatewayHandler) GetRaffleDepositsHandler(c *gin.Context) {
	deposits, err := h.api.GetRaffleDeposits(c.Request.Context(), c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"raffleDeposits": deposits})
}

// GetCharityLedgerHandler handles GET /api/v1/charity.
func (h *GatewayHandler) GetCharityLedgerHandler(c *gin.Context) {
	deposits, err := h.api.GetCharityLedger(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"charityDeposits": deposits})
}

// GetUserProfileHandler handles GET /api/v1/user/:address.
func (h *GatewayHandler) GetUserProfileHandler(c *gin.Context) {
	profile, err := h.api.GetUserProfile(c.Request.Context(), c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// GetLeaderboardHandler handles GET /api/v1/leaderboard.
func (h *GatewayHandler) GetLeaderboardHandler(c *gin.Context) {
	entries, err := h.api.GetLeaderboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// uintParam parses a numeric path parameter, answering 400 itself on failure.
func uintParam(c *gin.Context, name string) (uint64, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a non-negative integer"})
		return 0, false
	}
	return value, true
}

// GetGameStateHandler handles GET /api/v1/game/state.
func (h *GatewayHandler) GetGameStateHandler(c *gin.Context) {
	if h.gameReader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no RPC connection to the required network"})
		return
	}
	state, err := h.gameReader.ReadGameState(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"roundNum":       state.RoundNum,
		"bidPriceEth":    utils.FormatWei(state.BidPriceWei, 18),
		"cstBidPriceEth": utils.FormatWei(state.CstBidPriceWei, 18),
		"lastBidderAddr": state.LastBidderAddr,
		"prizeAmountEth": utils.FormatWei(state.PrizeAmountWei, 18),
		"prizeTimeSec":   strconv.FormatInt(state.PrizeTimeSec, 10),
	})
}

type validateBidRequest struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	NFTID     uint64 `json:"nftId"`
	DonateETH bool   `json:"donateEth"`
}

// ValidateBidHandler handles POST /api/v1/bid/validate. It runs the
// pre-submission checks a client must pass before signing anything; failures
// come back as the notification the client should display.
func (h *GatewayHandler) ValidateBidHandler(c *gin.Context) {
	var req validateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bidType, err := entity.ParseBidType(req.Type)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid":        false,
			"notification": txerror.ValidationFailure(err.Error()).Notification(),
		})
		return
	}

	intent := entity.BidIntent{
		Type:      bidType,
		Message:   req.Message,
		NFTID:     req.NFTID,
		DonateETH: req.DonateETH,
	}
	if err := intent.Validate(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid":        false,
			"notification": txerror.ValidationFailure(err.Error()).Notification(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// HealthHandler handles GET /health.
func (h *GatewayHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "cosmic_gateway"})
}
