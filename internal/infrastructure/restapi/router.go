package restapi

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the gateway's HTTP surface onto the router.
func RegisterRoutes(router *gin.Engine, gateway *GatewayHandler, proxy *ProxyHandler) {
	// The proxy accepts every method it forwards.
	router.Any("/api/proxy", proxy.Handle)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/odds/:address", gateway.GetOddsHandler)
		v1.DELETE("/odds/:address/watch", gateway.UnwatchOddsHandler)
		v1.POST("/visibility", gateway.SetVisibilityHandler)
		v1.GET("/network/status", gateway.GetNetworkStatusHandler)
		v1.GET("/networks", gateway.GetNetworksHandler)
		v1.GET("/dashboard", gateway.GetDashboardHandler)
		v1.GET("/time", gateway.GetServerTimeHandler)
		v1.GET("/rounds", gateway.GetRoundListHandler)
		v1.GET("/rounds/:roundNum/bids", gateway.GetRoundBidsHandler)
		v1.GET("/rounds/:roundNum/donations", gateway.GetRoundDonationsHandler)
		v1.GET("/bids/:evtLogId", gateway.GetBidDetailsHandler)
		v1.GET("/nfts", gateway.GetNFTListHandler)
		v1.GET("/nfts/:tokenId", gateway.GetNFTInfoHandler)
		v1.GET("/staking/:address", gateway.GetStakingActionsHandler)
		v1.GET("/raffle/deposits/:address", gateway.GetRaffleDepositsHandler)
		v1.GET("/charity", gateway.GetCharityLedgerHandler)
		v1.GET("/user/:address", gateway.GetUserProfileHandler)
		v1.GET("/leaderboard", gateway.GetLeaderboardHandler)
		v1.GET("/game/state", gateway.GetGameStateHandler)
		v1.POST("/bid/validate", gateway.ValidateBidHandler)
	}

	router.GET("/health", gateway.HealthHandler)
}
