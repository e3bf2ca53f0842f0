package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"cosmic_gateway/internal/app/port"
	"cosmic_gateway/internal/app/service/netsync"
	"cosmic_gateway/internal/app/service/raffle"
	"cosmic_gateway/internal/infrastructure/configloader"
	"cosmic_gateway/internal/infrastructure/dataapi"
	evmclient "cosmic_gateway/internal/infrastructure/network/client"
	networkdefinition "cosmic_gateway/internal/infrastructure/network/definition"
	"cosmic_gateway/internal/infrastructure/restapi"
	"cosmic_gateway/internal/infrastructure/walletbridge"
	"cosmic_gateway/internal/pkg/logger"
	"cosmic_gateway/internal/pkg/utils"
	"cosmic_gateway/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{})
	stdLogger := slog.New(slogHandler)
	slog.SetDefault(stdLogger)

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitSlog(cfg.Logging.Level)
	appLogger := logger.NewSlogAdapter()
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	netDefs, err := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg.RequiredNetwork)
	if err != nil {
		log.Fatalf("Failed to initialize network definitions: %v", err)
	}
	required := netDefs.RequiredNetwork()

	apiClient := dataapi.NewClient(
		time.Duration(cfg.DataAPI.RequestTimeoutMillis)*time.Millisecond,
		time.Duration(cfg.DataAPI.CacheTTLSeconds)*time.Second,
		time.Duration(cfg.DataAPI.CacheCleanupSeconds)*time.Second,
		zapLogger,
	)
	zapLogger.Info("Data API client initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The wallet provider is optional; without it the gateway serves the read
	// path only and the switch guard reports Disconnected.
	var wallet port.WalletBridge
	if cfg.Wallet.ProviderURL != "" {
		bridge, bridgeErr := walletbridge.NewRPCBridge(ctx, cfg.Wallet.ProviderURL, appLogger)
		if bridgeErr != nil {
			zapLogger.Warn("Failed to connect wallet provider bridge, continuing without a wallet session", zap.Error(bridgeErr))
		} else {
			wallet = bridge
		}
	}
	if wallet == nil {
		wallet = (*walletbridge.RPCBridge)(nil)
	}

	netSyncSvc := netsync.NewService(wallet, apiClient, required, cfg, appLogger)
	netSyncSvc.BindAPIEndpoint(cfg.DataAPI.BaseURLOverrides)
	netSyncSvc.StartReconcileLoop(ctx)
	defer netSyncSvc.Stop()
	zapLogger.Info("Network synchronization service started",
		zap.String("required_network", required.Name), zap.Uint64("chain_id", required.ChainID))

	sampler := raffle.NewSampler(apiClient, cfg, appLogger)
	zapLogger.Info("Raffle odds sampler initialized",
		zap.Uint64("eth_winners", cfg.Raffle.ETHWinners), zap.Uint64("nft_winners", cfg.Raffle.NFTWinners))

	// On-chain reads are best-effort at startup: an unreachable RPC endpoint
	// must not take down the proxy and the data API passthrough.
	var gameReader port.GameReader
	if cfg.GameContract != "" {
		reader, readerErr := evmclient.NewEVMGameReader(
			required,
			cfg.GameContract,
			time.Duration(cfg.RPCClient.ConnectionTimeoutMs)*time.Millisecond,
			time.Duration(cfg.RPCClient.CallTimeoutMs)*time.Millisecond,
		)
		if readerErr != nil {
			zapLogger.Warn("Failed to connect game contract reader", zap.Error(readerErr))
		} else {
			gameReader = reader
			zapLogger.Info("Game contract reader initialized", zap.String("contract", cfg.GameContract))
		}
	}

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(restapi.ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	gatewayHandler := restapi.NewGatewayHandler(ctx, sampler, netSyncSvc, apiClient, netDefs, gameReader, cfg.Assets.BaseURL)
	proxyHandler := restapi.NewProxyHandler(cfg.Proxy, zapLogger)
	restapi.RegisterRoutes(router, gatewayHandler, proxyHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", "/metrics"))

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
