// Package netsync keeps three notions of "network" coherent: the wallet's
// connected chain, the configured required chain, and the data API base URL.
// The first two are reconciled through an explicit state machine with an
// automatic switch flow; the third is bound once from configuration and is
// deliberately independent of whatever chain the wallet ends up on.
package netsync

import (
	"context"
	"errors"
	"sync"
	"time"

	"cosmic_gateway/internal/app/port"
	"cosmic_gateway/internal/app/service/txerror"
	"cosmic_gateway/internal/domain/entity"
	"cosmic_gateway/internal/infrastructure/configloader"
	"cosmic_gateway/internal/pkg/scheduler"
	"cosmic_gateway/internal/pkg/utils"
	"cosmic_gateway/pkg/metrics"
)

// reconcileInterval drives periodic re-evaluation of the wallet chain id.
const reconcileInterval = 2 * time.Second

// Service implements the network synchronization state machine.
type Service struct {
	wallet      port.WalletBridge
	api         port.DataAPIClient
	required    entity.NetworkDefinition
	switchDelay time.Duration
	logger      port.Logger

	mu            sync.Mutex
	phase         entity.SwitchPhase
	walletChainID uint64
	lastError     string
	// attempted guards the one-shot auto-switch: a new attempt is armed only
	// after the mismatch clears (correct network or disconnect).
	attempted    bool
	pendingTimer *time.Timer

	poller *scheduler.Poller

	// switchFn is swapped in tests to observe attempts without a wallet delay.
	switchFn func(ctx context.Context)
}

// NewService creates the synchronization service for the required network.
func NewService(wallet port.WalletBridge, api port.DataAPIClient, required entity.NetworkDefinition, cfg *configloader.Config, log port.Logger) *Service {
	s := &Service{
		wallet:      wallet,
		api:         api,
		required:    required,
		switchDelay: time.Duration(cfg.NetSync.SwitchDelayMillis) * time.Millisecond,
		logger:      log,
		phase:       entity.PhaseDisconnected,
	}
	s.switchFn = s.AttemptSwitch
	return s
}

// BindAPIEndpoint binds the data API client's base URL from the configured
// required network (with config overrides taking precedence). Called once at
// startup; wallet chain changes never re-trigger it.
func (s *Service) BindAPIEndpoint(overrides map[uint64]string) {
	baseURL := s.required.DataAPIBaseURL
	if override, ok := overrides[s.required.ChainID]; ok && override != "" {
		baseURL = override
	}
	s.api.SetBaseURL(baseURL)
	s.logger.Info("Data API endpoint bound to required network",
		"network", s.required.Name, "chain_id", s.required.ChainID, "base_url", baseURL)
}

// StartReconcileLoop begins periodic reconciliation of the wallet state.
func (s *Service) StartReconcileLoop(ctx context.Context) {
	s.poller = scheduler.NewPoller("netsync_reconcile", reconcileInterval, 0, func(tickCtx context.Context) {
		s.Reconcile(tickCtx)
	}, s.logger)
	s.poller.Start(ctx)
}

// Stop halts the reconciliation loop and any pending switch trigger.
func (s *Service) Stop() {
	if s.poller != nil {
		s.poller.Stop()
	}
	s.mu.Lock()
	if s.pendingTimer != nil {
		s.pendingTimer.Stop()
		s.pendingTimer = nil
	}
	s.mu.Unlock()
}

// Reconcile re-evaluates the wallet connection and chain id and advances the
// state machine. On a freshly detected mismatch it arms exactly one automatic
// switch attempt, fired after the configured delay so the wallet's own
// connection initialization is not raced.
func (s *Service) Reconcile(ctx context.Context) {
	if !s.wallet.IsConnected() {
		s.toDisconnected()
		return
	}

	chainID, err := s.wallet.ChainID(ctx)
	if err != nil {
		s.logger.Warn("Failed to read wallet chain id", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.walletChainID = chainID

	if chainID == s.required.ChainID {
		s.phase = entity.PhaseConnectedCorrectNetwork
		s.lastError = ""
		s.attempted = false
		if s.pendingTimer != nil {
			s.pendingTimer.Stop()
			s.pendingTimer = nil
		}
		return
	}

	if s.phase == entity.PhaseSwitching {
		return
	}
	s.phase = entity.PhaseConnectedWrongNetwork

	if s.attempted || s.pendingTimer != nil {
		return
	}
	s.logger.Info("Wallet connected to wrong network, scheduling switch",
		"wallet_chain_id", chainID, "required_chain_id", s.required.ChainID, "delay", s.switchDelay.String())
	s.pendingTimer = time.AfterFunc(s.switchDelay, s.fireSwitch)
}

func (s *Service) toDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = entity.PhaseDisconnected
	s.walletChainID = 0
	s.lastError = ""
	s.attempted = false
	if s.pendingTimer != nil {
		s.pendingTimer.Stop()
		s.pendingTimer = nil
	}
}

// fireSwitch is the delayed trigger target. It runs the switch only when the
// arming timer is still current, so a direct AttemptSwitch call cannot race it
// into a second attempt.
func (s *Service) fireSwitch() {
	s.mu.Lock()
	if s.pendingTimer == nil {
		s.mu.Unlock()
		return
	}
	s.pendingTimer = nil
	s.mu.Unlock()
	s.switchFn(context.Background())
}

// AttemptSwitch runs the two-tier switch flow:
//
//  1. the wallet library's standard switch-chain request;
//  2. on failure, a raw wallet_switchEthereumChain;
//  3. if the raw switch reports an unrecognized chain (code 4902), a
//     wallet_addEthereumChain with the full network descriptor, which most
//     wallets auto-switch to after adding.
//
// Any terminal failure is classified and its user-facing message retained for
// display; the machine returns to ConnectedWrongNetwork and the guard is not
// dismissible until resolved.
func (s *Service) AttemptSwitch(ctx context.Context) {
	s.mu.Lock()
	if s.phase != entity.PhaseConnectedWrongNetwork {
		s.mu.Unlock()
		return
	}
	s.phase = entity.PhaseSwitching
	s.attempted = true
	if s.pendingTimer != nil {
		s.pendingTimer.Stop()
		s.pendingTimer = nil
	}
	s.mu.Unlock()

	err := s.wallet.SwitchChain(ctx, s.required.ChainID)
	if err != nil {
		s.logger.Warn("Standard switch-chain request failed, falling back to raw request", "error", err)
		err = s.rawSwitch(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		classified := txerror.Classify(err)
		s.phase = entity.PhaseConnectedWrongNetwork
		s.lastError = classified.Message
		metrics.SwitchAttempts.WithLabelValues("failure").Inc()
		s.logger.Error("Network switch failed",
			"category", classified.Category.String(), "retryable", classified.Retryable, "error", err)
		return
	}
	s.phase = entity.PhaseConnectedCorrectNetwork
	s.walletChainID = s.required.ChainID
	s.lastError = ""
	metrics.SwitchAttempts.WithLabelValues("success").Inc()
	s.logger.Info("Wallet switched to required network", "chain_id", s.required.ChainID)
}

func (s *Service) rawSwitch(ctx context.Context) error {
	hexChainID := utils.ChainIDToHex(s.required.ChainID)

	err := s.wallet.RawRequest(ctx, "wallet_switchEthereumChain", []any{
		map[string]string{"chainId": hexChainID},
	})
	if err == nil {
		return nil
	}

	var walletErr *entity.WalletError
	if !errors.As(err, &walletErr) || walletErr.Code != entity.WalletErrUnrecognizedChain {
		return err
	}

	s.logger.Info("Required chain unknown to wallet, requesting add", "chain_id", s.required.ChainID)
	return s.wallet.RawRequest(ctx, "wallet_addEthereumChain", []any{
		map[string]any{
			"chainId":           hexChainID,
			"chainName":         s.required.Name,
			"nativeCurrency":    s.required.NativeCurrency,
			"rpcUrls":           s.required.RPCURLs,
			"blockExplorerUrls": explorerURLs(s.required),
		},
	})
}

func explorerURLs(def entity.NetworkDefinition) []string {
	if def.BlockExplorerURL == "" {
		return nil
	}
	return []string{def.BlockExplorerURL}
}

// State returns a snapshot of the machine for status endpoints and the guard UI.
func (s *Service) State() entity.SwitchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.SwitchState{
		Phase:            s.phase,
		IsConnected:      s.phase != entity.PhaseDisconnected,
		IsCorrectNetwork: s.phase == entity.PhaseConnectedCorrectNetwork,
		IsSwitching:      s.phase == entity.PhaseSwitching,
		WalletChainID:    s.walletChainID,
		RequiredChainID:  s.required.ChainID,
		LastError:        s.lastError,
	}
}
