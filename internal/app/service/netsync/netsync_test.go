package netsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cosmic_gateway/internal/app/port"
	"cosmic_gateway/internal/domain/entity"
	"cosmic_gateway/internal/infrastructure/configloader"
	"cosmic_gateway/internal/pkg/logger"
)

type fakeWallet struct {
	mu           sync.Mutex
	connected    bool
	chainID      uint64
	switchErr    error
	rawErrors    map[string]error
	switchCalls  int
	rawCalls     []string
	autoSwitchTo uint64 // chain id applied when a switch/add succeeds
}

func (w *fakeWallet) IsConnected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

func (w *fakeWallet) ChainID(_ context.Context) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chainID, nil
}

func (w *fakeWallet) SwitchChain(_ context.Context, chainID uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.switchCalls++
	if w.switchErr != nil {
		return w.switchErr
	}
	w.chainID = chainID
	return nil
}

func (w *fakeWallet) RawRequest(_ context.Context, method string, _ any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rawCalls = append(w.rawCalls, method)
	if err, ok := w.rawErrors[method]; ok && err != nil {
		return err
	}
	if w.autoSwitchTo != 0 {
		w.chainID = w.autoSwitchTo
	}
	return nil
}

type fakeAPI struct {
	port.DataAPIClient
	mu      sync.Mutex
	baseURL string
	sets    int
}

func (a *fakeAPI) SetBaseURL(baseURL string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.baseURL = baseURL
	a.sets++
}

func (a *fakeAPI) BaseURL() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.baseURL
}

var testNetwork = entity.NetworkDefinition{
	ChainID:    42161,
	Name:       "Arbitrum One",
	Identifier: "arbitrum_one",
	NativeCurrency: entity.NativeCurrency{
		Name: "Ether", Symbol: "ETH", Decimals: 18,
	},
	RPCURLs:          []string{"https://arb1.arbitrum.io/rpc"},
	BlockExplorerURL: "https://arbiscan.io",
	DataAPIBaseURL:   "http://indexer.example/api/",
}

func testConfig(delayMs int64) *configloader.Config {
	return &configloader.Config{
		NetSync: configloader.NetSyncConfig{SwitchDelayMillis: delayMs},
	}
}

func TestReconcile_CorrectNetwork_NoSwitch(t *testing.T) {
	wallet := &fakeWallet{connected: true, chainID: 42161}
	svc := NewService(wallet, &fakeAPI{}, testNetwork, testConfig(10), logger.NewSlogAdapter())

	svc.Reconcile(context.Background())

	state := svc.State()
	if !state.IsCorrectNetwork {
		t.Fatalf("expected correct network, got phase %s", state.Phase)
	}
	if state.IsSwitching || state.LastError != "" {
		t.Errorf("unexpected switching/error state: %+v", state)
	}

	time.Sleep(50 * time.Millisecond)
	if wallet.switchCalls != 0 {
		t.Errorf("no switch should be triggered on correct network, got %d calls", wallet.switchCalls)
	}
}

func TestReconcile_Mismatch_SchedulesExactlyOneSwitch(t *testing.T) {
	wallet := &fakeWallet{connected: true, chainID: 1}
	svc := NewService(wallet, &fakeAPI{}, testNetwork, testConfig(10), logger.NewSlogAdapter())

	var mu sync.Mutex
	attempts := 0
	svc.switchFn = func(ctx context.Context) {
		mu.Lock()
		attempts++
		mu.Unlock()
		svc.AttemptSwitch(ctx)
	}

	// Several reconciles before the delay elapses must still arm one attempt.
	svc.Reconcile(context.Background())
	svc.Reconcile(context.Background())
	svc.Reconcile(context.Background())

	if phase := svc.State().Phase; phase != entity.PhaseConnectedWrongNetwork {
		t.Fatalf("expected wrong-network phase, got %s", phase)
	}

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	got := attempts
	mu.Unlock()
	if got != 1 {
		t.Fatalf("expected exactly one switch attempt, got %d", got)
	}
	if !svc.State().IsCorrectNetwork {
		t.Errorf("switch succeeded in fake wallet, expected correct network, got %+v", svc.State())
	}
}

func TestAttemptSwitch_RejectionRetainsErrorAndGuard(t *testing.T) {
	rejection := &entity.WalletError{Code: entity.WalletErrUserRejected, Message: "User rejected the request"}
	wallet := &fakeWallet{
		connected: true,
		chainID:   1,
		switchErr: errors.New("switch not supported"),
		rawErrors: map[string]error{"wallet_switchEthereumChain": rejection},
	}
	svc := NewService(wallet, &fakeAPI{}, testNetwork, testConfig(1), logger.NewSlogAdapter())

	svc.Reconcile(context.Background())
	svc.AttemptSwitch(context.Background())

	state := svc.State()
	if state.Phase != entity.PhaseConnectedWrongNetwork {
		t.Fatalf("expected wrong-network after rejection, got %s", state.Phase)
	}
	// The retained error is the classified user-facing message, not the raw
	// provider string.
	if state.LastError != "transaction canceled in wallet" {
		t.Errorf("expected classified rejection message, got %q", state.LastError)
	}

	// The guard stays armed against retry loops: further reconciles do not
	// schedule another automatic attempt.
	svc.Reconcile(context.Background())
	time.Sleep(30 * time.Millisecond)
	if wallet.switchCalls != 1 {
		t.Errorf("expected no automatic retry, got %d switch calls", wallet.switchCalls)
	}
}

func TestAttemptSwitch_NetworkFailureClassified(t *testing.T) {
	wallet := &fakeWallet{
		connected: true,
		chainID:   1,
		switchErr: errors.New("switch not supported"),
		rawErrors: map[string]error{"wallet_switchEthereumChain": errors.New("dial tcp: connection refused")},
	}
	svc := NewService(wallet, &fakeAPI{}, testNetwork, testConfig(1), logger.NewSlogAdapter())

	svc.Reconcile(context.Background())
	svc.AttemptSwitch(context.Background())

	if got := svc.State().LastError; got != "network error - please try again" {
		t.Errorf("expected classified network message, got %q", got)
	}
}

func TestAttemptSwitch_UnrecognizedChainFallsBackToAdd(t *testing.T) {
	wallet := &fakeWallet{
		connected:    true,
		chainID:      1,
		switchErr:    errors.New("switch not supported"),
		autoSwitchTo: 42161,
		rawErrors: map[string]error{
			"wallet_switchEthereumChain": &entity.WalletError{
				Code:    entity.WalletErrUnrecognizedChain,
				Message: "Unrecognized chain ID",
			},
		},
	}
	svc := NewService(wallet, &fakeAPI{}, testNetwork, testConfig(1), logger.NewSlogAdapter())

	svc.Reconcile(context.Background())
	svc.AttemptSwitch(context.Background())

	if len(wallet.rawCalls) != 2 ||
		wallet.rawCalls[0] != "wallet_switchEthereumChain" ||
		wallet.rawCalls[1] != "wallet_addEthereumChain" {
		t.Fatalf("expected raw switch then add, got %v", wallet.rawCalls)
	}
	if !svc.State().IsCorrectNetwork {
		t.Errorf("add-then-switch should end on the correct network, got %+v", svc.State())
	}
}

func TestBindAPIEndpoint_IndependentOfWalletChain(t *testing.T) {
	wallet := &fakeWallet{connected: true, chainID: 42161}
	api := &fakeAPI{}
	svc := NewService(wallet, api, testNetwork, testConfig(1), logger.NewSlogAdapter())

	svc.BindAPIEndpoint(nil)
	bound := api.BaseURL()
	if bound != testNetwork.DataAPIBaseURL {
		t.Fatalf("expected base URL from network definition, got %q", bound)
	}

	// Wallet wandering to other chains must never rebind the data API.
	for _, chainID := range []uint64{1, 10, 421614} {
		wallet.mu.Lock()
		wallet.chainID = chainID
		wallet.mu.Unlock()
		svc.Reconcile(context.Background())
	}
	if api.BaseURL() != bound {
		t.Errorf("base URL changed with wallet chain: %q -> %q", bound, api.BaseURL())
	}
	if api.sets != 1 {
		t.Errorf("expected a single bind, got %d", api.sets)
	}
}

func TestBindAPIEndpoint_OverrideWins(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(&fakeWallet{}, api, testNetwork, testConfig(1), logger.NewSlogAdapter())

	override := fmt.Sprintf("http://localhost:7070/api/%d/", testNetwork.ChainID)
	svc.BindAPIEndpoint(map[uint64]string{testNetwork.ChainID: override})
	if api.BaseURL() != override {
		t.Errorf("expected override %q, got %q", override, api.BaseURL())
	}
}

func TestReconcile_DisconnectResetsState(t *testing.T) {
	wallet := &fakeWallet{connected: true, chainID: 1}
	svc := NewService(wallet, &fakeAPI{}, testNetwork, testConfig(1), logger.NewSlogAdapter())

	svc.Reconcile(context.Background())
	wallet.mu.Lock()
	wallet.connected = false
	wallet.mu.Unlock()
	svc.Reconcile(context.Background())

	state := svc.State()
	if state.Phase != entity.PhaseDisconnected || state.IsConnected {
		t.Errorf("expected disconnected state, got %+v", state)
	}
}
