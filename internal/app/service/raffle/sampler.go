package raffle

import (
	"context"
	"strings"
	"sync"
	"time"

	"cosmic_gateway/internal/app/port"
	"cosmic_gateway/internal/infrastructure/configloader"
	"cosmic_gateway/internal/pkg/scheduler"
	"cosmic_gateway/pkg/metrics"

	"cosmic_gateway/internal/domain/entity"
)

// Sampler computes raffle odds samples for accounts from live indexer data and
// optionally keeps them fresh on a polling interval.
type Sampler struct {
	api        port.DataAPIClient
	ethWinners uint64
	nftWinners uint64
	logger     port.Logger

	mu      sync.RWMutex
	samples map[string]entity.RaffleOddsSample

	pollInterval time.Duration
	minFetchGap  time.Duration
	pollers      map[string]*scheduler.Poller
	pollerMu     sync.Mutex
}

// NewSampler creates a sampler with winner counts and polling cadence from config.
func NewSampler(api port.DataAPIClient, cfg *configloader.Config, log port.Logger) *Sampler {
	return &Sampler{
		api:          api,
		ethWinners:   cfg.Raffle.ETHWinners,
		nftWinners:   cfg.Raffle.NFTWinners,
		logger:       log,
		samples:      make(map[string]entity.RaffleOddsSample),
		pollInterval: time.Duration(cfg.Raffle.PollIntervalMillis) * time.Millisecond,
		minFetchGap:  time.Duration(cfg.Raffle.MinFetchGapMillis) * time.Millisecond,
		pollers:      make(map[string]*scheduler.Poller),
	}
}

// Sample fetches fresh counts and computes the odds for one address.
//
// The round number is resolved once from the dashboard snapshot, then both bid
// counts are fetched for that explicit round, so a rollover between the two
// count fetches cannot produce a mixed-round sample.
func (s *Sampler) Sample(ctx context.Context, userAddr string) (entity.RaffleOddsSample, error) {
	userAddr = strings.ToLower(userAddr)

	dashboard, err := s.api.GetDashboardInfo(ctx)
	if err != nil {
		return entity.RaffleOddsSample{}, err
	}
	roundNum := dashboard.CurRoundNum

	counts, err := s.api.GetRoundBidCounts(ctx, roundNum, userAddr)
	if err != nil {
		return entity.RaffleOddsSample{}, err
	}

	ethProb, ethOK := ComputeWinProbability(counts.TotalBids, counts.UserBids, s.ethWinners)
	nftProb, nftOK := ComputeWinProbability(counts.TotalBids, counts.UserBids, s.nftWinners)

	sample := entity.RaffleOddsSample{
		RoundNum:       roundNum,
		UserBids:       counts.UserBids,
		TotalBids:      counts.TotalBids,
		ETHWinners:     s.ethWinners,
		NFTWinners:     s.nftWinners,
		ETHProbability: ethProb,
		NFTProbability: nftProb,
		Applicable:     ethOK && nftOK,
	}
	metrics.OddsRecomputes.Inc()

	s.mu.Lock()
	s.samples[userAddr] = sample
	s.mu.Unlock()
	return sample, nil
}

// LastSample returns the most recent sample for an address, if any.
func (s *Sampler) LastSample(userAddr string) (entity.RaffleOddsSample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sample, ok := s.samples[strings.ToLower(userAddr)]
	return sample, ok
}

// Watch starts a poller that keeps the address's sample fresh. Repeated calls
// for the same address are no-ops.
func (s *Sampler) Watch(ctx context.Context, userAddr string) {
	userAddr = strings.ToLower(userAddr)

	s.pollerMu.Lock()
	defer s.pollerMu.Unlock()
	if _, exists := s.pollers[userAddr]; exists {
		return
	}

	p := scheduler.NewPoller("raffle_odds:"+userAddr, s.pollInterval, s.minFetchGap, func(tickCtx context.Context) {
		if _, err := s.Sample(tickCtx, userAddr); err != nil {
			s.logger.Warn("Raffle odds refresh failed", "address", userAddr, "error", err)
		}
	}, s.logger)
	s.pollers[userAddr] = p
	p.Start(ctx)
}

// Watching reports whether a refresh poller is running for the address.
func (s *Sampler) Watching(userAddr string) bool {
	s.pollerMu.Lock()
	defer s.pollerMu.Unlock()
	_, exists := s.pollers[strings.ToLower(userAddr)]
	return exists
}

// Unwatch stops the poller for an address.
func (s *Sampler) Unwatch(userAddr string) {
	userAddr = strings.ToLower(userAddr)

	s.pollerMu.Lock()
	defer s.pollerMu.Unlock()
	if p, exists := s.pollers[userAddr]; exists {
		p.Stop()
		delete(s.pollers, userAddr)
	}
}

// SetVisible propagates document visibility to all pollers; hidden pollers
// skip ticks until visibility is regained.
func (s *Sampler) SetVisible(visible bool) {
	s.pollerMu.Lock()
	defer s.pollerMu.Unlock()
	for _, p := range s.pollers {
		p.SetVisible(visible)
	}
}
