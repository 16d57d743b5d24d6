// Package page holds the in-memory snapshots backing one portfolio page
// and rebuilds the view-model from them on demand.
package page

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/withlaguna/stonks-page/internal/models"
	"github.com/withlaguna/stonks-page/internal/portfolio"
)

// Fetcher is the data-source boundary, satisfied by upstream.Client.
type Fetcher interface {
	GetHoldings(ctx context.Context, sub string) ([]models.Holding, error)
	GetTrades(ctx context.Context, sub string) ([]models.Trade, error)
	GetUserProfile(ctx context.Context, sub string) (models.UserProfile, error)
}

// Cache is the optional snapshot cache, satisfied by cache.Snapshots.
type Cache interface {
	SaveHoldings(ctx context.Context, sub string, holdings []models.Holding) error
	LoadHoldings(ctx context.Context, sub string) ([]models.Holding, error)
	SaveTrades(ctx context.Context, sub string, trades []models.Trade) error
	LoadTrades(ctx context.Context, sub string) ([]models.Trade, error)
	SaveProfile(ctx context.Context, sub string, profile models.UserProfile) error
	LoadProfile(ctx context.Context, sub string) (models.UserProfile, error)
}

// TradeObserver is notified after every successful trades fetch, satisfied
// by notify.Notifier.
type TradeObserver interface {
	Observe(ctx context.Context, ownerID string, trades []models.Trade)
}

// Service owns the page's three snapshot pieces. Each piece has a single
// writer (Refresh); the lock exists because HTTP handlers read while a
// refresh is in flight.
type Service struct {
	mu       sync.RWMutex
	holdings []models.Holding
	trades   []models.Trade
	profile  models.UserProfile

	fetcher  Fetcher
	cache    Cache         // nil when the cache extension is disabled
	observer TradeObserver // nil when Kafka publishing is disabled
	agg      *portfolio.Aggregator
	sub      string
	log      zerolog.Logger
}

// NewService creates a page Service for one subscriber. cache and observer
// may be nil.
func NewService(fetcher Fetcher, cache Cache, observer TradeObserver, agg *portfolio.Aggregator, sub string, log zerolog.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		cache:    cache,
		observer: observer,
		agg:      agg,
		sub:      sub,
		log:      log.With().Str("component", "page").Str("subscriber", sub).Logger(),
	}
}

// Refresh re-fetches the three snapshots. The fetches are independent: a
// failed one leaves that piece at its previous value (or its empty default
// on first load) and never blocks or invalidates the others. With the
// cache enabled, a failed fetch falls back to the last good payload.
func (s *Service) Refresh(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		s.refreshHoldings(ctx)
	}()
	go func() {
		defer wg.Done()
		s.refreshTrades(ctx)
	}()
	go func() {
		defer wg.Done()
		s.refreshProfile(ctx)
	}()

	wg.Wait()
}

// StartPolling refreshes immediately and then on every tick until the
// context is cancelled.
func (s *Service) StartPolling(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// View builds the current page view-model under the given sort state.
func (s *Service) View(state portfolio.SortState) models.PageView {
	s.mu.RLock()
	holdings := s.holdings
	trades := s.trades
	profile := s.profile
	s.mu.RUnlock()

	return s.agg.BuildPage(holdings, trades, profile, state)
}

// Profile returns the current owner profile snapshot.
func (s *Service) Profile() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// DefaultSort returns the configured initial sort state.
func (s *Service) DefaultSort() portfolio.SortState {
	return s.agg.Config().DefaultSort
}

func (s *Service) refreshHoldings(ctx context.Context) {
	holdings, err := s.fetcher.GetHoldings(ctx, s.sub)
	if err != nil {
		s.log.Warn().Err(err).Msg("holdings fetch failed")
		if s.cache == nil {
			return
		}
		holdings, err = s.cache.LoadHoldings(ctx, s.sub)
		if err != nil {
			return
		}
		s.log.Info().Msg("serving cached holdings snapshot")
	} else if s.cache != nil {
		if err := s.cache.SaveHoldings(ctx, s.sub, holdings); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache holdings")
		}
	}

	s.mu.Lock()
	s.holdings = holdings
	s.mu.Unlock()
}

func (s *Service) refreshTrades(ctx context.Context) {
	trades, err := s.fetcher.GetTrades(ctx, s.sub)
	if err != nil {
		s.log.Warn().Err(err).Msg("trades fetch failed")
		if s.cache == nil {
			return
		}
		trades, err = s.cache.LoadTrades(ctx, s.sub)
		if err != nil {
			return
		}
		s.log.Info().Msg("serving cached trades snapshot")
	} else {
		if s.cache != nil {
			if err := s.cache.SaveTrades(ctx, s.sub, trades); err != nil {
				s.log.Warn().Err(err).Msg("failed to cache trades")
			}
		}
		if s.observer != nil {
			s.observer.Observe(ctx, s.sub, trades)
		}
	}

	s.mu.Lock()
	s.trades = trades
	s.mu.Unlock()
}

func (s *Service) refreshProfile(ctx context.Context) {
	profile, err := s.fetcher.GetUserProfile(ctx, s.sub)
	if err != nil {
		s.log.Warn().Err(err).Msg("user profile fetch failed")
		if s.cache == nil {
			return
		}
		profile, err = s.cache.LoadProfile(ctx, s.sub)
		if err != nil {
			return
		}
		s.log.Info().Msg("serving cached user profile")
	} else if s.cache != nil {
		if err := s.cache.SaveProfile(ctx, s.sub, profile); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache user profile")
		}
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}
