package notify

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/withlaguna/stonks-page/internal/models"
)

// publisher is the outbound side of the Notifier, satisfied by Producer.
type publisher interface {
	PublishTradeDetected(ctx context.Context, ownerID string, trade models.Trade) error
}

// Notifier diffs successive trade snapshots and publishes one event per
// trade it has not seen before. The first snapshot after startup only
// primes the seen set, so a restart never replays the whole history.
type Notifier struct {
	mu       sync.Mutex
	producer publisher
	seen     map[string]struct{}
	primed   bool
	log      zerolog.Logger
}

// NewNotifier creates a Notifier that publishes through the given producer.
func NewNotifier(producer publisher, log zerolog.Logger) *Notifier {
	return &Notifier{
		producer: producer,
		seen:     make(map[string]struct{}),
		log:      log.With().Str("component", "notify").Logger(),
	}
}

// Observe records a trades snapshot and publishes events for new entries.
// Publish failures are logged and the trade stays unseen, so the next
// snapshot retries it.
func (n *Notifier) Observe(ctx context.Context, ownerID string, trades []models.Trade) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.primed {
		for _, t := range trades {
			n.seen[tradeKey(t)] = struct{}{}
		}
		n.primed = true
		return
	}

	for _, t := range trades {
		key := tradeKey(t)
		if _, ok := n.seen[key]; ok {
			continue
		}
		if err := n.producer.PublishTradeDetected(ctx, ownerID, t); err != nil {
			n.log.Warn().Err(err).Str("ticker", t.Ticker).Msg("failed to publish trade event")
			continue
		}
		n.seen[key] = struct{}{}
	}
}

// tradeKey identifies a trade within the snapshot history. The upstream
// feed carries no order IDs, so identity is the full field tuple.
func tradeKey(t models.Trade) string {
	date := ""
	if t.TradeDate != nil {
		date = *t.TradeDate
	}
	return t.Ticker + "|" + date + "|" + t.TradeType + "|" +
		strconv.FormatFloat(t.Quantity, 'f', -1, 64) + "|" +
		strconv.FormatFloat(t.Price, 'f', -1, 64)
}
