package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTradeDetected = "TRADE_DETECTED"
)

// TradeEvent is the Kafka event published when a new trade appears in the
// owner's trade history. The downstream notification service fans it out
// to subscribers (and owns deduplication of repeated submissions).
type TradeEvent struct {
	EventType string         `json:"event_type"`
	OwnerID   string         `json:"owner_id"`
	Data      TradeEventData `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// TradeEventData carries the trade fields of a TradeEvent. Amounts are
// decimals so downstream consumers never re-parse floats off the wire.
type TradeEventData struct {
	Ticker    string          `json:"ticker"`
	Side      string          `json:"side"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	TradeDate string          `json:"trade_date,omitempty"`
}
