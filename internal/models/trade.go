package models

// Trade type constants as the data source reports them
const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// Trade represents one executed trade as reported by the data source.
// TradeDate may be null for pending or unsettled entries; such trades are
// never displayed. Quantity is signed (negative for sells at some brokers).
type Trade struct {
	TradeDate *string `json:"trade_date"`
	Ticker    string  `json:"ticker"`
	TradeType string  `json:"trade_type"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}
