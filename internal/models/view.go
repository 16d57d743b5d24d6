package models

// HoldingRow is one pre-formatted row of the holdings table. AmountHeld is
// either a currency amount or an allocation percentage depending on the
// owner's show_amounts setting.
type HoldingRow struct {
	Ticker     string `json:"ticker"`
	Name       string `json:"name"`
	AmountHeld string `json:"amount_held"`
	Return     string `json:"return"`
}

// TradeRow is one pre-formatted row of the recent-trades table. Amount is
// the raw share quantity, or the trade's share of portfolio value when
// amounts are hidden.
type TradeRow struct {
	Date   string `json:"date"`
	Ticker string `json:"ticker"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
	Price  string `json:"price"`
}

// PageView is the complete view-model consumed by the presentation layer.
type PageView struct {
	Profile        UserProfile  `json:"profile"`
	RecentTrades   []TradeRow   `json:"recent_trades"`
	Holdings       []HoldingRow `json:"holdings"`
	PortfolioTotal float64      `json:"portfolio_total"`
	ShowAmounts    bool         `json:"show_amounts"`
	SortColumn     string       `json:"sort_column"`
	SortDirection  string       `json:"sort_direction"`
}
