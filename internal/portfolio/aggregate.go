package portfolio

import (
	"math"

	"github.com/withlaguna/stonks-page/internal/models"
)

// Aggregator composes the ranked holdings, recent trades, and owner
// profile into the view-model consumed by the presentation layer. It is
// stateless; every BuildPage call is a pure recomputation over the
// snapshots it is given.
type Aggregator struct {
	cfg RankConfig
}

// NewAggregator creates an Aggregator with the given ranking configuration.
func NewAggregator(cfg RankConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Config returns the aggregator's ranking configuration.
func (a *Aggregator) Config() RankConfig {
	return a.cfg
}

// BuildPage turns one set of snapshots into a complete PageView. Missing
// data (a failed or not-yet-resolved fetch) arrives as empty slices or a
// zero profile and simply produces empty sections.
func (a *Aggregator) BuildPage(holdings []models.Holding, trades []models.Trade, profile models.UserProfile, state SortState) models.PageView {
	total := PortfolioTotal(holdings)
	ranked := Rank(Derive(holdings), state, a.cfg)

	rows := make([]models.HoldingRow, 0, len(ranked))
	for _, h := range ranked {
		rows = append(rows, holdingRow(h, profile.ShowAmounts))
	}

	recent := RecentTrades(trades)
	tradeRows := make([]models.TradeRow, 0, len(recent))
	for _, t := range recent {
		tradeRows = append(tradeRows, tradeRow(t, profile.ShowAmounts, total))
	}

	return models.PageView{
		Profile:        profile,
		RecentTrades:   tradeRows,
		Holdings:       rows,
		PortfolioTotal: total,
		ShowAmounts:    profile.ShowAmounts,
		SortColumn:     string(state.Column),
		SortDirection:  string(state.Direction),
	}
}

func holdingRow(h models.DerivedHolding, showAmounts bool) models.HoldingRow {
	amountHeld := FormatPercentage(h.Allocation)
	if showAmounts {
		amountHeld = FormatCurrency(h.InstitutionValue)
	}
	return models.HoldingRow{
		Ticker:     h.TickerSymbol,
		Name:       h.Name,
		AmountHeld: amountHeld,
		Return:     FormatPercentage(h.PercentageReturn),
	}
}

func tradeRow(t models.Trade, showAmounts bool, portfolioTotal float64) models.TradeRow {
	amount := FormatPercentage(math.Abs(t.Quantity) * t.Price / portfolioTotal)
	if showAmounts {
		amount = FormatQuantity(t.Quantity)
	}
	return models.TradeRow{
		Date:   DateOnly(*t.TradeDate),
		Ticker: t.Ticker,
		Type:   Capitalize(t.TradeType),
		Amount: amount,
		Price:  FormatCurrency(t.Price),
	}
}
