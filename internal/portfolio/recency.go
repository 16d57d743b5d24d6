package portfolio

import (
	"sort"

	"github.com/withlaguna/stonks-page/internal/models"
)

// RecentTradeCount is the number of trades the page shows.
const RecentTradeCount = 3

// RecentTrades selects the trades to display: entries without a trade date
// are dropped, the rest are sorted newest-first, and the result is capped
// at RecentTradeCount. Dates are ISO-like strings, so lexicographic order
// is chronological order. The input slice is never mutated.
func RecentTrades(trades []models.Trade) []models.Trade {
	dated := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.TradeDate == nil || *t.TradeDate == "" {
			continue
		}
		dated = append(dated, t)
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return *dated[i].TradeDate > *dated[j].TradeDate
	})

	if len(dated) > RecentTradeCount {
		dated = dated[:RecentTradeCount]
	}
	return dated
}
