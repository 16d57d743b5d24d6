package portfolio

import (
	"sort"
	"strings"

	"github.com/withlaguna/stonks-page/internal/models"
)

// Column identifies a sortable holdings-table column. Values match the
// wire names of the underlying fields so the API can accept them directly.
type Column string

// Sortable columns
const (
	ColumnTicker Column = "ticker_symbol"
	ColumnName   Column = "name"
	// ColumnValue is labelled "Amount held" or "Portfolio allocation"
	// depending on show_amounts, but the sort key is always the
	// institution value.
	ColumnValue  Column = "institution_value"
	ColumnReturn Column = "percentage_return"
)

// Direction is a sort direction
type Direction string

// Sort directions
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// CurrencyPrefix marks currency (cash) positions in ticker symbols.
const CurrencyPrefix = "CUR:"

// SortState is the user-selected holdings ordering. It changes only
// through Toggle.
type SortState struct {
	Column    Column    `json:"column"`
	Direction Direction `json:"direction"`
}

// DefaultSort is the ordering before any user interaction: biggest
// holdings first.
func DefaultSort() SortState {
	return SortState{Column: ColumnValue, Direction: Descending}
}

// Toggle applies a user click on a column header: re-selecting the active
// column flips the direction, selecting a new column resets to descending.
func Toggle(s SortState, col Column) SortState {
	if s.Column == col {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return s
	}
	return SortState{Column: col, Direction: Descending}
}

// ParseColumn maps a wire name to a Column, falling back to the given
// default for unknown input.
func ParseColumn(s string, fallback Column) Column {
	switch Column(s) {
	case ColumnTicker, ColumnName, ColumnValue, ColumnReturn:
		return Column(s)
	}
	return fallback
}

// ParseDirection maps "asc"/"desc" to a Direction, defaulting to the
// given fallback.
func ParseDirection(s string, fallback Direction) Direction {
	switch Direction(s) {
	case Ascending, Descending:
		return Direction(s)
	}
	return fallback
}

// RankConfig controls behavior that diverged across page variants.
type RankConfig struct {
	// FilterCurrencyPositions hides CUR:-prefixed holdings from the
	// ranked output. The filter is display-only: totals and allocations
	// are computed over the full snapshot either way.
	FilterCurrencyPositions bool
	// DefaultSort is the ordering used when the caller supplies none.
	DefaultSort SortState
}

// Rank produces the display ordering of a derived-holdings snapshot. The
// sort is stable: holdings with equal keys keep their original relative
// order, so re-ranking with the same state is idempotent. The input slice
// is never reordered in place.
func Rank(holdings []models.DerivedHolding, state SortState, cfg RankConfig) []models.DerivedHolding {
	out := make([]models.DerivedHolding, 0, len(holdings))
	for _, h := range holdings {
		if cfg.FilterCurrencyPositions && strings.HasPrefix(h.TickerSymbol, CurrencyPrefix) {
			continue
		}
		out = append(out, h)
	}

	less := lessFunc(state.Column)
	sort.SliceStable(out, func(i, j int) bool {
		if state.Direction == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// lessFunc returns the ascending comparator for a column. NaN return
// values compare as equal to everything, which leaves them in snapshot
// order rather than inventing a ranking for them.
func lessFunc(col Column) func(a, b models.DerivedHolding) bool {
	switch col {
	case ColumnTicker:
		return func(a, b models.DerivedHolding) bool { return a.TickerSymbol < b.TickerSymbol }
	case ColumnName:
		return func(a, b models.DerivedHolding) bool { return a.Name < b.Name }
	case ColumnReturn:
		return func(a, b models.DerivedHolding) bool { return a.PercentageReturn < b.PercentageReturn }
	default:
		return func(a, b models.DerivedHolding) bool { return a.InstitutionValue < b.InstitutionValue }
	}
}
