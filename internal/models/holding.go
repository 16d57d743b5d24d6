package models

// Holding represents one brokerage position as reported by the data source.
// A holdings snapshot is immutable and replaced wholesale on every fetch.
type Holding struct {
	TickerSymbol     string   `json:"ticker_symbol"`
	Name             string   `json:"name"`
	InstitutionValue float64  `json:"institution_value"`
	CostBasis        *float64 `json:"cost_basis"`
	Quantity         float64  `json:"quantity"`
}

// DerivedHolding is a Holding decorated with the per-render derived figures.
// Recomputed on every render pass, never persisted.
type DerivedHolding struct {
	Holding
	PercentageReturn float64 `json:"percentage_return"`
	Allocation       float64 `json:"allocation"`
}
