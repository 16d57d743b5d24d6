package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withlaguna/stonks-page/internal/models"
	"github.com/withlaguna/stonks-page/internal/page"
	"github.com/withlaguna/stonks-page/internal/portfolio"
	"github.com/withlaguna/stonks-page/internal/subscription"
)

// MockFetcher implements page.Fetcher for testing
type MockFetcher struct {
	holdings []models.Holding
	trades   []models.Trade
	profile  models.UserProfile
}

func (m *MockFetcher) GetHoldings(_ context.Context, _ string) ([]models.Holding, error) {
	return m.holdings, nil
}

func (m *MockFetcher) GetTrades(_ context.Context, _ string) ([]models.Trade, error) {
	return m.trades, nil
}

func (m *MockFetcher) GetUserProfile(_ context.Context, _ string) (models.UserProfile, error) {
	return m.profile, nil
}

// MockSender implements subscription.Sender for testing
type MockSender struct {
	requests []models.SubscribeRequest
	err      error
}

func (m *MockSender) Subscribe(_ context.Context, req models.SubscribeRequest) error {
	m.requests = append(m.requests, req)
	return m.err
}

func floatPtr(v float64) *float64 {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func setupTestRouter(t *testing.T, sender *MockSender) http.Handler {
	t.Helper()

	fetcher := &MockFetcher{
		holdings: []models.Holding{
			{TickerSymbol: "AAPL", Name: "Apple", InstitutionValue: 100, CostBasis: floatPtr(80)},
			{TickerSymbol: "MSFT", Name: "Microsoft", InstitutionValue: 200, CostBasis: floatPtr(250)},
		},
		trades: []models.Trade{
			{TradeDate: strPtr("2024-03-01 10:00:00"), Ticker: "MSFT", TradeType: "buy", Quantity: 2, Price: 50},
		},
		profile: models.UserProfile{ID: "42", Title: "Rob's portfolio"},
	}

	agg := portfolio.NewAggregator(portfolio.RankConfig{DefaultSort: portfolio.DefaultSort()})
	pageSvc := page.NewService(fetcher, nil, nil, agg, "rob", zerolog.Nop())
	pageSvc.Refresh(context.Background())

	machine := subscription.NewMachine(sender, zerolog.Nop())
	return SetupRoutes(NewHandler(pageSvc, machine, zerolog.Nop()))
}

func TestGetPage(t *testing.T) {
	router := setupTestRouter(t, &MockSender{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/page", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var view models.PageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Rob's portfolio", view.Profile.Title)
	require.Len(t, view.Holdings, 2)
	assert.Equal(t, "MSFT", view.Holdings[0].Ticker)
	assert.Len(t, view.RecentTrades, 1)
	assert.Equal(t, "institution_value", view.SortColumn)
	assert.Equal(t, "desc", view.SortDirection)
}

func TestGetPageSortParams(t *testing.T) {
	router := setupTestRouter(t, &MockSender{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/page?sort=ticker_symbol&dir=asc", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var view models.PageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "AAPL", view.Holdings[0].Ticker)
	assert.Equal(t, "ticker_symbol", view.SortColumn)
	assert.Equal(t, "asc", view.SortDirection)
}

func TestGetPageUnknownSortFallsBack(t *testing.T) {
	router := setupTestRouter(t, &MockSender{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/page?sort=bogus&dir=sideways", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var view models.PageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "institution_value", view.SortColumn)
	assert.Equal(t, "desc", view.SortDirection)
}

func TestGetHoldings(t *testing.T) {
	router := setupTestRouter(t, &MockSender{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/holdings", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Holdings       []models.HoldingRow `json:"holdings"`
		PortfolioTotal float64             `json:"portfolio_total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 300.0, payload.PortfolioTotal)
	assert.Len(t, payload.Holdings, 2)
}

func TestGetTrades(t *testing.T) {
	router := setupTestRouter(t, &MockSender{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Trades []models.TradeRow `json:"trades"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Trades, 1)
	assert.Equal(t, "2024-03-01", payload.Trades[0].Date)
	assert.Equal(t, "Buy", payload.Trades[0].Type)
}

func TestSubscribeSuccess(t *testing.T) {
	sender := &MockSender{}
	router := setupTestRouter(t, sender)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"phone": "555-555-5555", "name": "Warren Buffett"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", body))

	require.Equal(t, http.StatusAccepted, rec.Code)

	var snap subscription.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, subscription.StateSubmitted, snap.State)

	// The owner id comes from the fetched profile, not the caller.
	require.Len(t, sender.requests, 1)
	assert.Equal(t, "42", sender.requests[0].OwnerID)
	assert.Equal(t, "555-555-5555", sender.requests[0].Phone)
}

func TestSubscribeMissingPhone(t *testing.T) {
	sender := &MockSender{}
	router := setupTestRouter(t, sender)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sender.requests)
}

func TestSubscribeUpstreamFailure(t *testing.T) {
	sender := &MockSender{err: errors.New("upstream says no")}
	router := setupTestRouter(t, sender)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"phone": "555-555-5555"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", body))

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var payload struct {
		State        string `json:"state"`
		ErrorMessage string `json:"error_message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "failed", payload.State)
	assert.NotEmpty(t, payload.ErrorMessage)

	// The form comes back for a retry.
	rec = httptest.NewRecorder()
	sender.err = nil
	body = strings.NewReader(`{"phone": "555-555-5555"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", body))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestSubscribeTwiceConflicts(t *testing.T) {
	sender := &MockSender{}
	router := setupTestRouter(t, sender)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", strings.NewReader(`{"phone": "555-555-5555"}`)))
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/subscribe", strings.NewReader(`{"phone": "555-555-5555"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, sender.requests, 1)
}

func TestSubscriptionStatus(t *testing.T) {
	router := setupTestRouter(t, &MockSender{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/subscribe", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var snap subscription.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, subscription.StateIdle, snap.State)
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(t, &MockSender{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	router := setupTestRouter(t, &MockSender{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
