// Package upstream is the client for the portfolio data source API. It
// serves the three page-load fetches and the outbound subscribe call.
// Requests carry no retry, backoff, or caching of their own; a failed
// fetch surfaces as an error and the caller decides what to render.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/withlaguna/stonks-page/internal/models"
)

// Client talks to the data source API.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "upstream").Logger(),
	}
}

// GetHoldings fetches the holdings snapshot for a subscriber.
func (c *Client) GetHoldings(ctx context.Context, sub string) ([]models.Holding, error) {
	var payload struct {
		Holdings []models.Holding `json:"holdings"`
	}
	if err := c.get(ctx, "/stonks/holdings/"+sub, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch holdings: %w", err)
	}
	return payload.Holdings, nil
}

// GetTrades fetches the trade history snapshot for a subscriber.
func (c *Client) GetTrades(ctx context.Context, sub string) ([]models.Trade, error) {
	var payload struct {
		Trades []models.Trade `json:"trades"`
	}
	if err := c.get(ctx, "/stonks/trades/"+sub, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch trades: %w", err)
	}
	return payload.Trades, nil
}

// GetUserProfile fetches the page owner's profile for a subscriber.
func (c *Client) GetUserProfile(ctx context.Context, sub string) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.get(ctx, "/stonks/userinfo/"+sub, &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	return profile, nil
}

// Subscribe registers a phone number for trade notifications. Any non-2xx
// response or transport failure is an error; the caller's state machine
// maps it to the Failed state.
func (c *Client) Subscribe(ctx context.Context, req models.SubscribeRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal subscribe request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/stonks/submit", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build subscribe request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("subscribe request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("subscribe request returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, err)
	}
	return nil
}
