package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/withlaguna/stonks-page/internal/models"
	"github.com/withlaguna/stonks-page/internal/page"
	"github.com/withlaguna/stonks-page/internal/portfolio"
	"github.com/withlaguna/stonks-page/internal/subscription"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	page    *page.Service
	machine *subscription.Machine
	log     zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(pageSvc *page.Service, machine *subscription.Machine, log zerolog.Logger) *Handler {
	return &Handler{
		page:    pageSvc,
		machine: machine,
		log:     log.With().Str("component", "api").Logger(),
	}
}

// GetPage handles GET /api/v1/page
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	view := h.page.View(h.sortState(r))
	respondJSON(w, http.StatusOK, view)
}

// GetHoldings handles GET /api/v1/holdings
func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	view := h.page.View(h.sortState(r))
	respondJSON(w, http.StatusOK, map[string]any{
		"holdings":        view.Holdings,
		"portfolio_total": view.PortfolioTotal,
		"sort_column":     view.SortColumn,
		"sort_direction":  view.SortDirection,
	})
}

// GetTrades handles GET /api/v1/trades
func (h *Handler) GetTrades(w http.ResponseWriter, r *http.Request) {
	view := h.page.View(h.page.DefaultSort())
	respondJSON(w, http.StatusOK, map[string]any{
		"trades": view.RecentTrades,
	})
}

// Subscribe handles POST /api/v1/subscribe
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Presence is the only client-side validation; the remote call's
	// outcome decides everything else.
	if req.Phone == "" {
		http.Error(w, "phone is required", http.StatusBadRequest)
		return
	}

	snap, err := h.machine.Submit(r.Context(), models.SubscribeRequest{
		OwnerID: h.page.Profile().ID,
		Phone:   req.Phone,
		Name:    req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrAlreadySubscribed), errors.Is(err, subscription.ErrSubmitInFlight):
			respondJSON(w, http.StatusConflict, snap)
		default:
			respondJSON(w, http.StatusBadGateway, map[string]any{
				"state":         snap.State,
				"error_message": "Please enter the right phone number",
			})
		}
		return
	}

	respondJSON(w, http.StatusAccepted, snap)
}

// SubscriptionStatus handles GET /api/v1/subscribe
func (h *Handler) SubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.machine.Status())
}

// Refresh handles POST /api/v1/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.page.Refresh(r.Context())
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "refreshed"})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// sortState reads the sort and dir query parameters, falling back to the
// page's configured default ordering.
func (h *Handler) sortState(r *http.Request) portfolio.SortState {
	def := h.page.DefaultSort()
	q := r.URL.Query()
	return portfolio.SortState{
		Column:    portfolio.ParseColumn(q.Get("sort"), def.Column),
		Direction: portfolio.ParseDirection(q.Get("dir"), def.Direction),
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
