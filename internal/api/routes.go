package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Page routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/page", handler.GetPage).Methods("GET")
	api.HandleFunc("/holdings", handler.GetHoldings).Methods("GET")
	api.HandleFunc("/trades", handler.GetTrades).Methods("GET")
	api.HandleFunc("/subscribe", handler.Subscribe).Methods("POST")
	api.HandleFunc("/subscribe", handler.SubscriptionStatus).Methods("GET")
	api.HandleFunc("/refresh", handler.Refresh).Methods("POST")

	return r
}

// corsMiddleware allows the page frontend to call the API from any origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
