package app

import (
	"net/http"

	"pkgcheck/internal/api/handler"
	"pkgcheck/internal/api/middleware"
)

// NewMux wires the analyze endpoints behind bearer auth. The health
// endpoint stays open.
func NewMux(h *handler.AnalyzeHandler, apiToken string) http.Handler {
	auth := middleware.BearerAuth(apiToken)

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.HandleHealth)
	mux.Handle("/analyze", auth(http.HandlerFunc(h.HandleAnalyze)))
	mux.Handle("/analyze/compare", auth(http.HandlerFunc(h.HandleCompare)))

	return middleware.CORS(mux)
}
