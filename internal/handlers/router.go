package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the JSON API, the optional Telegram webhook, metrics and
// health endpoints behind CORS. webhook may be nil.
func NewRouter(api *API, webhook http.Handler, logger *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(logger))

	api.Register(r)
	if webhook != nil {
		r.Handle("/webhook", webhook).Methods(http.MethodPost)
	}
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return corsHandler.Handler(r)
}
