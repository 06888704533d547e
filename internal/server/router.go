package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter builds the HTTP surface: the websocket endpoint, a liveness
// probe, and optional static file serving for the bootstrap client.
//
// Precondition: ws must be non-nil. An empty staticDir disables static
// serving.
func NewRouter(ws http.Handler, staticDir string) *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.Handle("/ws", ws)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	if staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}
	return r
}

// corsMiddleware allows browser clients served from other origins (itch.io
// embeds) to reach the HTTP endpoints.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
