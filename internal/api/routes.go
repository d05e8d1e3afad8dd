package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ignite/message-relay/internal/relay"
)

// APIPrefix is the fixed path prefix routed to the relay core. Everything
// outside it is served from the static web root.
const APIPrefix = "/messenger_api"

// SetupRoutes configures the router: the relay endpoint under APIPrefix,
// a health check, and static files for everything else.
func SetupRoutes(core *relay.Dispatcher, db *sql.DB, webRoot string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	hc := NewHealthChecker(db)
	r.Get("/health", hc.HandleHealth)

	// The relay handler sees every method on the prefix; unsupported methods
	// are answered 501 before the action is consulted.
	h := NewRelayHandler(core)
	r.Handle(APIPrefix, h)
	r.Handle(APIPrefix+"/*", h)

	// Everything else is the static client.
	r.Handle("/*", http.FileServer(http.Dir(webRoot)))

	return r
}
