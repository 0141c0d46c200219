package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zetacorp/billing/internal/auth"
	clientHandler "github.com/zetacorp/billing/internal/http/client"
	invoiceHandler "github.com/zetacorp/billing/internal/http/invoice"
	userHandler "github.com/zetacorp/billing/internal/http/user"
)

func New(
	allowedOrigins []string,
	tokens *auth.Manager,
	authV1 *userHandler.Handler,
	clientsV1 *clientHandler.Handler,
	invoicesV1 *invoiceHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	requireAuth := auth.Middleware(tokens)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authV1.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				authV1.AuthedRoutes(r)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(requireAuth)
			invoicesV1.Routes(r)
		})
	})

	return router
}
