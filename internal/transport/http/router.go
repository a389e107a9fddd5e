package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vineetpuranik/live-bootcamp-project/internal/application/auth"
	"github.com/vineetpuranik/live-bootcamp-project/internal/application/session"
	"github.com/vineetpuranik/live-bootcamp-project/internal/config"
	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/smtp"
	"github.com/vineetpuranik/live-bootcamp-project/internal/transport/http/handler"
)

// Deps holds the composed stores and collaborators for the router.
// Backends are selected at startup; the router only sees the interfaces.
type Deps struct {
	Users    domain.UserStore
	Codes    domain.TwoFACodeStore
	Sessions session.Service
	Mailer   smtp.Mailer
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(auth.ServiceDeps{
		Users:    deps.Users,
		Codes:    deps.Codes,
		Sessions: deps.Sessions,
		Mailer:   deps.Mailer,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)

	r.Get("/health-check", healthH.Ping)
	r.Post("/signup", authH.Signup)
	r.Post("/login", authH.Login)
	r.Post("/verify-2fa", authH.Verify2FA)
	r.Post("/verify-token", authH.VerifyToken)
	r.Post("/logout", authH.Logout)

	return r
}
