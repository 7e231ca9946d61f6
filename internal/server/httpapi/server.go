// Package httpapi exposes the registration and settings services over
// HTTP. Routing is chi; bodies are JSON. Sign-up endpoints answer the
// `{success, ...}` envelope, settings endpoints the plain `{error: ...}`
// shape, matching the public API contract.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/umeduck/quack-note/internal/logging"
	"github.com/umeduck/quack-note/internal/server/auth"
	"github.com/umeduck/quack-note/internal/server/provider"
	"github.com/umeduck/quack-note/internal/server/registration"
	"github.com/umeduck/quack-note/internal/server/settings"
)

// RegistrationService is the sign-up workflow boundary consumed by the
// auth endpoints.
type RegistrationService interface {
	SignUp(ctx context.Context, name, email, password string) (*registration.SignUpResult, error)
	Confirm(ctx context.Context, username, code string) error
	ResendCode(ctx context.Context, username string) (*provider.Delivery, error)
}

// SettingsService is the per-user settings boundary consumed by the
// settings endpoints.
type SettingsService interface {
	Get(ctx context.Context, userID string) (*settings.Settings, error)
	Save(ctx context.Context, userID string, update settings.Update) (*settings.Settings, error)
	TestSlack(ctx context.Context, userID string) (string, error)
}

type Server struct {
	registration RegistrationService
	settings     SettingsService
	verifier     auth.Verifier
	logger       logging.Logger
}

func NewServer(reg RegistrationService, set SettingsService, verifier auth.Verifier, logger logging.Logger) *Server {
	return &Server{
		registration: reg,
		settings:     set,
		verifier:     verifier,
		logger:       logger.With("module", "httpapi"),
	}
}

// Router builds the route tree. Auth endpoints are public; settings
// endpoints require a bearer token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignUp)
			r.Post("/confirm_signup", s.handleConfirmSignUp)
			r.Post("/resend_confirmation_code", s.handleResendCode)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleGetSettings)
			r.Post("/", s.handleSaveSettings)
			r.Post("/slack/test", s.handleTestSlack)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
