package auth

import (
	"konigfood_server/services"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger      *gecho.Logger
	cfg         *structs.Config
	authService *services.AuthService
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	authService *services.AuthService,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		cfg:         cfg,
		authService: authService,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", arm.HandleLogin)
	r.Post("/auth/logout", arm.HandleLogout)
	r.Get("/auth/csrf", arm.HandleCSRF)
	r.Get("/auth/me", arm.HandleMe)
}
