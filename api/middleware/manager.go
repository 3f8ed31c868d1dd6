package middleware

import (
	"konigfood_server/services"
	"konigfood_server/storage"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	logger      *gecho.Logger
	cfg         *structs.Config
	kv          storage.KV
	authService *services.AuthService
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, kv storage.KV, authService *services.AuthService) *Middleware {
	return &Middleware{
		logger:      logger,
		cfg:         cfg,
		kv:          kv,
		authService: authService,
	}
}
