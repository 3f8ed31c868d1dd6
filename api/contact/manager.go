package contact

import (
	"konigfood_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ContactRoutesManager struct {
	logger       *gecho.Logger
	emailService *services.EmailService
}

func NewContactRoutesManager(
	logger *gecho.Logger,
	emailService *services.EmailService,
) *ContactRoutesManager {
	return &ContactRoutesManager{
		logger:       logger,
		emailService: emailService,
	}
}

func (crm *ContactRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/contact", crm.HandleContact)
}
