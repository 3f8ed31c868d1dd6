package structs

import (
	"time"

	"github.com/google/uuid"
)

type AuthClaims struct {
	Sub  string    `json:"sub"` // admin email
	Role string    `json:"role"`
	Iat  time.Time `json:"iat"`
	Exp  time.Time `json:"exp"`
	Jti  uuid.UUID `json:"jti"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
