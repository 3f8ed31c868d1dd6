package auth

import (
	"net/http"
	"time"

	"konigfood_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleCSRF mints a CSRF token for clients that have not logged in yet, such
// as the storefront checkout.
func (arm *AuthRoutesManager) HandleCSRF(w http.ResponseWriter, r *http.Request) {
	token, err := lib.GenerateCSRFToken()
	if err != nil {
		arm.logger.Error("Failed to generate CSRF token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to generate token"), gecho.Send())
		return
	}

	expiry := time.Now().Add(24 * time.Hour)
	lib.SetCSRFCookie(token, expiry, w)

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"csrf_token": token,
			"expires_at": expiry,
		}),
		gecho.Send(),
	)
}
