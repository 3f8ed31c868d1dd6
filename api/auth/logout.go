package auth

import (
	"net/http"

	"konigfood_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleLogout revokes the current token and clears the auth cookies. Logout
// succeeds even with a broken token; the cookies are gone either way.
func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, err := lib.ExtractClaims(r, arm.cfg.Auth.AccessTokenSecret)
	if err == nil {
		if err := arm.authService.BlacklistToken(r.Context(), claims); err != nil {
			arm.logger.Warn("Failed to blacklist token on logout", gecho.Field("error", err))
		}
	}

	lib.ClearCookie(lib.AccessCookieName, w)
	lib.ClearCookie(lib.CSRFCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Logged out"),
		gecho.Send(),
	)
}
