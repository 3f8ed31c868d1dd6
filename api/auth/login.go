package auth

import (
	"net/http"

	"konigfood_server/lib"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	if err := arm.authService.Login(body); err != nil {
		arm.logger.Warn("Login failed", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	accessToken, claims, err := arm.authService.GenerateAccessToken()
	if err != nil {
		arm.logger.Warn("Failed to generate access token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	csrfToken, err := lib.GenerateCSRFToken()
	if err != nil {
		arm.logger.Warn("Failed to generate CSRF token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, accessToken, claims.Exp, w)
	lib.SetCSRFCookie(csrfToken, claims.Exp, w)

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(map[string]any{
			"email":      claims.Sub,
			"role":       claims.Role,
			"expires_at": claims.Exp,
			"csrf_token": csrfToken,
		}),
		gecho.Send(),
	)
}

// HandleMe reports whether the current session is a valid admin session.
func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, err := lib.ExtractClaims(r, arm.cfg.Auth.AccessTokenSecret)
	if err != nil {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	if arm.authService.IsTokenBlacklisted(r.Context(), claims.Jti) {
		gecho.Unauthorized(w, gecho.WithMessage("Session has been logged out"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"email":      claims.Sub,
			"role":       claims.Role,
			"expires_at": claims.Exp,
		}),
		gecho.Send(),
	)
}
