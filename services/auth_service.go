package services

import (
	"context"
	"fmt"
	"time"

	"konigfood_server/lib"
	"konigfood_server/storage"
	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const blacklistKeyPrefix = "jwt_blacklist:"

// AuthService authenticates the single admin account. Credentials live in
// configuration (email plus an Argon2id hash); revoked tokens are tracked in
// the KV store until they would have expired anyway.
type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	kv     storage.KV
}

func NewAuthService(logger *gecho.Logger, cfg *structs.Config, kv storage.KV) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		kv:     kv,
	}
}

// Login verifies the admin credentials. Both failure modes return the same
// error so responses never leak which part was wrong.
func (as *AuthService) Login(authRequest *structs.AuthRequest) error {
	startTime := time.Now()

	if authRequest.Email != as.cfg.Auth.AdminEmail {
		as.logger.Debug("Login attempt with unknown identifier", gecho.Field("identifier", authRequest.Email))
		return lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(authRequest.Password, as.cfg.Auth.AdminPasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash", gecho.Field("error", err))
		return err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt", gecho.Field("identifier", authRequest.Email))
		return lib.ErrInvalidCredentials
	}

	as.logger.Debug("Admin logged in", gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()))
	return nil
}

// GenerateAccessToken mints a signed token for the admin session.
func (as *AuthService) GenerateAccessToken() (string, *structs.AuthClaims, error) {
	now := time.Now()
	claims := &structs.AuthClaims{
		Sub:  as.cfg.Auth.AdminEmail,
		Role: "admin",
		Iat:  now,
		Exp:  now.Add(as.cfg.Auth.AccessTokenExpiry),
		Jti:  uuid.New(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  claims.Sub,
		"role": claims.Role,
		"iat":  claims.Iat.Unix(),
		"exp":  claims.Exp.Unix(),
		"jti":  claims.Jti.String(),
	})

	signed, err := token.SignedString([]byte(as.cfg.Auth.AccessTokenSecret))
	if err != nil {
		as.logger.Error("Failed to sign access token", gecho.Field("error", err))
		return "", nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, claims, nil
}

// BlacklistToken revokes a token for whatever lifetime it has left.
func (as *AuthService) BlacklistToken(ctx context.Context, claims *structs.AuthClaims) error {
	remaining := time.Until(claims.Exp)
	if remaining <= 0 {
		return nil
	}

	key := blacklistKeyPrefix + claims.Jti.String()
	if err := as.kv.Set(ctx, key, "1", remaining); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	as.logger.Debug("Token blacklisted", gecho.Field("jti", claims.Jti))
	return nil
}

// IsTokenBlacklisted reports whether a token was revoked. A storage error
// counts as revoked.
func (as *AuthService) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) bool {
	exists, err := as.kv.Exists(ctx, blacklistKeyPrefix+jti.String())
	if err != nil {
		as.logger.Warn("Failed to check token blacklist", gecho.Field("error", err))
		return true
	}
	return exists
}
