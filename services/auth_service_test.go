package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"konigfood_server/lib"
	"konigfood_server/storage"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"konigfood_server/structs"
)

// encodeTestHash builds an Argon2id hash string for test credentials with
// parameters small enough to keep the suite fast.
func encodeTestHash(password string) string {
	salt := []byte("0123456789abcdef")
	digest := argon2.IDKey([]byte(password), salt, 1, 8*1024, 1, 32)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, 8*1024, 1, 1,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
}

func newAuthFixture(t *testing.T) (*AuthService, *storage.MemoryKV) {
	t.Helper()
	cfg := newTestConfig()
	cfg.Auth.AdminPasswordHash = encodeTestHash("correct horse")
	kv := storage.NewMemoryKV()
	return NewAuthService(gecho.NewDefaultLogger(), cfg, kv), kv
}

func TestLogin(t *testing.T) {
	as, _ := newAuthFixture(t)

	err := as.Login(&structs.AuthRequest{Email: "admin@example.com", Password: "correct horse"})
	assert.NoError(t, err)

	err = as.Login(&structs.AuthRequest{Email: "admin@example.com", Password: "battery staple"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	// Unknown identifier and wrong password fail identically.
	err = as.Login(&structs.AuthRequest{Email: "intruder@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	as, _ := newAuthFixture(t)

	signed, claims, err := as.GenerateAccessToken()
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	parsed, err := lib.ParseToken(signed, as.cfg.Auth.AccessTokenSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", parsed.Sub)
	assert.Equal(t, "admin", parsed.Role)
	assert.Equal(t, claims.Jti, parsed.Jti)
	assert.WithinDuration(t, claims.Exp, parsed.Exp, time.Second)

	// A token signed with a different secret must not parse.
	_, err = lib.ParseToken(signed, "some other secret")
	assert.Error(t, err)
}

func TestTokenBlacklist(t *testing.T) {
	as, _ := newAuthFixture(t)
	ctx := context.Background()

	_, claims, err := as.GenerateAccessToken()
	require.NoError(t, err)

	assert.False(t, as.IsTokenBlacklisted(ctx, claims.Jti))

	require.NoError(t, as.BlacklistToken(ctx, claims))
	assert.True(t, as.IsTokenBlacklisted(ctx, claims.Jti))
}

func TestBlacklistSkipsExpiredToken(t *testing.T) {
	as, kv := newAuthFixture(t)
	ctx := context.Background()

	_, claims, err := as.GenerateAccessToken()
	require.NoError(t, err)
	claims.Exp = time.Now().Add(-time.Minute)

	require.NoError(t, as.BlacklistToken(ctx, claims))

	exists, err := kv.Exists(ctx, "jwt_blacklist:"+claims.Jti.String())
	require.NoError(t, err)
	assert.False(t, exists, "an already expired token needs no blacklist entry")
}
