package auth

import (
	"testing"
	"time"

	"github.com/drinkingsweets/avito-tech/config"
	"github.com/drinkingsweets/avito-tech/internal/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProvider(secret string, ttl time.Duration) *TokenProvider {
	return NewTokenProvider(zap.NewNop().Sugar(), config.AuthConfig{
		JWTSecret: secret,
		TokenTTL:  ttl,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	p := testProvider("test-secret", time.Hour)

	token, err := p.IssueAdminToken("u1")
	require.NoError(t, err)

	claims, err := p.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenUserRole(t *testing.T) {
	p := testProvider("test-secret", time.Hour)

	token, err := p.IssueUserToken("u2")
	require.NoError(t, err)

	claims, err := p.Parse(token)
	require.NoError(t, err)
	require.Equal(t, RoleUser, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := testProvider("secret-a", time.Hour)
	verifier := testProvider("secret-b", time.Hour)

	token, err := issuer.IssueUserToken("u1")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestTokenExpired(t *testing.T) {
	p := testProvider("test-secret", -time.Minute)

	token, err := p.IssueUserToken("u1")
	require.NoError(t, err)

	_, err = p.Parse(token)
	require.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestTokenGarbage(t *testing.T) {
	p := testProvider("test-secret", time.Hour)

	_, err := p.Parse("not-a-token")
	require.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestTokenUnknownRoleRejected(t *testing.T) {
	p := testProvider("test-secret", time.Hour)

	now := time.Now()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: "SUPERUSER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = p.Parse(raw)
	require.ErrorIs(t, err, entities.ErrUnauthorized)
}
