// Package auth issues and validates the bearer tokens of the API.
package auth

import (
	"fmt"
	"time"

	"github.com/drinkingsweets/avito-tech/config"
	"github.com/drinkingsweets/avito-tech/internal/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Roles carried in the token's role claim.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Claims is the decoded identity of a caller.
type Claims struct {
	UserID string
	Role   string
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenProvider signs and parses HMAC-SHA256 JWTs with a role claim.
type TokenProvider struct {
	log    *zap.SugaredLogger
	secret []byte
	ttl    time.Duration
}

// NewTokenProvider constructs a provider from the auth config section.
func NewTokenProvider(log *zap.SugaredLogger, cfg config.AuthConfig) *TokenProvider {
	return &TokenProvider{
		log:    log.Named("auth"),
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// IssueAdminToken issues a token carrying the ADMIN role.
func (p *TokenProvider) IssueAdminToken(userID string) (string, error) {
	return p.issue(userID, RoleAdmin)
}

// IssueUserToken issues a token carrying the USER role.
func (p *TokenProvider) IssueUserToken(userID string) (string, error) {
	return p.issue(userID, RoleUser)
}

func (p *TokenProvider) issue(userID, role string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	p.log.Infow("token issued", "user_id", userID, "role", role)
	return token, nil
}

// Parse validates a token and returns the caller identity. Any signature,
// expiry or shape problem is reported as ErrUnauthorized.
func (p *TokenProvider) Parse(raw string) (Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		p.log.Debugw("token rejected", "error", err)
		return Claims{}, fmt.Errorf("%w: %v", entities.ErrUnauthorized, err)
	}

	if claims.Role != RoleAdmin && claims.Role != RoleUser {
		return Claims{}, fmt.Errorf("%w: unknown role", entities.ErrUnauthorized)
	}

	return Claims{UserID: claims.Subject, Role: claims.Role}, nil
}
