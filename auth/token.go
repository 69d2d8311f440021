// Package auth implements backoffice admin accounts: registration with
// email-based approval, password login issuing signed tokens, and the
// one-time-code password reset flow.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/indieinfra/vitrine/model"
)

type adminKeyType struct{}

var adminKey = adminKeyType{}

// Claims is the payload carried by an admin session token.
type Claims struct {
	AdminID int64  `json:"id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for an approved admin.
func IssueToken(secret string, ttl time.Duration, admin model.Admin) (string, error) {
	now := time.Now()
	claims := Claims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and validates a session token. Only HS256 is accepted.
func VerifyToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	return claims, nil
}

// AddAdmin stores the authenticated admin in the request context.
func AddAdmin(ctx context.Context, admin model.Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// GetAdmin retrieves the authenticated admin, if any.
func GetAdmin(ctx context.Context) (model.Admin, bool) {
	admin, ok := ctx.Value(adminKey).(model.Admin)
	return admin, ok
}
