package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fundready/internal/platform/middleware"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

// TokenIssuer mints and validates HS256 access tokens. It satisfies
// middleware.JWTValidator so the auth middleware can consume it directly.
type TokenIssuer struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokenIssuer(signingKey string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{signingKey: []byte(signingKey), ttl: ttl}
}

type tokenClaims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// Issue mints a token for the user.
func (i *TokenIssuer) Issue(userID id.UserID, phone string, now time.Time) (string, error) {
	claims := tokenClaims{
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning the identity claims.
func (i *TokenIssuer) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Header["alg"])
		}
		return i.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid or expired token")
	}

	userID, err := id.ParseUserID(claims.Subject)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	return &middleware.JWTClaims{UserID: userID, Phone: claims.Phone}, nil
}
