// Package auth provides concrete authenticators for the controller layer.
// They implement engine.Authenticator and produce principals the permission
// policies understand.
package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/warin-th/ctrlkit/apierror"
	"github.com/warin-th/ctrlkit/engine"
)

const bearerPrefix = "Bearer "

// BearerJWT authenticates requests carrying an HS256-signed bearer token in
// the Authorization header.
type BearerJWT struct {
	secret []byte
}

func NewBearerJWT(secret string) *BearerJWT {
	return &BearerJWT{secret: []byte(secret)}
}

func (a *BearerJWT) Authenticate(req engine.Request) (engine.AuthUser, error) {
	header := req.Header("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, apierror.AuthenticationFailed("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.AuthenticationFailed("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.AuthenticationFailed("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, apierror.AuthenticationFailed("missing subject claim")
	}
	staff, _ := claims["staff"].(bool)

	return &TokenUser{Subject: sub, Staff: staff, Claims: claims}, nil
}

// TokenUser is the principal extracted from a verified token.
type TokenUser struct {
	Subject string
	Staff   bool
	Claims  jwt.MapClaims
}

func (u *TokenUser) Identity() string { return u.Subject }

func (u *TokenUser) IsAuthenticated() bool { return true }

func (u *TokenUser) IsStaff() bool { return u.Staff }
