// Package identity verifies and mints the HS256 tokens issued by the identity provider.
package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"toptop/internal/model"
)

var ErrInvalidToken = errors.New("invalid identity token")

// Claims carried by identity tokens. Subject is the account id.
type Claims struct {
	Name    string  `json:"name"`
	Picture *string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Verify checks signature and expiry and returns the identity.
func Verify(tokenString, secret string) (model.Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Identity{}, err
		}
		return model.Identity{}, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{Subject: claims.Subject, Name: claims.Name, Picture: claims.Picture}, nil
}

// Sign mints a token for id valid for ttl. Used by the operator CLI and tests.
func Sign(id model.Identity, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:    id.Name,
		Picture: id.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
