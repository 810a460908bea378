package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken verifies a bearer token and returns its claims. When jwksURL
// is set the signing key comes from the remote JWKS; otherwise the token must
// be HS256-signed with secret.
func ValidateToken(tokenStr, jwksURL, secret string) (*CustomClaims, error) {
	if jwksURL != "" {
		return validateWithJWKS(tokenStr, jwksURL)
	}
	if secret == "" {
		return nil, errors.New("no token verification configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

func validateWithJWKS(tokenStr, jwksURL string) (*CustomClaims, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("error fetching jwks: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// StringTrim collapses runs of whitespace and trims the ends.
func StringTrim(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
