package service

import (
	"strings"

	"complaint-service/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the caller identity extracted from a verified bearer token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// TokenVerifier validates bearer credentials issued by the auth service.
// This service only verifies tokens; issuance lives elsewhere.
type TokenVerifier struct {
	jwtConfig config.JWTConfig
}

func NewTokenVerifier(jwtConfig config.JWTConfig) *TokenVerifier {
	return &TokenVerifier{jwtConfig: jwtConfig}
}

// VerifyAuthHeader extracts and verifies the credential from a raw
// Authorization header value. A missing or malformed header is an
// authentication failure, never a panic.
func (v *TokenVerifier) VerifyAuthHeader(header string) (*Claims, error) {
	if header == "" {
		return nil, ErrMissingCredentials
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, ErrMalformedCredentials
	}

	return v.verifyToken(parts[1])
}

func (v *TokenVerifier) verifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(v.jwtConfig.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	rawID, ok := mapClaims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims := &Claims{UserID: userID}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}

	return claims, nil
}
