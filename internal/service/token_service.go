package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tay1orr/notebook-loan-api/internal/models"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
)

// TokenService validates access tokens issued by the external identity
// provider and the static import key used by headless calendar uploads.
// It deliberately has no way to mint tokens: authentication lives outside
// this service.
type TokenService struct {
	secret        string
	importKeyHash string
}

// NewTokenService constructs a token service.
func NewTokenService(secret, importKeyHash string) *TokenService {
	return &TokenService{secret: secret, importKeyHash: importKeyHash}
}

// Validate parses and validates an access token returning the claims.
func (s *TokenService) Validate(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// MatchImportKey compares a presented import key against the configured
// bcrypt hash. Returns false when no hash is configured.
func (s *TokenService) MatchImportKey(key string) bool {
	if s.importKeyHash == "" || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.importKeyHash), []byte(key)) == nil
}
