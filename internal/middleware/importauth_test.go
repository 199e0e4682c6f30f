package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tay1orr/notebook-loan-api/internal/models"
	"github.com/tay1orr/notebook-loan-api/internal/service"
)

func signToken(t *testing.T, secret string, role models.UserRole) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID: "user-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func importAuthRouter(t *testing.T) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("upload-key"), bcrypt.MinCost)
	require.NoError(t, err)
	tokens := service.NewTokenService("secret", string(hash))

	r := gin.New()
	r.POST("/import", ImportAuth(tokens), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens
}

func TestImportAuthAcceptsAdminToken(t *testing.T) {
	r, _ := importAuthRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/import", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", models.RoleAdmin))

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestImportAuthRejectsNonAdminToken(t *testing.T) {
	r, _ := importAuthRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/import", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", models.RoleStudent))

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestImportAuthAcceptsImportKey(t *testing.T) {
	r, _ := importAuthRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/import", nil)
	req.Header.Set(ImportKeyHeader, "upload-key")

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestImportAuthRejectsWrongKey(t *testing.T) {
	r, _ := importAuthRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/import", nil)
	req.Header.Set(ImportKeyHeader, "guess")

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImportAuthRejectsAnonymous(t *testing.T) {
	r, _ := importAuthRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/import", nil)

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
