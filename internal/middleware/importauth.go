package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tay1orr/notebook-loan-api/internal/models"
	"github.com/tay1orr/notebook-loan-api/internal/service"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
	"github.com/tay1orr/notebook-loan-api/pkg/response"
)

// ImportKeyHeader carries the shared upload key used by calendar sync scripts.
const ImportKeyHeader = "X-Import-Key"

// ImportAuth admits calendar imports from either an admin bearer token or the
// configured import key. Key-based requests carry no claims; handlers treat
// them as the "import-key" actor.
func ImportAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
				c.Abort()
				return
			}
			claims, err := tokens.Validate(parts[1])
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			if claims.Role != models.RoleAdmin {
				response.Error(c, appErrors.ErrForbidden)
				c.Abort()
				return
			}
			c.Set(ContextUserKey, claims)
			c.Next()
			return
		}

		if key := c.GetHeader(ImportKeyHeader); key != "" && tokens.MatchImportKey(key) {
			c.Next()
			return
		}

		response.Error(c, appErrors.ErrUnauthorized)
		c.Abort()
	}
}
