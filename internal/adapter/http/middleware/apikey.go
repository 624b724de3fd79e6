package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/pkg/apiresponse"
)

const apiKeyHeader = "X-API-Key"

// APIKeyMiddleware rejects any request whose X-API-Key header does not match
// the configured secret. An empty configured secret rejects everything, so
// deployments must set API_KEY.
func APIKeyMiddleware(expectedKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(apiKeyHeader)
		if apiKey == "" || expectedKey == "" ||
			subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apiresponse.Error(apiresponse.MsgUnauthorized, GetLang(c)),
			)
			return
		}
		c.Next()
	}
}
