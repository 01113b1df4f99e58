package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview/membership/internal/types"
)

// CORSMiddleware opens the API to browser clients. Every endpoint is
// read-only or side-effect-free and nothing is credentialed, so a
// wildcard origin is acceptable.
func CORSMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+types.HeaderRequestID)
	c.Writer.Header().Set("Access-Control-Expose-Headers", types.HeaderRequestID)
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
