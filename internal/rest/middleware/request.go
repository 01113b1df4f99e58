package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harborview/membership/internal/types"
)

// maxRequestIDLength bounds client-supplied request ids before they are
// echoed back in the response header
const maxRequestIDLength = 64

// RequestIDMiddleware propagates the caller's request id, or generates
// one, through the request context and the response header
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" || len(requestID) > maxRequestIDLength {
		requestID = uuid.New().String()
	}

	ctx := context.WithValue(c.Request.Context(), types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)
	c.Next()
}
