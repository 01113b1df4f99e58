package middleware

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	ierr "github.com/harborview/membership/internal/errors"
	"github.com/harborview/membership/internal/types"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler converts errors collected on the gin context into the
// standard error response. Only hints and reportable details reach the
// caller; internal error text stays in the logs.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		response := ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Display: displayMessage(err),
				Details: safeDetails(err),
			},
			RequestID: types.GetRequestID(c.Request.Context()),
		}

		c.JSON(ierr.HTTPStatusFromErr(err), response)
	}
}

func displayMessage(err error) string {
	// GetAllHints is post-order traversal; the first non-empty hint is the
	// one closest to where the error was built
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

// safeDetails merges every JSON object payload attached via
// WithReportableDetails. Non-JSON safe details are ignored.
func safeDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			if !strings.HasPrefix(payload, "{") {
				continue
			}
			var decoded map[string]any
			if json.Unmarshal([]byte(payload), &decoded) == nil {
				for k, v := range decoded {
					details[k] = v
				}
			}
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
