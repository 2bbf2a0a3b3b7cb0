package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ricemill/internal/core/apperror"
	appctx "ricemill/internal/core/context"
	"ricemill/pkg/logger"
)

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	StatusCode int            `json:"statusCode"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Success    bool           `json:"success"`
}

// ErrorHandler renders the last error attached with c.Error.
// Internal causes are logged and never sent to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			status := appErr.HTTPStatus
			if status == 0 {
				status = http.StatusInternalServerError
			}
			body := ErrorResponse{
				StatusCode: status,
				Code:       appErr.Code,
				Message:    appErr.Message,
				Details:    appErr.Details,
			}
			if status >= http.StatusInternalServerError {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
				body.Details = map[string]any{"requestId": appctx.GetRequestID(c.Request.Context())}
			} else if appErr.Err != nil {
				logger.Warn(c.Request.Context(), "request error", "code", appErr.Code, "cause", appErr.Err)
			}
			c.JSON(status, body)
			return
		}

		logger.Error(c.Request.Context(), "unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       apperror.CodeInternal,
			Message:    "Internal server error",
			Details:    map[string]any{"requestId": appctx.GetRequestID(c.Request.Context())},
		})
	}
}
