package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"imageserver/internal/apierror"
	"imageserver/internal/models"
)

// ErrorEnvelope turns the last error a handler attached with c.Error into the
// JSON envelope. It is the only place failures are rendered.
func ErrorEnvelope(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		apiErr := apierror.From(last.Err)
		status := apiErr.Status()
		if status >= http.StatusInternalServerError {
			level.Error(logger).Log("msg", "request failed", "path", c.Request.URL.Path, "err", last.Err)
		} else {
			level.Debug(logger).Log("msg", "request rejected", "path", c.Request.URL.Path, "status", status, "err", last.Err)
		}

		c.JSON(status, models.ErrorResponse{Error: apiErr.Message, Code: apiErr.Code})
	}
}

// Recovery converts panics into the 500 envelope and logs the value.
func Recovery(logger log.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		level.Error(logger).Log("msg", "panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	})
}
