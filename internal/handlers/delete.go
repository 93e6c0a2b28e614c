package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"imageserver/internal/apierror"
	"imageserver/internal/middleware"
	"imageserver/internal/models"
	"imageserver/internal/storage"
)

/*
DELETE /image/:filename
- removes the first copy found across the upload roots
- an already absent file is a 404, never a success
*/
func DeleteImage(resolver *storage.Resolver, authorizer middleware.Authorizer, logger log.Logger) gin.HandlerFunc {
	registerValidators()

	return func(c *gin.Context) {
		var params filenameParams
		if err := c.ShouldBindUri(&params); err != nil {
			level.Warn(logger).Log("msg", "invalid filename for deletion", "filename", c.Param("filename"))
			fail(c, apierror.Wrap(apierror.InvalidInput, "Invalid filename format.", err))
			return
		}

		if !authorizer.Authorize(c.Request) {
			level.Warn(logger).Log("msg", "unauthorized delete attempt", "filename", params.Filename, "client_ip", c.ClientIP())
			fail(c, apierror.New(apierror.Forbidden, "Forbidden: You do not have permission."))
			return
		}

		removed, err := resolver.Remove(params.Filename)
		if err != nil {
			fail(c, lookupError(err, "Invalid filename format."))
			return
		}

		level.Info(logger).Log("msg", "deleted image", "path", removed)
		c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Image deleted successfully."})
	}
}
