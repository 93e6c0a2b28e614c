package handlers

import (
	"errors"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"imageserver/internal/apierror"
	"imageserver/internal/storage"
)

// ServeImage streams a stored image, looking in each upload root in order.
func ServeImage(resolver *storage.Resolver) gin.HandlerFunc {
	registerValidators()

	return func(c *gin.Context) {
		var params filenameParams
		if err := c.ShouldBindUri(&params); err != nil {
			fail(c, apierror.Wrap(apierror.InvalidInput, "Invalid filename.", err))
			return
		}

		fullPath, err := resolver.Locate(params.Filename)
		if err != nil {
			fail(c, lookupError(err, "Invalid filename."))
			return
		}
		c.File(fullPath)
	}
}

// ServeStatic serves anything below the upload roots under /image/*filepath,
// with a one day cache lifetime and a weak ETag.
func ServeStatic(resolver *storage.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullPath, err := resolver.LocateStatic(c.Param("filepath"))
		if err != nil {
			fail(c, apierror.Wrap(apierror.NotFound, "Not Found", err))
			return
		}

		if info, err := os.Stat(fullPath); err == nil {
			c.Header("ETag", fmt.Sprintf(`W/"%x-%x"`, info.Size(), info.ModTime().UnixMilli()))
		}
		c.Header("Cache-Control", "public, max-age=86400")
		c.File(fullPath)
	}
}

func lookupError(err error, invalidMessage string) error {
	switch {
	case errors.Is(err, storage.ErrInvalidName):
		return apierror.Wrap(apierror.InvalidInput, invalidMessage, err)
	case errors.Is(err, storage.ErrNotFound):
		return apierror.Wrap(apierror.NotFound, "Image not found.", err)
	default:
		return apierror.Wrap(apierror.Unexpected, "Internal Server Error", err)
	}
}
