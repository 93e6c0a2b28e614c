package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"imageserver/internal/apierror"
	"imageserver/internal/models"
	"imageserver/internal/storage"
)

// multipartOverhead is the allowance for boundaries, part headers and
// small form fields on top of the file size limit.
const multipartOverhead = 1 << 20

const invalidTypeMessage = "Invalid file type. Only JPEG, PNG, and GIF images are allowed."

// UploadImage streams the "image" part of a multipart body into target.
// noFileMessage is what the client sees when no image part was sent.
func UploadImage(uploader *storage.Uploader, target storage.Target, noFileMessage string, logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSize := uploader.MaxFileSize()
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+multipartOverhead)

		reader, err := c.Request.MultipartReader()
		if err != nil {
			fail(c, apierror.Wrap(apierror.InvalidInput, noFileMessage, err))
			return
		}

		for {
			part, err := reader.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				fail(c, uploadError(err, maxSize))
				return
			}

			// plain form fields are ignored
			if part.FileName() == "" {
				part.Close()
				continue
			}
			if part.FormName() != imageField {
				part.Close()
				fail(c, apierror.New(apierror.InvalidInput, "Unexpected file field. Ensure the field name is correct.").
					WithCode(apierror.CodeUnexpectedFile))
				return
			}

			stored, err := uploader.Upload(part, part.FileName(), part.Header.Get("Content-Type"), target)
			part.Close()
			if err != nil {
				fail(c, uploadError(err, maxSize))
				return
			}

			level.Debug(logger).Log("msg", "upload accepted", "filename", stored.Filename, "bytes", stored.SizeBytes)
			c.JSON(http.StatusOK, models.UploadResponse{
				Success:  true,
				URL:      publicURL(c, target, stored.Filename),
				Filename: stored.Filename,
			})
			return
		}

		fail(c, apierror.New(apierror.InvalidInput, noFileMessage))
	}
}

func uploadError(err error, maxSize int64) error {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, storage.ErrInvalidType), errors.Is(err, storage.ErrUnsupportedExtension):
		return apierror.Wrap(apierror.InvalidInput, invalidTypeMessage, err)
	case errors.Is(err, storage.ErrTooLarge), errors.As(err, &maxBytesErr):
		message := fmt.Sprintf("File too large. Maximum size is %sMB.",
			strconv.FormatFloat(float64(maxSize)/1024/1024, 'f', -1, 64))
		return apierror.Wrap(apierror.TooLarge, message, err).WithCode(apierror.CodeFileTooLarge)
	default:
		return apierror.Wrap(apierror.Unexpected, "Internal Server Error", err)
	}
}

// publicURL is the URL reported back to the client. For the secondary target
// it points below /uploads/chouffeur/, which GET /uploads/:filename does not
// serve; clients already rely on the string, so it is kept as is.
func publicURL(c *gin.Context, target storage.Target, filename string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + target.URLPath + filename
}
