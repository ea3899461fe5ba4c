package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcommon "agencydesk/internal/application/common"
	"agencydesk/internal/shared/errors"
)

// formOverhead is the room left for the text fields of a multipart upload.
const formOverhead = 1 << 20

// openUpload reads the "file" part of a multipart request. The caller must
// call the returned close func.
func openUpload(c *gin.Context) (appcommon.File, func(), error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, appcommon.MaxUploadSize+formOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		return appcommon.File{}, nil, errors.NewValidationError("Validation failed", "file is required")
	}
	f, err := header.Open()
	if err != nil {
		return appcommon.File{}, nil, errors.NewInternalError("failed to read upload")
	}
	return appcommon.File{Name: header.Filename, Size: header.Size, Reader: f}, func() { _ = f.Close() }, nil
}
