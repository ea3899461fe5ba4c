package common

import (
	"github.com/gin-gonic/gin"

	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/utils"
)

// BindJSON decodes the request body into dst. On failure it writes a 400
// response and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return false
	}
	return true
}

// PathID returns the named path parameter. On failure it writes a 400
// response and returns false.
func PathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if err := utils.ValidateID(id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", false
	}
	return id, true
}
