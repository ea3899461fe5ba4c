package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appuser "agencydesk/internal/application/user"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/interfaces/http/handlers/common"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

type UserHandler struct {
	users  userService
	logger logger.Interface
}

func NewUserHandler(users userService, logger logger.Interface) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// CreateUser handles POST /users
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param user body appuser.CreateUserCommand true "User data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var cmd appuser.CreateUserCommand
	if !common.BindJSON(c, &cmd) {
		return
	}

	result, err := h.users.Create(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}

// GetUser handles GET /users/:id
// @Summary Get a user
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.users.Get(userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListUsers handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	result := h.users.List()
	utils.ListSuccessResponse(c, result, len(result))
}

// UpdateUser handles PATCH /users/:id
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Param user body user.Patch true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	var patch user.Patch
	if !common.BindJSON(c, &patch) {
		return
	}

	result, err := h.users.Update(c.Request.Context(), userID, patch)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", result)
}

// DeleteUser handles DELETE /users/:id
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
