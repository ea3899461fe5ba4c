package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "agencydesk/internal/application/auth"
	"agencydesk/internal/interfaces/http/handlers/common"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

type AuthHandler struct {
	auth   authService
	logger logger.Interface
}

func NewAuthHandler(auth authService, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// Login handles POST /auth/login
// @Summary Sign in with a staff email
// @Description Issues a bearer token for a known staff email.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body appauth.LoginCommand true "Login credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var cmd appauth.LoginCommand
	if !common.BindJSON(c, &cmd) {
		return
	}

	session, err := h.auth.Login(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("login failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", session)
}

// Me handles GET /auth/me
// @Summary Get the signed-in user
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	result, err := h.auth.Me(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
