package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appresource "agencydesk/internal/application/resource"
	"agencydesk/internal/domain/resource"
	"agencydesk/internal/interfaces/http/handlers/common"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

const defaultActivityLimit = 10

type ResourceHandler struct {
	resources resourceService
	logger    logger.Interface
}

func NewResourceHandler(resources resourceService, logger logger.Interface) *ResourceHandler {
	return &ResourceHandler{
		resources: resources,
		logger:    logger,
	}
}

// CreateResource handles POST /resources for files already hosted elsewhere.
// @Summary Register a hosted resource
// @Tags resources
// @Accept json
// @Produce json
// @Security Bearer
// @Param resource body appresource.CreateResourceCommand true "Resource data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /resources [post]
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var cmd appresource.CreateResourceCommand
	if !common.BindJSON(c, &cmd) {
		return
	}

	result, err := h.resources.Create(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Resource created successfully")
}

// UploadResource handles POST /resources/upload (multipart/form-data)
// @Summary Upload a resource file
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "Resource file"
// @Param brandId formData string true "Brand ID"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param category formData string true "Category"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Router /resources/upload [post]
func (h *ResourceHandler) UploadResource(c *gin.Context) {
	file, closeFile, err := openUpload(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer closeFile()

	cmd := appresource.UploadResourceCommand{
		BrandID:     c.PostForm("brandId"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    resource.Category(c.PostForm("category")),
	}

	result, err := h.resources.Upload(c.Request.Context(), cmd, file)
	if err != nil {
		h.logger.Warnw("resource upload failed", "file_name", file.Name, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Resource uploaded successfully")
}

// GetResource handles GET /resources/:id
// @Summary Get a resource
// @Tags resources
// @Produce json
// @Security Bearer
// @Param id path string true "Resource ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	resourceID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.resources.Get(resourceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListResources handles GET /resources?brandId=&category=
// @Summary List resources
// @Tags resources
// @Produce json
// @Security Bearer
// @Param brandId query string false "Filter by brand"
// @Param category query string false "Filter by category"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	category := resource.Category(c.Query("category"))
	if category != "" && !category.IsValid() {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid filter", "unknown category "+string(category)))
		return
	}

	result := h.resources.List(c.Query("brandId"), category)
	utils.ListSuccessResponse(c, utils.Paginate(result, utils.ParsePagination(c)), len(result))
}

// UpdateResource handles PATCH /resources/:id
// @Summary Update a resource
// @Tags resources
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Resource ID"
// @Param resource body resource.Patch true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /resources/{id} [patch]
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	resourceID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	var patch resource.Patch
	if !common.BindJSON(c, &patch) {
		return
	}

	result, err := h.resources.Update(c.Request.Context(), resourceID, patch)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Resource updated successfully", result)
}

// DeleteResource handles DELETE /resources/:id
// @Summary Delete a resource
// @Tags resources
// @Produce json
// @Security Bearer
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	resourceID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.resources.Delete(c.Request.Context(), resourceID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// AccessResource handles POST /resources/:id/access, recorded when a file is
// opened or downloaded.
// @Summary Record a resource access
// @Description Called when a file is opened or downloaded.
// @Tags resources
// @Produce json
// @Security Bearer
// @Param id path string true "Resource ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /resources/{id}/access [post]
func (h *ResourceHandler) AccessResource(c *gin.Context) {
	resourceID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.resources.RecordAccess(c.Request.Context(), resourceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListActivity handles GET /resources/activity?limit=
// @Summary List resource activity
// @Tags resources
// @Produce json
// @Security Bearer
// @Param limit query int false "Maximum number of entries" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /resources/activity [get]
func (h *ResourceHandler) ListActivity(c *gin.Context) {
	limit := defaultActivityLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid limit", s))
			return
		}
		limit = n
	}

	result := h.resources.Activity(limit)
	utils.ListSuccessResponse(c, result, len(result))
}
