package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appbrand "agencydesk/internal/application/brand"
	"agencydesk/internal/domain/brand"
	"agencydesk/internal/interfaces/http/handlers/common"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

type BrandHandler struct {
	brands brandService
	logger logger.Interface
}

func NewBrandHandler(brands brandService, logger logger.Interface) *BrandHandler {
	return &BrandHandler{
		brands: brands,
		logger: logger,
	}
}

// CreateBrand handles POST /brands
// @Summary Create a brand
// @Tags brands
// @Accept json
// @Produce json
// @Security Bearer
// @Param brand body appbrand.CreateBrandCommand true "Brand data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /brands [post]
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var cmd appbrand.CreateBrandCommand
	if !common.BindJSON(c, &cmd) {
		return
	}

	result, err := h.brands.Create(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Brand created successfully")
}

// GetBrand handles GET /brands/:id
// @Summary Get a brand
// @Tags brands
// @Produce json
// @Security Bearer
// @Param id path string true "Brand ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /brands/{id} [get]
func (h *BrandHandler) GetBrand(c *gin.Context) {
	brandID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.brands.Get(brandID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListBrands handles GET /brands
// @Summary List brands
// @Tags brands
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /brands [get]
func (h *BrandHandler) ListBrands(c *gin.Context) {
	result := h.brands.List()
	utils.ListSuccessResponse(c, result, len(result))
}

// UpdateBrand handles PATCH /brands/:id
// @Summary Update a brand
// @Tags brands
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Brand ID"
// @Param brand body brand.Patch true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /brands/{id} [patch]
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	brandID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	var patch brand.Patch
	if !common.BindJSON(c, &patch) {
		return
	}

	result, err := h.brands.Update(c.Request.Context(), brandID, patch)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Brand updated successfully", result)
}

// DeleteBrand handles DELETE /brands/:id. Referencing records are kept,
// rejected or removed according to the configured delete policy.
// @Summary Delete a brand
// @Description Depending on the configured policy, records that reference the brand are kept, block the delete or are removed with it.
// @Tags brands
// @Produce json
// @Security Bearer
// @Param id path string true "Brand ID"
// @Success 204 "No Content"
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /brands/{id} [delete]
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	brandID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.brands.Delete(c.Request.Context(), brandID); err != nil {
		h.logger.Warnw("failed to delete brand", "brand_id", brandID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
