package routes

import (
	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/permission"
	"agencydesk/internal/interfaces/http/handlers"
	"agencydesk/internal/interfaces/http/middleware"
)

type BrandRouteConfig struct {
	BrandHandler   *handlers.BrandHandler
	AuthMiddleware *middleware.AuthMiddleware
	Authorizer     middleware.Authorizer
}

func SetupBrandRoutes(api *gin.RouterGroup, config *BrandRouteConfig) {
	can := func(action permission.Action) gin.HandlerFunc {
		return middleware.RequirePermission(config.Authorizer, permission.ResourceBrand, action)
	}

	brands := api.Group("/brands")
	brands.Use(config.AuthMiddleware.RequireAuth())
	{
		brands.POST("", can(permission.ActionCreate), config.BrandHandler.CreateBrand)
		brands.GET("", can(permission.ActionRead), config.BrandHandler.ListBrands)

		brands.GET("/:id", can(permission.ActionRead), config.BrandHandler.GetBrand)
		brands.PATCH("/:id", can(permission.ActionUpdate), config.BrandHandler.UpdateBrand)
		brands.DELETE("/:id", can(permission.ActionDelete), config.BrandHandler.DeleteBrand)
	}
}
