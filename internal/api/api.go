package api

import (
	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/middleware"
	"github.com/plateful/recipe-api/internal/service"
)

// SetupAPI registers every endpoint under /api/v1. The user routes manage
// accounts and tokens; everything under /recipe requires a resolved bearer
// token.
func SetupAPI(router *gin.Engine, authService *service.AuthService, recipeService *service.RecipeService, rateLimiter *middleware.RateLimiter) {
	v1 := router.Group("/api/v1")

	NewUserHandler(authService).RegisterRoutes(v1)

	recipeGroup := v1.Group("/recipe")
	recipeGroup.Use(middleware.AuthMiddleware(authService))
	{
		NewTagHandler(recipeService).RegisterRoutes(recipeGroup)
		NewIngredientHandler(recipeService).RegisterRoutes(recipeGroup)
		NewRecipeHandler(recipeService, rateLimiter).RegisterRoutes(recipeGroup)
	}
}
