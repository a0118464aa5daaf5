package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/api"
	"github.com/plateful/recipe-api/internal/middleware"
	"github.com/plateful/recipe-api/internal/service"
)

// SetupRouter builds the gin engine with CORS and all application routes.
func SetupRouter(
	authService *service.AuthService,
	recipeService *service.RecipeService,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	api.SetupAPI(router, authService, recipeService, rateLimiter)

	return router
}
