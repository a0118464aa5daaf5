package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/service"
	"github.com/plateful/recipe-api/internal/types"
)

// IngredientHandler exposes list/create for the caller's ingredients.
type IngredientHandler struct {
	recipeService *service.RecipeService
}

func NewIngredientHandler(recipeService *service.RecipeService) *IngredientHandler {
	return &IngredientHandler{recipeService: recipeService}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.POST("", h.CreateIngredient)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"
	ingredients, err := h.recipeService.ListIngredients(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewIngredientResponses(ingredients))
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateAttrRequest
	if !bindJSON(c, &req) {
		return
	}

	ingredient, err := h.recipeService.CreateIngredient(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewIngredientResponse(ingredient))
}
