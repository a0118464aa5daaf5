package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/middleware"
	"github.com/plateful/recipe-api/internal/service"
	"github.com/plateful/recipe-api/internal/types"
)

// maxImageBytes caps uploaded image payloads at 10 MiB.
const maxImageBytes = 10 << 20

// RecipeHandler exposes full CRUD plus image upload for the caller's recipes.
type RecipeHandler struct {
	recipeService *service.RecipeService
	rateLimiter   *middleware.RateLimiter
}

func NewRecipeHandler(recipeService *service.RecipeService, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		rateLimiter:   rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)

		upload := recipes.Group("")
		if h.rateLimiter != nil {
			upload.Use(h.rateLimiter.RateLimitMiddleware())
		}
		upload.POST("/:id/upload-image", h.UploadImage)
	}
}

// recipeID parses the :id path parameter. An unparsable id is reported as
// not found, same as a missing one.
func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return 0, false
	}
	return uint(id), true
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeResponses(recipes))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeDetailResponse(recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewRecipeResponse(recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeResponse(recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage attaches an image to an owned recipe. This is an update of a
// sub-resource, so success is 200 rather than 201.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	data, err := readImagePayload(c)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipeService.SaveImage(c.Request.Context(), userID, id, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RecipeImageResponse{ID: recipe.ID, Image: recipe.ImageURL})
}

// readImagePayload accepts the image either as a multipart "image" field or
// as the raw request body. Payloads over the size cap are rejected, never
// truncated.
func readImagePayload(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxImageBytes {
			return nil, types.FieldErrors{"image": {"image exceeds the 10 MiB size limit"}}
		}
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return io.ReadAll(f)
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, types.FieldErrors{"image": {"image exceeds the 10 MiB size limit"}}
	}
	if len(data) == 0 {
		return nil, types.FieldErrors{"image": {"no image submitted"}}
	}
	return data, nil
}
