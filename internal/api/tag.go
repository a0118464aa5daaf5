package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/service"
	"github.com/plateful/recipe-api/internal/types"
)

// TagHandler exposes list/create for the caller's tags.
type TagHandler struct {
	recipeService *service.RecipeService
}

func NewTagHandler(recipeService *service.RecipeService) *TagHandler {
	return &TagHandler{recipeService: recipeService}
}

func (h *TagHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.POST("", h.CreateTag)
	}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"
	tags, err := h.recipeService.ListTags(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewTagResponses(tags))
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateAttrRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.recipeService.CreateTag(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewTagResponse(tag))
}
