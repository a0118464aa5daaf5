package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/recipe-api/internal/middleware"
	"github.com/plateful/recipe-api/internal/service"
	"github.com/plateful/recipe-api/internal/types"
)

// UserHandler exposes account creation, token issuance and the
// self-service profile endpoints.
type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/create", h.CreateUser)
		users.POST("/token", h.IssueToken)

		me := users.Group("/me", middleware.AuthMiddleware(h.authService))
		{
			me.GET("", h.GetMe)
			me.PUT("", h.UpdateMe)
			me.PATCH("", h.UpdateMe)
		}
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewUserResponse(user))
}

func (h *UserHandler) IssueToken(c *gin.Context) {
	var req types.IssueTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		respondError(c, errs)
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(user))
}
