package types

import (
	"github.com/google/uuid"

	"github.com/plateful/recipe-api/internal/models"
)

// UserResponse is the public view of an account. The password hash is never
// part of any response.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

// TokenResponse carries the opaque bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// AttrResponse is the wire shape shared by tags and ingredients.
type AttrResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewTagResponse(t *models.Tag) AttrResponse {
	return AttrResponse{ID: t.ID, Name: t.Name}
}

func NewIngredientResponse(i *models.Ingredient) AttrResponse {
	return AttrResponse{ID: i.ID, Name: i.Name}
}

func NewTagResponses(tags []models.Tag) []AttrResponse {
	out := make([]AttrResponse, 0, len(tags))
	for i := range tags {
		out = append(out, NewTagResponse(&tags[i]))
	}
	return out
}

func NewIngredientResponses(ingredients []models.Ingredient) []AttrResponse {
	out := make([]AttrResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, NewIngredientResponse(&ingredients[i]))
	}
	return out
}

// RecipeResponse references tags and ingredients by id; list, create and
// update endpoints use this shape.
type RecipeResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Image       string  `json:"image"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

// RecipeDetailResponse expands tags and ingredients into full objects; only
// the retrieve endpoint uses it.
type RecipeDetailResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	TimeMinutes int            `json:"time_minutes"`
	Price       float64        `json:"price"`
	Link        string         `json:"link"`
	Image       string         `json:"image"`
	Tags        []AttrResponse `json:"tags"`
	Ingredients []AttrResponse `json:"ingredients"`
}

// RecipeImageResponse is returned by the image upload endpoint.
type RecipeImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	tagIDs := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	ingredientIDs := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ingredientIDs = append(ingredientIDs, i.ID)
	}
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       r.ImageURL,
		Tags:        tagIDs,
		Ingredients: ingredientIDs,
	}
}

func NewRecipeResponses(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	return out
}

func NewRecipeDetailResponse(r *models.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       r.ImageURL,
		Tags:        NewTagResponses(r.Tags),
		Ingredients: NewIngredientResponses(r.Ingredients),
	}
}
