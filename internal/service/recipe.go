package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/recipe-api/internal/models"
	"github.com/plateful/recipe-api/internal/types"
)

// RecipeService handles recipes and their user-owned attributes (tags and
// ingredients). Every query is scoped to the owner passed in; there is no
// unscoped access path.
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{db: db, images: images}
}

// ListTags returns the caller's tags ordered by name descending. With
// assignedOnly set, only tags attached to at least one of the caller's
// recipes are returned, each at most once.
func (s *RecipeService) ListTags(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	query := s.db.WithContext(ctx).Where("tags.user_id = ?", userID)
	if assignedOnly {
		assigned := s.db.Table("recipe_tags").
			Select("recipe_tags.tag_id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ? AND recipes.deleted_at IS NULL", userID)
		query = query.Where("tags.id IN (?)", assigned)
	}

	var tags []models.Tag
	if err := query.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag persists a tag owned by the caller. Any owner supplied by the
// client is irrelevant; ownership always comes from the authenticated user.
func (s *RecipeService) CreateTag(ctx context.Context, userID uuid.UUID, req *types.CreateAttrRequest) (*models.Tag, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	tag := models.Tag{Name: req.Name, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListIngredients mirrors ListTags for ingredients.
func (s *RecipeService) ListIngredients(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		assigned := s.db.Table("recipe_ingredients").
			Select("recipe_ingredients.ingredient_id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ? AND recipes.deleted_at IS NULL", userID)
		query = query.Where("ingredients.id IN (?)", assigned)
	}

	var ingredients []models.Ingredient
	if err := query.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredient persists an ingredient owned by the caller.
func (s *RecipeService) CreateIngredient(ctx context.Context, userID uuid.UUID, req *types.CreateAttrRequest) (*models.Ingredient, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	ingredient := models.Ingredient{Name: req.Name, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ListRecipes returns the caller's recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves one of the caller's recipes with tags and ingredients
// loaded. A recipe that exists but belongs to someone else is reported the
// same way as one that does not exist.
func (s *RecipeService) GetRecipe(ctx context.Context, userID uuid.UUID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe persists a recipe owned by the caller. Referenced tag and
// ingredient ids must exist but may belong to other users.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		UserID:      userID,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe applies a full or partial update to one of the caller's
// recipes. Ownership is not reassignable.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID uuid.UUID, id uint, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.TimeMinutes != nil {
		updates["time_minutes"] = *req.TimeMinutes
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Link != nil {
		updates["link"] = *req.Link
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if req.Tags != nil {
		tags, err := s.resolveTags(ctx, *req.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(tags); err != nil {
			return nil, err
		}
	}
	if req.Ingredients != nil {
		ingredients, err := s.resolveIngredients(ctx, *req.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(recipe).Association("Ingredients").Replace(ingredients); err != nil {
			return nil, err
		}
	}

	return s.GetRecipe(ctx, userID, id)
}

// DeleteRecipe removes one of the caller's recipes.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID uuid.UUID, id uint) error {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(recipe).Error
}

// SaveImage validates and stores an uploaded image for one of the caller's
// recipes, replacing any previous image reference.
func (s *RecipeService) SaveImage(ctx context.Context, userID uuid.UUID, id uint, data []byte) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, types.FieldErrors{"image": {"upload a valid image"}}
	}

	key := fmt.Sprintf("recipe-images/%s.%s", uuid.New().String(), format)
	url, err := s.images.Upload(ctx, key, "image/"+format, data)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(recipe).Update("image_url", url).Error; err != nil {
		return nil, err
	}
	recipe.ImageURL = url
	return recipe, nil
}

func (s *RecipeService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Where("id IN ?", dedupe(ids)).Find(&tags).Error; err != nil {
		return nil, err
	}
	if missing := missingIDs(ids, tagIDs(tags)); len(missing) > 0 {
		errs := types.FieldErrors{}
		for _, id := range missing {
			errs.Add("tags", fmt.Sprintf("invalid id %d - object does not exist", id))
		}
		return nil, errs
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Where("id IN ?", dedupe(ids)).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	found := make([]uint, 0, len(ingredients))
	for _, i := range ingredients {
		found = append(found, i.ID)
	}
	if missing := missingIDs(ids, found); len(missing) > 0 {
		errs := types.FieldErrors{}
		for _, id := range missing {
			errs.Add("ingredients", fmt.Sprintf("invalid id %d - object does not exist", id))
		}
		return nil, errs
	}
	return ingredients, nil
}

func tagIDs(tags []models.Tag) []uint {
	out := make([]uint, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.ID)
	}
	return out
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(requested, found []uint) []uint {
	have := make(map[uint]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []uint
	seen := make(map[uint]struct{})
	for _, id := range requested {
		if _, ok := have[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}
	return missing
}
