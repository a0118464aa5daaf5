package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/recipe-api/internal/models"
)

func TestListTagsLimitedToUser(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	user, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")
	other := createTestUser(t, db, "other@gmail.com", "12345")

	require.NoError(t, db.Create(&models.Tag{Name: "Vegan", UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Tag{Name: "Dessert", UserID: other.ID}).Error)

	w := doJSON(t, engine, "GET", "/api/v1/recipe/tags", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	decodeBody(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Vegan", body[0]["name"])
}

func TestListTagsOrderedByNameDescending(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	user, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")

	for _, name := range []string{"Breakfast", "Vegan", "Dessert"} {
		require.NoError(t, db.Create(&models.Tag{Name: name, UserID: user.ID}).Error)
	}

	w := doJSON(t, engine, "GET", "/api/v1/recipe/tags", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	decodeBody(t, w, &body)
	require.Len(t, body, 3)
	assert.Equal(t, "Vegan", body[0]["name"])
	assert.Equal(t, "Dessert", body[1]["name"])
	assert.Equal(t, "Breakfast", body[2]["name"])
}

func TestCreateTag(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	user, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")

	w := doJSON(t, engine, "POST", "/api/v1/recipe/tags", token, map[string]interface{}{
		"name": "Comfort Food",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var tag models.Tag
	require.NoError(t, db.Where("name = ?", "Comfort Food").First(&tag).Error)
	assert.Equal(t, user.ID, tag.UserID)
}

func TestCreateTagEmptyName(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	_, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")

	w := doJSON(t, engine, "POST", "/api/v1/recipe/tags", token, map[string]interface{}{
		"name": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string][]string
	decodeBody(t, w, &body)
	assert.Contains(t, body, "name")

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListTagsAssignedOnly(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	user, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")

	assigned := models.Tag{Name: "Dinner", UserID: user.ID}
	unassigned := models.Tag{Name: "Lunch", UserID: user.ID}
	require.NoError(t, db.Create(&assigned).Error)
	require.NoError(t, db.Create(&unassigned).Error)

	recipe := models.Recipe{Title: "Coq au vin", TimeMinutes: 90, Price: 12.50, UserID: user.ID, Tags: []models.Tag{assigned}}
	require.NoError(t, db.Create(&recipe).Error)

	w := doJSON(t, engine, "GET", "/api/v1/recipe/tags?assigned_only=1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	decodeBody(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Dinner", body[0]["name"])
}

func TestListTagsAssignedOnlyDeduplicates(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	user, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")

	tag := models.Tag{Name: "Dinner", UserID: user.ID}
	require.NoError(t, db.Create(&tag).Error)

	for _, title := range []string{"Eggs benedict", "Porridge"} {
		recipe := models.Recipe{Title: title, TimeMinutes: 10, Price: 3.00, UserID: user.ID, Tags: []models.Tag{tag}}
		require.NoError(t, db.Create(&recipe).Error)
	}

	w := doJSON(t, engine, "GET", "/api/v1/recipe/tags?assigned_only=1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	decodeBody(t, w, &body)
	assert.Len(t, body, 1)
}

func TestListTagsAssignedOnlyIgnoresDeletedRecipes(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	user, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")

	tag := models.Tag{Name: "Dinner", UserID: user.ID}
	require.NoError(t, db.Create(&tag).Error)
	recipe := models.Recipe{Title: "Stew", TimeMinutes: 60, Price: 8.00, UserID: user.ID, Tags: []models.Tag{tag}}
	require.NoError(t, db.Create(&recipe).Error)
	require.NoError(t, db.Delete(&recipe).Error)

	w := doJSON(t, engine, "GET", "/api/v1/recipe/tags?assigned_only=1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	decodeBody(t, w, &body)
	assert.Len(t, body, 0)
}
