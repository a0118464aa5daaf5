package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/plateful/recipe-api/internal/models"
)

func TestCreateUser(t *testing.T) {
	engine, db, _ := setupTestRouter(t)

	w := doJSON(t, engine, "POST", "/api/v1/users/create", "", map[string]interface{}{
		"email":    "test@gmail.com",
		"password": "12345",
		"name":     "Test Name",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "test@gmail.com", body["email"])
	assert.Equal(t, "Test Name", body["name"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	var user models.User
	require.NoError(t, db.Where("email = ?", "test@gmail.com").First(&user).Error)
	assert.NotEqual(t, "12345", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("12345")))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	createTestUser(t, db, "test@gmail.com", "12345")

	w := doJSON(t, engine, "POST", "/api/v1/users/create", "", map[string]interface{}{
		"email":    "test@gmail.com",
		"password": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string][]string
	decodeBody(t, w, &body)
	assert.Contains(t, body, "email")
}

func TestCreateUserEmailUniquenessIsCaseInsensitive(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	createTestUser(t, db, "test@gmail.com", "12345")

	w := doJSON(t, engine, "POST", "/api/v1/users/create", "", map[string]interface{}{
		"email":    "TEST@GMAIL.COM",
		"password": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateUserInvalidInput(t *testing.T) {
	engine, db, _ := setupTestRouter(t)

	cases := []struct {
		name    string
		payload map[string]interface{}
		field   string
	}{
		{"malformed email", map[string]interface{}{"email": "not-an-email", "password": "12345"}, "email"},
		{"missing email", map[string]interface{}{"password": "12345"}, "email"},
		{"short password", map[string]interface{}{"email": "a@b.com", "password": "1234"}, "password"},
		{"missing password", map[string]interface{}{"email": "a@b.com"}, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, engine, "POST", "/api/v1/users/create", "", tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string][]string
			decodeBody(t, w, &body)
			assert.Contains(t, body, tc.field)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestIssueToken(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	createTestUser(t, db, "test@gmail.com", "12345")

	w := doJSON(t, engine, "POST", "/api/v1/users/token", "", map[string]interface{}{
		"email":    "test@gmail.com",
		"password": "12345",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	first := body["token"]
	assert.Len(t, first, 40)

	// Reissuing returns the same token, not a new one.
	w = doJSON(t, engine, "POST", "/api/v1/users/token", "", map[string]interface{}{
		"email":    "test@gmail.com",
		"password": "12345",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.Equal(t, first, body["token"])
}

func TestIssueTokenBadCredentials(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	createTestUser(t, db, "test@gmail.com", "12345")

	wrongPassword := doJSON(t, engine, "POST", "/api/v1/users/token", "", map[string]interface{}{
		"email":    "test@gmail.com",
		"password": "wrong",
	})
	unknownEmail := doJSON(t, engine, "POST", "/api/v1/users/token", "", map[string]interface{}{
		"email":    "nobody@gmail.com",
		"password": "12345",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// The two failures must be indistinguishable.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestIssueTokenInactiveUser(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	user := createTestUser(t, db, "test@gmail.com", "12345")
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	w := doJSON(t, engine, "POST", "/api/v1/users/token", "", map[string]interface{}{
		"email":    "test@gmail.com",
		"password": "12345",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	_, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")

	w := doJSON(t, engine, "GET", "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "test@gmail.com", body["email"])
}

func TestGetMeRequiresAuth(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	w := doJSON(t, engine, "GET", "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, engine, "GET", "/api/v1/users/me", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateMe(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	user, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")

	w := doJSON(t, engine, "PATCH", "/api/v1/users/me", token, map[string]interface{}{
		"name":     "New Name",
		"password": "newpassword",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, "New Name", updated.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword")))

	// The new password authenticates; the old one no longer does.
	w = doJSON(t, engine, "POST", "/api/v1/users/token", "", map[string]interface{}{
		"email":    "test@gmail.com",
		"password": "newpassword",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, engine, "POST", "/api/v1/users/token", "", map[string]interface{}{
		"email":    "test@gmail.com",
		"password": "12345",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateMeIgnoresUnknownFields(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	user, token := createTestUserAndToken(t, db, "test@gmail.com", "12345")

	w := doJSON(t, engine, "PATCH", "/api/v1/users/me", token, map[string]interface{}{
		"name":         "Renamed",
		"email":        "hijack@gmail.com",
		"is_superuser": true,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "test@gmail.com", updated.Email)
	assert.False(t, updated.IsSuperuser)
}
