package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plateful/recipe-api/internal/database"
	"github.com/plateful/recipe-api/internal/models"
	"github.com/plateful/recipe-api/internal/service"
	"github.com/plateful/recipe-api/internal/types"
)

// fakeImageStore records uploads instead of talking to S3.
type fakeImageStore struct {
	keys []string
}

func (f *fakeImageStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	f.keys = append(f.keys, key)
	return "https://test-bucket.local/" + key, nil
}

// setupTestRouter builds the full router against an in-memory sqlite
// database. Each test gets its own database, keyed by the test name.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeImageStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A shared in-memory sqlite db disappears when its last connection
	// closes; pinning the pool to one keeps it alive for the test.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	images := &fakeImageStore{}
	authService := service.NewAuthServiceWithCost(db, bcrypt.MinCost)
	recipeService := service.NewRecipeService(db, images)

	engine := gin.New()
	SetupAPI(engine, authService, recipeService, nil)
	return engine, db, images
}

// createTestUser registers an account directly through the service.
func createTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()
	authService := service.NewAuthServiceWithCost(db, bcrypt.MinCost)
	user, err := authService.Register(context.Background(), &types.CreateUserRequest{
		Email:    email,
		Password: password,
		Name:     "Test User",
	})
	require.NoError(t, err)
	return user
}

// createTestUserAndToken registers an account and issues its bearer token.
func createTestUserAndToken(t *testing.T, db *gorm.DB, email, password string) (*models.User, string) {
	t.Helper()
	user := createTestUser(t, db, email, password)
	authService := service.NewAuthServiceWithCost(db, bcrypt.MinCost)
	token, err := authService.IssueToken(context.Background(), email, password)
	require.NoError(t, err)
	return user, token
}

// doJSON performs a JSON request against the router, attaching the bearer
// token when one is given.
func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target),
		"response body: %s", w.Body.String())
}
