package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipe_api/internal/api"
	"recipe_api/internal/domain"
	"recipe_api/internal/repository"
	"recipe_api/internal/utils"
)

const testSecret = "test-secret"

// newTestServer wires the full router against an in-memory database.
// The nil redis client disables list caching.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&domain.User{}, &domain.Tag{}, &domain.Ingredient{}, &domain.Recipe{}))
	return api.NewRouter(conn, nil, testSecret, time.Hour), conn
}

// doJSON performs a request against the router and returns the recorder
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body into dest
func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

// authedUser creates an account directly in the store and returns it with a valid token
func authedUser(t *testing.T, db *gorm.DB, email string) (*domain.User, string) {
	t.Helper()
	user, err := repository.NewUserRepository(db).Create(
		context.Background(), email, "testpass", repository.UserOptions{Name: "Test name"},
	)
	require.NoError(t, err)
	token, err := utils.GenerateJWT(user.ID, testSecret, time.Hour)
	require.NoError(t, err)
	return user, token
}
