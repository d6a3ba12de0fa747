package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipe_api/internal/apperror"
	"recipe_api/internal/domain"
	"recipe_api/internal/repository"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory schema visible to every query
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&domain.User{}, &domain.Tag{}, &domain.Ingredient{}, &domain.Recipe{}))
	return conn
}

// createUser persists a sample account for ownership fixtures
func createUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	user, err := repository.NewUserRepository(db).Create(
		context.Background(), email, "testpass", repository.UserOptions{Name: "Test name"},
	)
	require.NoError(t, err)
	return user
}

// requireErrType asserts that err is an AppError of the given type
func requireErrType(t *testing.T, err error, want apperror.ErrorType) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, want, appErr.Type)
	return appErr
}
