package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe_api/internal/apperror"
	"recipe_api/internal/repository"
)

func TestIngredient_String(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "test@londonappdev.com")

	ingredient, err := repository.NewIngredientRepository(db).Create(context.Background(), user.ID, "Cucumber")
	require.NoError(t, err)

	assert.Equal(t, "Cucumber", fmt.Sprint(*ingredient))
}

func TestListIngredients_OwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	ingredients := repository.NewIngredientRepository(db)
	ctx := context.Background()

	u1 := createUser(t, db, "one@londonappdev.com")
	u2 := createUser(t, db, "two@londonappdev.com")

	_, err := ingredients.Create(ctx, u2.ID, "Vinegar")
	require.NoError(t, err)
	mine, err := ingredients.Create(ctx, u1.ID, "Tumeric")
	require.NoError(t, err)

	list, err := ingredients.List(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
}

func TestListIngredients_OrderedByNameDesc(t *testing.T) {
	db := newTestDB(t)
	ingredients := repository.NewIngredientRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "test@londonappdev.com")
	for _, name := range []string{"Apple", "Salt", "Kale"} {
		_, err := ingredients.Create(ctx, user.ID, name)
		require.NoError(t, err)
	}

	list, err := ingredients.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Salt", list[0].Name)
	assert.Equal(t, "Kale", list[1].Name)
	assert.Equal(t, "Apple", list[2].Name)
}

func TestCreateIngredient_EmptyName(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "test@londonappdev.com")

	_, err := repository.NewIngredientRepository(db).Create(context.Background(), user.ID, "")
	requireErrType(t, err, apperror.ValidationError)
}

func TestGetIngredient_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := repository.NewIngredientRepository(db).Get(context.Background(), 9999)
	requireErrType(t, err, apperror.NotFoundError)
}
