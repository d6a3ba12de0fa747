package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe_api/internal/api"
	"recipe_api/internal/repository"
)

func TestCreateRecipe_WithTags(t *testing.T) {
	r, db := newTestServer(t)
	tags := repository.NewTagRepository(db)
	ctx := context.Background()

	user, token := authedUser(t, db, "test@londonappdev.com")
	tag1, err := tags.Create(ctx, user.ID, "Vegan")
	require.NoError(t, err)
	tag2, err := tags.Create(ctx, user.ID, "Dessert")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/recipes", token, map[string]any{
		"title":        "Avocado lime cheesecake",
		"time_minutes": 60,
		"price":        20.00,
		"tags":         []uint{tag1.ID, tag2.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var detail api.RecipeDetail
	decode(t, w, &detail)
	assert.Equal(t, "Avocado lime cheesecake", detail.Title)
	require.Len(t, detail.Tags, 2)
	names := []string{detail.Tags[0].Name, detail.Tags[1].Name}
	assert.ElementsMatch(t, []string{"Vegan", "Dessert"}, names)
}

func TestCreateRecipe_MissingTitle(t *testing.T) {
	r, db := newTestServer(t)
	_, token := authedUser(t, db, "test@londonappdev.com")

	w := doJSON(t, r, http.MethodPost, "/recipes", token, map[string]any{
		"time_minutes": 30,
		"price":        5.00,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, w, &body)
	assert.Contains(t, body.Errors, "title")
}

func TestListRecipes_LightForm(t *testing.T) {
	r, db := newTestServer(t)
	tags := repository.NewTagRepository(db)
	recipes := repository.NewRecipeRepository(db)
	ctx := context.Background()

	user, token := authedUser(t, db, "test@londonappdev.com")
	tag, err := tags.Create(ctx, user.ID, "Vegan")
	require.NoError(t, err)
	created, err := recipes.Create(ctx, user.ID, repository.RecipeInput{
		Title:       "Guacamole",
		TimeMinutes: 15,
		Price:       4.00,
		TagIDs:      []uint{tag.ID},
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Recipes []api.RecipeListItem `json:"recipes"`
	}
	decode(t, w, &body)
	require.Len(t, body.Recipes, 1)
	// The list form carries association ids only
	assert.Equal(t, created.ID, body.Recipes[0].ID)
	assert.Equal(t, []uint{tag.ID}, body.Recipes[0].Tags)
	assert.Empty(t, body.Recipes[0].Ingredients)
}

func TestListRecipes_LimitedToCaller(t *testing.T) {
	r, db := newTestServer(t)
	recipes := repository.NewRecipeRepository(db)
	ctx := context.Background()

	u1, token := authedUser(t, db, "one@londonappdev.com")
	u2, _ := authedUser(t, db, "two@londonappdev.com")
	mine, err := recipes.Create(ctx, u1.ID, repository.RecipeInput{Title: "Mine", TimeMinutes: 10, Price: 5.00})
	require.NoError(t, err)
	_, err = recipes.Create(ctx, u2.ID, repository.RecipeInput{Title: "Theirs", TimeMinutes: 10, Price: 5.00})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Recipes []api.RecipeListItem `json:"recipes"`
	}
	decode(t, w, &body)
	require.Len(t, body.Recipes, 1)
	assert.Equal(t, mine.ID, body.Recipes[0].ID)
}

func TestFullUpdate_ClearsTags(t *testing.T) {
	r, db := newTestServer(t)
	tags := repository.NewTagRepository(db)
	recipes := repository.NewRecipeRepository(db)
	ctx := context.Background()

	user, token := authedUser(t, db, "test@londonappdev.com")
	tag, err := tags.Create(ctx, user.ID, "Italian")
	require.NoError(t, err)
	recipe, err := recipes.Create(ctx, user.ID, repository.RecipeInput{
		Title:       "Pasta",
		TimeMinutes: 20,
		Price:       6.00,
		TagIDs:      []uint{tag.ID},
	})
	require.NoError(t, err)

	// PUT without a tags key clears the association set
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/recipes/%d", recipe.ID), token, map[string]any{
		"title":        "Spaghetti carbonara",
		"time_minutes": 25,
		"price":        5.00,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var detail api.RecipeDetail
	decode(t, w, &detail)
	assert.Equal(t, "Spaghetti carbonara", detail.Title)
	assert.Empty(t, detail.Tags)
}

func TestPartialUpdate_PreservesScalars(t *testing.T) {
	r, db := newTestServer(t)
	tags := repository.NewTagRepository(db)
	recipes := repository.NewRecipeRepository(db)
	ctx := context.Background()

	user, token := authedUser(t, db, "test@londonappdev.com")
	newTag, err := tags.Create(ctx, user.ID, "Indian")
	require.NoError(t, err)
	recipe, err := recipes.Create(ctx, user.ID, repository.RecipeInput{
		Title:       "Chicken curry",
		TimeMinutes: 45,
		Price:       12.50,
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/recipes/%d", recipe.ID), token, map[string]any{
		"title": "Chicken tikka",
		"tags":  []uint{newTag.ID},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var detail api.RecipeDetail
	decode(t, w, &detail)
	assert.Equal(t, "Chicken tikka", detail.Title)
	assert.Equal(t, 45, detail.TimeMinutes)
	assert.Equal(t, 12.50, detail.Price)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, newTag.ID, detail.Tags[0].ID)
}

func TestDeleteRecipe(t *testing.T) {
	r, db := newTestServer(t)
	recipes := repository.NewRecipeRepository(db)
	ctx := context.Background()

	user, token := authedUser(t, db, "test@londonappdev.com")
	recipe, err := recipes.Create(ctx, user.ID, repository.RecipeInput{Title: "Salad", TimeMinutes: 5, Price: 3.00})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/recipes/%d", recipe.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/recipes/%d", recipe.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
