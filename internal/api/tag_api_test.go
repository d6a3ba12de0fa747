package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe_api/internal/domain"
	"recipe_api/internal/repository"
)

func TestListTags_RequiresAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/tags", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListTags_LimitedToCaller(t *testing.T) {
	r, db := newTestServer(t)
	tags := repository.NewTagRepository(db)
	ctx := context.Background()

	u1, token := authedUser(t, db, "one@londonappdev.com")
	u2, _ := authedUser(t, db, "two@londonappdev.com")
	_, err := tags.Create(ctx, u2.ID, "Fruity")
	require.NoError(t, err)
	mine, err := tags.Create(ctx, u1.ID, "Comfort Food")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/tags", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tags []domain.Tag `json:"tags"`
	}
	decode(t, w, &body)
	require.Len(t, body.Tags, 1)
	assert.Equal(t, mine.ID, body.Tags[0].ID)
}

func TestCreateTag_Success(t *testing.T) {
	r, db := newTestServer(t)
	user, token := authedUser(t, db, "test@londonappdev.com")

	w := doJSON(t, r, http.MethodPost, "/tags", token, map[string]any{"name": "Vegan"})
	require.Equal(t, http.StatusCreated, w.Code)

	var tag domain.Tag
	decode(t, w, &tag)
	assert.Equal(t, "Vegan", tag.Name)

	// The owner is stamped server-side
	var stored domain.Tag
	require.NoError(t, db.First(&stored, tag.ID).Error)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestCreateTag_EmptyName(t *testing.T) {
	r, db := newTestServer(t)
	_, token := authedUser(t, db, "test@londonappdev.com")

	w := doJSON(t, r, http.MethodPost, "/tags", token, map[string]any{"name": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, w, &body)
	assert.Contains(t, body.Errors, "name")
}

func TestUpdateTag_Rename(t *testing.T) {
	r, db := newTestServer(t)
	user, token := authedUser(t, db, "test@londonappdev.com")
	tag, err := repository.NewTagRepository(db).Create(context.Background(), user.ID, "Vegan")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/tags/%d", tag.ID), token, map[string]any{"name": "Vegetarian"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Tag
	decode(t, w, &updated)
	assert.Equal(t, "Vegetarian", updated.Name)
}

func TestDeleteTag(t *testing.T) {
	r, db := newTestServer(t)
	user, token := authedUser(t, db, "test@londonappdev.com")
	tag, err := repository.NewTagRepository(db).Create(context.Background(), user.ID, "Vegan")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/tags/%d", tag.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, db.Model(&domain.Tag{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetTag_NotFound(t *testing.T) {
	r, db := newTestServer(t)
	_, token := authedUser(t, db, "test@londonappdev.com")

	w := doJSON(t, r, http.MethodGet, "/tags/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListIngredients_LimitedToCaller(t *testing.T) {
	r, db := newTestServer(t)
	ingredients := repository.NewIngredientRepository(db)
	ctx := context.Background()

	u1, token := authedUser(t, db, "one@londonappdev.com")
	u2, _ := authedUser(t, db, "two@londonappdev.com")
	_, err := ingredients.Create(ctx, u2.ID, "Vinegar")
	require.NoError(t, err)
	mine, err := ingredients.Create(ctx, u1.ID, "Tumeric")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/ingredients", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Ingredients []domain.Ingredient `json:"ingredients"`
	}
	decode(t, w, &body)
	require.Len(t, body.Ingredients, 1)
	assert.Equal(t, mine.ID, body.Ingredients[0].ID)
}
