package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"recipe_api/internal/domain"     // Domain models
	"recipe_api/internal/repository" // Data access
	"recipe_api/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// RecipeListItem is the light list form: association sets render as id arrays
type RecipeListItem struct {
	ID          uint    `json:"id"`           // Recipe id
	Title       string  `json:"title"`        // Recipe title
	Ingredients []uint  `json:"ingredients"`  // Ingredient ids
	Tags        []uint  `json:"tags"`         // Tag ids
	TimeMinutes int     `json:"time_minutes"` // Cook time in minutes
	Price       float64 `json:"price"`        // Price
	Link        string  `json:"link"`         // Optional external link
}

// RecipeDetail is the detail form: association sets expand to {id, name}
type RecipeDetail struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Ingredients []domain.Ingredient `json:"ingredients"`
	Tags        []domain.Tag        `json:"tags"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       float64             `json:"price"`
	Link        string              `json:"link"`
}

func toRecipeListItem(r domain.Recipe) RecipeListItem {
	tagIDs := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	ingredientIDs := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ingredientIDs = append(ingredientIDs, i.ID)
	}
	return RecipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		Ingredients: ingredientIDs,
		Tags:        tagIDs,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
}

func toRecipeDetail(r *domain.Recipe) RecipeDetail {
	tags := r.Tags
	if tags == nil {
		tags = []domain.Tag{}
	}
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []domain.Ingredient{}
	}
	return RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		Ingredients: ingredients,
		Tags:        tags,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
}

func recipeCacheKey(userID uint) string {
	return "recipes:user:" + strconv.Itoa(int(userID))
}

// CreateRecipeRequest carries the create payload; tags and ingredients are
// referenced by id and the set becomes exactly the supplied list
type CreateRecipeRequest struct {
	Title       string  `json:"title" binding:"required"`             // Title must be provided
	TimeMinutes int     `json:"time_minutes" binding:"required,gt=0"` // Cook time must be positive
	Price       float64 `json:"price" binding:"required,gt=0"`        // Price must be positive
	Link        string  `json:"link"`                                 // Optional external link
	Tags        []uint  `json:"tags"`                                 // Referenced tag ids
	Ingredients []uint  `json:"ingredients"`                          // Referenced ingredient ids
}

// UpdateRecipeRequest carries an update payload; nil means absent.
// Under a full update an absent id list clears the association set.
type UpdateRecipeRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *float64 `json:"price"`
	Link        *string  `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

// ListRecipesHandler returns the caller's recipes, newest first, read-through cached
func ListRecipesHandler(recipes *repository.RecipeRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := recipeCacheKey(userID)
		var cached []RecipeListItem
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"recipes": cached, "cached": true})
			return
		}
		list, err := recipes.List(ctx, userID)
		if err != nil {
			renderError(c, err)
			return
		}
		items := make([]RecipeListItem, len(list))
		for i, r := range list {
			items[i] = toRecipeListItem(r)
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, items, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"recipes": items, "cached": false})
	}
}

// CreateRecipeHandler creates a recipe owned by the caller and wires its
// association sets; the owner is never taken from the payload
func CreateRecipeHandler(recipes *repository.RecipeRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateRecipeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		input := repository.RecipeInput{
			Title:         req.Title,
			TimeMinutes:   req.TimeMinutes,
			Price:         req.Price,
			Link:          req.Link,
			TagIDs:        req.Tags,
			IngredientIDs: req.Ingredients,
		}
		recipe, err := recipes.Create(c.Request.Context(), userID, input)
		if err != nil {
			renderError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,    // Owner
			"recipe_id": recipe.ID, // New recipe
		}).Info("Recipe created")
		_ = utils.DeleteCache(c.Request.Context(), rdb, recipeCacheKey(userID))
		c.JSON(http.StatusCreated, toRecipeDetail(recipe))
	}
}

// GetRecipeHandler returns the detail form of a single recipe
func GetRecipeHandler(recipes *repository.RecipeRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		recipe, err := recipes.Get(c.Request.Context(), uint(id))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRecipeDetail(recipe))
	}
}

// UpdateRecipeHandler applies an update in the given mode: PATCH routes here
// with PartialUpdate, PUT with FullUpdate
func UpdateRecipeHandler(recipes *repository.RecipeRepository, rdb *redis.Client, mode repository.UpdateMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		var req UpdateRecipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		patch := repository.RecipePatch{
			Title:         req.Title,
			TimeMinutes:   req.TimeMinutes,
			Price:         req.Price,
			Link:          req.Link,
			TagIDs:        req.Tags,
			IngredientIDs: req.Ingredients,
		}
		recipe, err := recipes.Update(c.Request.Context(), uint(id), patch, mode)
		if err != nil {
			renderError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"recipe_id": recipe.ID,
		}).Info("Recipe updated")
		_ = utils.DeleteCache(c.Request.Context(), rdb, recipeCacheKey(userID))
		c.JSON(http.StatusOK, toRecipeDetail(recipe))
	}
}

// DeleteRecipeHandler deletes a recipe and its association rows
func DeleteRecipeHandler(recipes *repository.RecipeRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		if err := recipes.Delete(c.Request.Context(), uint(id)); err != nil {
			renderError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"recipe_id": id,
		}).Info("Recipe deleted")
		_ = utils.DeleteCache(c.Request.Context(), rdb, recipeCacheKey(userID))
		c.Status(http.StatusNoContent)
	}
}
