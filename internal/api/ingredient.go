package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"recipe_api/internal/domain"     // Domain models
	"recipe_api/internal/repository" // Data access
	"recipe_api/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

func ingredientCacheKey(userID uint) string {
	return "ingredients:user:" + strconv.Itoa(int(userID))
}

// ListIngredientsHandler returns the caller's ingredients, newest name first
func ListIngredientsHandler(ingredients *repository.IngredientRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := ingredientCacheKey(userID)
		var cached []domain.Ingredient
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"ingredients": cached, "cached": true})
			return
		}
		list, err := ingredients.List(ctx, userID)
		if err != nil {
			renderError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, list, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"ingredients": list, "cached": false})
	}
}

// CreateIngredientHandler creates an ingredient owned by the caller
func CreateIngredientHandler(ingredients *repository.IngredientRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req NameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		ingredient, err := ingredients.Create(c.Request.Context(), userID, req.Name)
		if err != nil {
			renderError(c, err)
			return
		}
		_ = utils.DeleteCache(c.Request.Context(), rdb, ingredientCacheKey(userID))
		c.JSON(http.StatusCreated, ingredient)
	}
}

// GetIngredientHandler returns a single ingredient by id
func GetIngredientHandler(ingredients *repository.IngredientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		ingredient, err := ingredients.Get(c.Request.Context(), uint(id))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, ingredient)
	}
}

// UpdateIngredientHandler renames an ingredient
func UpdateIngredientHandler(ingredients *repository.IngredientRepository, rdb *redis.Client) gin.HandlerFunc {
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
		var req NameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		ingredient, err := ingredients.Update(c.Request.Context(), uint(id), req.Name)
		if err != nil {
			renderError(c, err)
			return
		}
		_ = utils.DeleteCache(c.Request.Context(), rdb, ingredientCacheKey(userID))
		c.JSON(http.StatusOK, ingredient)
	}
}

// DeleteIngredientHandler deletes an ingredient
func DeleteIngredientHandler(ingredients *repository.IngredientRepository, rdb *redis.Client) gin.HandlerFunc {
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
		if err := ingredients.Delete(c.Request.Context(), uint(id)); err != nil {
			renderError(c, err)
			return
		}
		_ = utils.DeleteCache(c.Request.Context(), rdb, ingredientCacheKey(userID))
		c.Status(http.StatusNoContent)
	}
}
