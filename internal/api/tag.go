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

// NameRequest is the create/update payload shared by tags and ingredients
type NameRequest struct {
	Name string `json:"name" binding:"required"` // Label must be non-empty
}

func tagCacheKey(userID uint) string {
	return "tags:user:" + strconv.Itoa(int(userID))
}

// ListTagsHandler returns the caller's tags, newest name first, read-through cached
func ListTagsHandler(tags *repository.TagRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := tagCacheKey(userID)
		var cached []domain.Tag
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"tags": cached, "cached": true})
			return
		}
		list, err := tags.List(ctx, userID)
		if err != nil {
			renderError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, list, utils.CacheTTL) // Cache the list
		c.JSON(http.StatusOK, gin.H{"tags": list, "cached": false})
	}
}

// CreateTagHandler creates a tag owned by the caller
func CreateTagHandler(tags *repository.TagRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req NameRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		tag, err := tags.Create(c.Request.Context(), userID, req.Name)
		if err != nil {
			renderError(c, err)
			return
		}
		// Invalidate the caller's tag list cache
		_ = utils.DeleteCache(c.Request.Context(), rdb, tagCacheKey(userID))
		c.JSON(http.StatusCreated, tag)
	}
}

// GetTagHandler returns a single tag by id
func GetTagHandler(tags *repository.TagRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		tag, err := tags.Get(c.Request.Context(), uint(id))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, tag)
	}
}

// UpdateTagHandler renames a tag
func UpdateTagHandler(tags *repository.TagRepository, rdb *redis.Client) gin.HandlerFunc {
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
		tag, err := tags.Update(c.Request.Context(), uint(id), req.Name)
		if err != nil {
			renderError(c, err)
			return
		}
		_ = utils.DeleteCache(c.Request.Context(), rdb, tagCacheKey(userID))
		c.JSON(http.StatusOK, tag)
	}
}

// DeleteTagHandler deletes a tag
func DeleteTagHandler(tags *repository.TagRepository, rdb *redis.Client) gin.HandlerFunc {
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
		if err := tags.Delete(c.Request.Context(), uint(id)); err != nil {
			renderError(c, err)
			return
		}
		_ = utils.DeleteCache(c.Request.Context(), rdb, tagCacheKey(userID))
		c.Status(http.StatusNoContent)
	}
}
