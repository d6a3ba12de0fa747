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
	"gorm.io/gorm"                 // GORM ORM library
)

// AdminUserResponse represents the user data returned to staff
type AdminUserResponse struct {
	ID          uint   `json:"id"`           // User ID
	Email       string `json:"email"`        // Email address
	Name        string `json:"name"`         // Display name
	IsActive    bool   `json:"is_active"`    // Account enabled flag
	IsStaff     bool   `json:"is_staff"`     // Staff flag
	IsSuperuser bool   `json:"is_superuser"` // Superuser flag
}

// ListUsersHandler returns all users, paginated, for the staff surface
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		// Create a cache key based on pagination parameters
		cacheKey := "admin:users:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		var cached struct {
			Users      []AdminUserResponse `json:"users"`       // List of users
			Page       int                 `json:"page"`        // Current page
			PageSize   int                 `json:"page_size"`   // Page size
			Total      int64               `json:"total"`       // Total number of users
			TotalPages int                 `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,
				"page":        cached.Page,
				"page_size":   cached.PageSize,
				"total":       cached.Total,
				"total_pages": cached.TotalPages,
				"cached":      true, // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total user count
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		var users []domain.User // Slice to hold users
		if err := db.Order("id").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		resp := make([]AdminUserResponse, len(users))
		for i, u := range users {
			resp[i] = AdminUserResponse{
				ID:          u.ID,
				Email:       u.Email,
				Name:        u.Name,
				IsActive:    u.IsActive,
				IsStaff:     u.IsStaff,
				IsSuperuser: u.IsSuperuser,
			}
		}
		respData := gin.H{
			"users":       resp,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
			"cached":      false,
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, utils.CacheTTL)
		c.JSON(http.StatusOK, respData)
	}
}

// DeleteUserHandler removes an account and everything it owns, transactionally
func DeleteUserHandler(users *repository.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		if err := users.Delete(c.Request.Context(), uint(id)); err != nil {
			renderError(c, err)
			return
		}
		logrus.WithField("user_id", id).Info("User deleted")
		ctx := c.Request.Context()
		// Drop the deleted owner's list caches
		_ = utils.DeleteCache(ctx, rdb, tagCacheKey(uint(id)))
		_ = utils.DeleteCache(ctx, rdb, ingredientCacheKey(uint(id)))
		_ = utils.DeleteCache(ctx, rdb, recipeCacheKey(uint(id)))
		c.Status(http.StatusNoContent)
	}
}
