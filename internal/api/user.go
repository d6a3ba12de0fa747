package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"recipe_api/internal/domain"     // Domain models
	"recipe_api/internal/repository" // Data access
	"recipe_api/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest carries the signup payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`    // Email must be provided and well-formed
	Password string `json:"password" binding:"required,min=5"` // Password must be at least 5 characters
	Name     string `json:"name"`                              // Optional display name
}

// TokenRequest carries the credential pair for token issuance
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the issued JWT
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// UserResponse is the profile shape; the password hash is never emitted
type UserResponse struct {
	Email string `json:"email"` // Email address
	Name  string `json:"name"`  // Display name
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// RegisterHandler creates a new user account
func RegisterHandler(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err) // Field-keyed validation response
			return
		}
		user, err := users.Create(c.Request.Context(), req.Email, req.Password, repository.UserOptions{Name: req.Name})
		if err != nil {
			renderError(c, err)
			return
		}
		logrus.WithField("user_id", user.ID).Info("User registered")
		c.JSON(http.StatusCreated, toUserResponse(user))
	}
}

// TokenHandler authenticates a credential pair and returns a JWT.
// The response never reveals whether the email or the password was wrong.
func TokenHandler(users *repository.UserRepository, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		user, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			renderError(c, err)
			return
		}
		// A nil user is the no-match sentinel
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// MeHandler returns the authenticated user's profile
func MeHandler(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// UpdateMeRequest carries a profile patch; nil fields are left unchanged
type UpdateMeRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`    // Optional new email
	Name     *string `json:"name"`                               // Optional new display name
	Password *string `json:"password" binding:"omitempty,min=5"` // Optional new password
}

// UpdateMeHandler applies a partial update to the authenticated user's profile
func UpdateMeHandler(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateMeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			renderBindError(c, err)
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			renderError(c, err)
			return
		}
		patch := repository.UserPatch{Email: req.Email, Name: req.Name, Password: req.Password}
		user, err = users.Update(c.Request.Context(), user, patch)
		if err != nil {
			renderError(c, err)
			return
		}
		logrus.WithField("user_id", user.ID).Info("Profile updated")
		c.JSON(http.StatusOK, toUserResponse(user))
	}
}
