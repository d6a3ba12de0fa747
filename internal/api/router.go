package api

import (
	"time" // Token lifetime

	"recipe_api/internal/middleware" // Auth middleware
	"recipe_api/internal/repository" // Data access

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires every route onto a gin engine. A nil redis client
// disables list caching, which the handler tests rely on.
func NewRouter(db *gorm.DB, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	users := repository.NewUserRepository(db)
	tags := repository.NewTagRepository(db)
	ingredients := repository.NewIngredientRepository(db)
	recipes := repository.NewRecipeRepository(db)

	// Public user routes
	r.POST("/user", RegisterHandler(users))                      // Registration endpoint
	r.POST("/user/token", TokenHandler(users, jwtSecret, tokenTTL)) // Token endpoint

	// Profile routes (protected by JWT)
	meGroup := r.Group("/user/me")
	meGroup.Use(middleware.JWTAuthMiddleware(jwtSecret))
	meGroup.GET("", MeHandler(users))
	meGroup.PATCH("", UpdateMeHandler(users))

	// Tag routes (protected by JWT)
	tagGroup := r.Group("/tags")
	tagGroup.Use(middleware.JWTAuthMiddleware(jwtSecret))
	tagGroup.GET("", ListTagsHandler(tags, rdb))
	tagGroup.POST("", CreateTagHandler(tags, rdb))
	tagGroup.GET("/:id", GetTagHandler(tags))
	tagGroup.PATCH("/:id", UpdateTagHandler(tags, rdb))
	tagGroup.DELETE("/:id", DeleteTagHandler(tags, rdb))

	// Ingredient routes (protected by JWT)
	ingredientGroup := r.Group("/ingredients")
	ingredientGroup.Use(middleware.JWTAuthMiddleware(jwtSecret))
	ingredientGroup.GET("", ListIngredientsHandler(ingredients, rdb))
	ingredientGroup.POST("", CreateIngredientHandler(ingredients, rdb))
	ingredientGroup.GET("/:id", GetIngredientHandler(ingredients))
	ingredientGroup.PATCH("/:id", UpdateIngredientHandler(ingredients, rdb))
	ingredientGroup.DELETE("/:id", DeleteIngredientHandler(ingredients, rdb))

	// Recipe routes (protected by JWT)
	recipeGroup := r.Group("/recipes")
	recipeGroup.Use(middleware.JWTAuthMiddleware(jwtSecret))
	recipeGroup.GET("", ListRecipesHandler(recipes, rdb))
	recipeGroup.POST("", CreateRecipeHandler(recipes, rdb))
	recipeGroup.GET("/:id", GetRecipeHandler(recipes))
	recipeGroup.PATCH("/:id", UpdateRecipeHandler(recipes, rdb, repository.PartialUpdate)) // Partial update
	recipeGroup.PUT("/:id", UpdateRecipeHandler(recipes, rdb, repository.FullUpdate))      // Full update
	recipeGroup.DELETE("/:id", DeleteRecipeHandler(recipes, rdb))

	// Admin routes (protected, staff only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(jwtSecret), middleware.StaffOnlyMiddleware(users))
	adminGroup.GET("/users", ListUsersHandler(db, rdb))
	adminGroup.DELETE("/users/:id", DeleteUserHandler(users, rdb))

	return r
}
