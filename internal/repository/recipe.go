package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipe_api/internal/apperror"
	"recipe_api/internal/domain"
)

// UpdateMode selects how an update treats fields missing from the payload
type UpdateMode int

const (
	// PartialUpdate keeps unspecified scalars and association sets unchanged
	PartialUpdate UpdateMode = iota
	// FullUpdate requires every scalar and clears unspecified association sets
	FullUpdate
)

// RecipeInput carries the fields accepted when creating a recipe
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipePatch carries the fields of an update; nil means absent from the payload
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// RecipeRepository manages recipe records and their association sets
type RecipeRepository struct {
	DB *gorm.DB
}

// NewRecipeRepository creates and returns a new RecipeRepository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{DB: db}
}

// List returns the caller's recipes ordered by descending id, with both
// association sets preloaded
func (r *RecipeRepository) List(ctx context.Context, ownerID uint) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	err := scopeOwner(r.DB.WithContext(ctx), ownerID).
		Preload("Tags").
		Preload("Ingredients").
		Order("id desc").
		Find(&recipes).Error
	if err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to list recipes", err)
	}
	return recipes, nil
}

// validateScalars checks the required recipe fields
func validateScalars(title string, timeMinutes int, price float64) error {
	if title == "" {
		return apperror.Validation("title", "title is required")
	}
	if timeMinutes < 0 {
		return apperror.Validation("time_minutes", "time_minutes must not be negative")
	}
	if price < 0 || price >= 1000 {
		return apperror.Validation("price", "price must fit 5 digits with 2 decimals")
	}
	return nil
}

// resolveTags loads the referenced tags, collapsing duplicate ids. Referenced
// ids are not checked against the caller's ownership; any existing tag id is
// accepted, matching the original behavior.
func resolveTags(tx *gorm.DB, ids []uint) ([]domain.Tag, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []domain.Tag
	if err := tx.Find(&tags, ids).Error; err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to resolve tags", err)
	}
	if len(tags) != len(ids) {
		return nil, apperror.Validation("tags", "unknown tag id")
	}
	return tags, nil
}

// resolveIngredients mirrors resolveTags for the ingredient association set
func resolveIngredients(tx *gorm.DB, ids []uint) ([]domain.Ingredient, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []domain.Ingredient
	if err := tx.Find(&ingredients, ids).Error; err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to resolve ingredients", err)
	}
	if len(ingredients) != len(ids) {
		return nil, apperror.Validation("ingredients", "unknown ingredient id")
	}
	return ingredients, nil
}

// Create inserts a recipe owned by the caller and wires both association
// sets in the same transaction, so a concurrent reader never observes a
// partially-written recipe.
func (r *RecipeRepository) Create(ctx context.Context, ownerID uint, input RecipeInput) (*domain.Recipe, error) {
	if err := validateScalars(input.Title, input.TimeMinutes, input.Price); err != nil {
		return nil, err
	}
	var recipe domain.Recipe
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe = domain.Recipe{
			Title:       input.Title,
			TimeMinutes: input.TimeMinutes,
			Price:       input.Price,
			Link:        input.Link,
			UserID:      ownerID, // Owner is stamped server-side, never taken from the payload
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to create recipe", err)
		}
		tags, err := resolveTags(tx, input.TagIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
			return apperror.New(apperror.DatabaseError, "failed to set tag associations", err)
		}
		ingredients, err := resolveIngredients(tx, input.IngredientIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Ingredients").Replace(&ingredients); err != nil {
			return apperror.New(apperror.DatabaseError, "failed to set ingredient associations", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, recipe.ID)
}

// Get fetches a recipe by id with both association sets preloaded. Detail
// reads are not scoped to the owner; see the package note on scopeOwner.
func (r *RecipeRepository) Get(ctx context.Context, id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.DB.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("recipe")
		}
		return nil, apperror.New(apperror.DatabaseError, "failed to fetch recipe", err)
	}
	return &recipe, nil
}

// Update applies a patch in the selected mode. Scalar writes and association
// replacement share one transaction: the old association set is never
// observably half-replaced. In FullUpdate, an absent id list clears the set;
// in PartialUpdate it leaves the set untouched.
func (r *RecipeRepository) Update(ctx context.Context, id uint, patch RecipePatch, mode UpdateMode) (*domain.Recipe, error) {
	if mode == FullUpdate {
		if patch.Title == nil {
			return nil, apperror.Validation("title", "title is required")
		}
		if patch.TimeMinutes == nil {
			return nil, apperror.Validation("time_minutes", "time_minutes is required")
		}
		if patch.Price == nil {
			return nil, apperror.Validation("price", "price is required")
		}
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe domain.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("recipe")
			}
			return apperror.New(apperror.DatabaseError, "failed to fetch recipe", err)
		}

		title := recipe.Title
		timeMinutes := recipe.TimeMinutes
		price := recipe.Price
		updates := map[string]any{}
		if patch.Title != nil {
			title = *patch.Title
			updates["title"] = title
		}
		if patch.TimeMinutes != nil {
			timeMinutes = *patch.TimeMinutes
			updates["time_minutes"] = timeMinutes
		}
		if patch.Price != nil {
			price = *patch.Price
			updates["price"] = price
		}
		if patch.Link != nil {
			updates["link"] = *patch.Link
		}
		if err := validateScalars(title, timeMinutes, price); err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return apperror.New(apperror.DatabaseError, "failed to update recipe", err)
			}
		}

		if patch.TagIDs != nil {
			tags, err := resolveTags(tx, *patch.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
				return apperror.New(apperror.DatabaseError, "failed to replace tag associations", err)
			}
		} else if mode == FullUpdate {
			if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
				return apperror.New(apperror.DatabaseError, "failed to clear tag associations", err)
			}
		}

		if patch.IngredientIDs != nil {
			ingredients, err := resolveIngredients(tx, *patch.IngredientIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Ingredients").Replace(&ingredients); err != nil {
				return apperror.New(apperror.DatabaseError, "failed to replace ingredient associations", err)
			}
		} else if mode == FullUpdate {
			if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
				return apperror.New(apperror.DatabaseError, "failed to clear ingredient associations", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete removes a recipe and its association rows in one transaction
func (r *RecipeRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe domain.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("recipe")
			}
			return apperror.New(apperror.DatabaseError, "failed to fetch recipe", err)
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to clear tag associations", err)
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", id).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to clear ingredient associations", err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to delete recipe", err)
		}
		return nil
	})
}
