package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipe_api/internal/apperror"
	"recipe_api/internal/domain"
)

// IngredientRepository manages ingredient records scoped to their owner
type IngredientRepository struct {
	DB *gorm.DB
}

// NewIngredientRepository creates and returns a new IngredientRepository
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{DB: db}
}

// List returns the caller's ingredients ordered by descending name
func (r *IngredientRepository) List(ctx context.Context, ownerID uint) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	err := scopeOwner(r.DB.WithContext(ctx), ownerID).Order("name desc").Find(&ingredients).Error
	if err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to list ingredients", err)
	}
	return ingredients, nil
}

// Create inserts an ingredient owned by the caller
func (r *IngredientRepository) Create(ctx context.Context, ownerID uint, name string) (*domain.Ingredient, error) {
	if name == "" {
		return nil, apperror.Validation("name", "name is required")
	}
	ingredient := domain.Ingredient{Name: name, UserID: ownerID}
	if err := r.DB.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to create ingredient", err)
	}
	return &ingredient, nil
}

// Get fetches an ingredient by id, without an ownership filter
func (r *IngredientRepository) Get(ctx context.Context, id uint) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	if err := r.DB.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("ingredient")
		}
		return nil, apperror.New(apperror.DatabaseError, "failed to fetch ingredient", err)
	}
	return &ingredient, nil
}

// Update renames an ingredient
func (r *IngredientRepository) Update(ctx context.Context, id uint, name string) (*domain.Ingredient, error) {
	if name == "" {
		return nil, apperror.Validation("name", "name is required")
	}
	ingredient, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(ingredient).Update("name", name).Error; err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to update ingredient", err)
	}
	return ingredient, nil
}

// Delete removes an ingredient and its recipe associations in one transaction
func (r *IngredientRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient domain.Ingredient
		if err := tx.First(&ingredient, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("ingredient")
			}
			return apperror.New(apperror.DatabaseError, "failed to fetch ingredient", err)
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", id).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to clear ingredient associations", err)
		}
		if err := tx.Delete(&ingredient).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to delete ingredient", err)
		}
		return nil
	})
}
