package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipe_api/internal/apperror"
	"recipe_api/internal/domain"
)

// TagRepository manages tag records scoped to their owner
type TagRepository struct {
	DB *gorm.DB
}

// NewTagRepository creates and returns a new TagRepository
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

// List returns the caller's tags ordered by descending name
func (r *TagRepository) List(ctx context.Context, ownerID uint) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := scopeOwner(r.DB.WithContext(ctx), ownerID).Order("name desc").Find(&tags).Error
	if err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to list tags", err)
	}
	return tags, nil
}

// Create inserts a tag owned by the caller. The owner is stamped
// server-side; any owner supplied in the payload is ignored upstream.
func (r *TagRepository) Create(ctx context.Context, ownerID uint, name string) (*domain.Tag, error) {
	if name == "" {
		return nil, apperror.Validation("name", "name is required")
	}
	tag := domain.Tag{Name: name, UserID: ownerID}
	if err := r.DB.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to create tag", err)
	}
	return &tag, nil
}

// Get fetches a tag by id. Detail reads are not scoped to the owner; see
// the package note on scopeOwner.
func (r *TagRepository) Get(ctx context.Context, id uint) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.DB.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("tag")
		}
		return nil, apperror.New(apperror.DatabaseError, "failed to fetch tag", err)
	}
	return &tag, nil
}

// Update renames a tag
func (r *TagRepository) Update(ctx context.Context, id uint, name string) (*domain.Tag, error) {
	if name == "" {
		return nil, apperror.Validation("name", "name is required")
	}
	tag, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(tag).Update("name", name).Error; err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to update tag", err)
	}
	return tag, nil
}

// Delete removes a tag and its recipe associations in one transaction
func (r *TagRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag domain.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("tag")
			}
			return apperror.New(apperror.DatabaseError, "failed to fetch tag", err)
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to clear tag associations", err)
		}
		if err := tx.Delete(&tag).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to delete tag", err)
		}
		return nil
	})
}
