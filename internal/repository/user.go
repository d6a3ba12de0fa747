package repository

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipe_api/internal/apperror"
	"recipe_api/internal/domain"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 5

// UserRepository manages user records and credentials
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates and returns a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// NormalizeEmail lowercases the domain part of an email address.
// The local part is case-sensitive and preserved verbatim.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// UserOptions enumerates the optional fields accepted when creating a user
type UserOptions struct {
	Name     string // Display name
	IsActive *bool  // Defaults to true when nil
}

// hashPassword produces a one-way bcrypt hash; the plaintext is never stored
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.New(apperror.UnknownError, "failed to hash password", err)
	}
	return string(hash), nil
}

// Create inserts a new user with a normalized email and a hashed password
func (r *UserRepository) Create(ctx context.Context, email, password string, opts UserOptions) (*domain.User, error) {
	if email == "" {
		return nil, apperror.Validation("email", "email is required")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.Validation("password", "password must be at least 5 characters")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Email:    NormalizeEmail(email),
		Password: hash,
		Name:     opts.Name,
		IsActive: true,
	}
	if opts.IsActive != nil {
		user.IsActive = *opts.IsActive
	}
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("email", "email already in use")
		}
		return nil, apperror.New(apperror.DatabaseError, "failed to create user", err)
	}
	return &user, nil
}

// CreateSuperuser creates a user and grants the staff and superuser flags
func (r *UserRepository) CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := r.Create(ctx, email, password, UserOptions{})
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"is_staff": true, "is_superuser": true}
	if err := r.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to promote superuser", err)
	}
	return user, nil
}

// Authenticate verifies a credential pair. It returns (nil, nil) on any
// mismatch so callers cannot tell a missing account from a wrong password.
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User
	err := r.DB.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.New(apperror.DatabaseError, "failed to look up user", err)
	}
	if !user.IsActive {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil
	}
	return &user, nil
}

// GetByID fetches a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.New(apperror.DatabaseError, "failed to fetch user", err)
	}
	return &user, nil
}

// UserPatch enumerates the fields a user may change on their own profile
type UserPatch struct {
	Email    *string
	Name     *string
	Password *string
}

// Update applies a profile patch. Password changes go through the hashing
// step separately from the generic field copy so the hash is never bypassed.
func (r *UserRepository) Update(ctx context.Context, user *domain.User, patch UserPatch) (*domain.User, error) {
	updates := map[string]any{}
	if patch.Email != nil {
		if *patch.Email == "" {
			return nil, apperror.Validation("email", "email is required")
		}
		updates["email"] = NormalizeEmail(*patch.Email)
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperror.Validation("email", "email already in use")
			}
			return nil, apperror.New(apperror.DatabaseError, "failed to update user", err)
		}
	}
	if patch.Password != nil {
		if len(*patch.Password) < MinPasswordLength {
			return nil, apperror.Validation("password", "password must be at least 5 characters")
		}
		hash, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		if err := r.DB.WithContext(ctx).Model(user).Update("password", hash).Error; err != nil {
			return nil, apperror.New(apperror.DatabaseError, "failed to update password", err)
		}
	}
	return r.GetByID(ctx, user.ID)
}

// Delete removes a user and every record they own in one transaction
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("user")
			}
			return apperror.New(apperror.DatabaseError, "failed to fetch user", err)
		}
		var recipeIDs []uint
		if err := tx.Model(&domain.Recipe{}).Where("user_id = ?", id).Pluck("id", &recipeIDs).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to list owned recipes", err)
		}
		if len(recipeIDs) > 0 {
			if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id IN ?", recipeIDs).Error; err != nil {
				return apperror.New(apperror.DatabaseError, "failed to clear tag associations", err)
			}
			if err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id IN ?", recipeIDs).Error; err != nil {
				return apperror.New(apperror.DatabaseError, "failed to clear ingredient associations", err)
			}
		}
		for _, model := range []any{&domain.Recipe{}, &domain.Tag{}, &domain.Ingredient{}} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return apperror.New(apperror.DatabaseError, "failed to delete owned records", err)
			}
		}
		if err := tx.Delete(&user).Error; err != nil {
			return apperror.New(apperror.DatabaseError, "failed to delete user", err)
		}
		return nil
	})
}
