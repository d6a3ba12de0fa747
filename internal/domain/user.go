package domain

// User Model, keyed by email instead of a username
type User struct {
	ID          uint         `gorm:"primaryKey" json:"id"`                                   // Primary key
	Email       string       `gorm:"size:255;unique;not null" json:"email"`                  // Unique email, domain part stored lowercase
	Password    string       `gorm:"not null" json:"-"`                                      // Bcrypt hash, never serialized
	Name        string       `gorm:"size:255" json:"name"`                                   // Display name
	IsActive    bool         `gorm:"default:true" json:"is_active"`                          // Account enabled flag
	IsStaff     bool         `gorm:"default:false" json:"is_staff"`                          // Grants access to the admin surface
	IsSuperuser bool         `gorm:"default:false" json:"is_superuser"`                      // Full privileges
	Tags        []Tag        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Owned tags
	Ingredients []Ingredient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Owned ingredients
	Recipes     []Recipe     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Owned recipes
}
