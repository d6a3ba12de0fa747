package domain

// Ingredient Model
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Name   string `gorm:"size:255;not null" json:"name"` // Ingredient label
	UserID uint   `gorm:"not null;index" json:"-"`       // Foreign key to the owning User
}

// String returns the ingredient's name
func (i Ingredient) String() string {
	return i.Name
}
