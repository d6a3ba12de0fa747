package domain

// Tag Model
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Name   string `gorm:"size:255;not null" json:"name"` // Tag label
	UserID uint   `gorm:"not null;index" json:"-"`       // Foreign key to the owning User
}

// String returns the tag's name
func (t Tag) String() string {
	return t.Name
}
