package domain

// Recipe Model
type Recipe struct {
	ID          uint         `gorm:"primaryKey" json:"id"`                     // Primary key
	Title       string       `gorm:"size:255;not null" json:"title"`           // Recipe title
	TimeMinutes int          `gorm:"not null" json:"time_minutes"`             // Cook time in minutes
	Price       float64      `gorm:"type:decimal(5,2);not null" json:"price"`  // Price, 5 digits / 2 decimals
	Link        string       `gorm:"size:255" json:"link"`                     // Optional external link
	UserID      uint         `gorm:"not null;index" json:"-"`                  // Foreign key to the owning User
	Tags        []Tag        `gorm:"many2many:recipe_tags;" json:"-"`          // Association set with Tag
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;" json:"-"`   // Association set with Ingredient
}

// String returns the recipe's title
func (r Recipe) String() string {
	return r.Title
}
