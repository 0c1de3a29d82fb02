package entities

// Ingredient belongs to the user who created it, not to a recipe.
type Ingredient struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"not null"`
	UserID uint   `json:"-" gorm:"not null;index"`
	User   *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
