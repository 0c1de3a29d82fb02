package entities

import "time"

// Recipe is the central record. Tags and ingredients are shared
// catalog entries of the same owner, linked through join tables.
type Recipe struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null"`
	TimeMinutes int          `json:"time_minutes"`
	Price       float64      `json:"price" gorm:"type:decimal(10,2)"`
	Link        string       `json:"link"`
	Image       string       `json:"image"` // relative path under the media dir
	UserID      uint         `json:"-" gorm:"not null;index"`
	User        *User        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
