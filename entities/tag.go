package entities

// Tag is a user-defined label attached to recipes.
type Tag struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"not null"`
	UserID uint   `json:"-" gorm:"not null;index"`
	User   *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
