package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApiToken maps an opaque bearer credential to exactly one user.
type ApiToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"unique;not null;type:varchar(36)"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *ApiToken) BeforeCreate(tx *gorm.DB) (err error) {
	if t.Key == "" {
		t.Key = uuid.New().String()
	}
	return nil
}
