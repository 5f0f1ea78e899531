package model

import (
	"time"
)

// Favorite marks a place as favorited by a user. Composite key makes the
// add operation idempotent.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	PlaceID   uint      `gorm:"primaryKey" json:"place_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Place Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
