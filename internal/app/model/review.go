package model

import (
	"time"
)

// Review is a user's rating of a place. No uniqueness per user and place:
// the same user may review a place more than once.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PlaceID   uint      `gorm:"not null;index" json:"place_id"`
	Place     Place     `gorm:"foreignKey:PlaceID" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   *string   `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
