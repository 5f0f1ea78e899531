package model

import (
	"time"
)

// Photo references a stored image of a place. Only created as part of place
// creation; ordered by insertion.
type Photo struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PlaceID   uint      `gorm:"not null;index" json:"place_id"`
	URL       string    `gorm:"not null" json:"url"` // /uploads/places/<filename>
	CreatedAt time.Time `json:"created_at"`
}

func (Photo) TableName() string {
	return "photos"
}
