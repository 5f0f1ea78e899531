package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// BoolMap stores a JSON object of booleans in a single column. Used for the
// denormalized accessibility flag map kept alongside the relational feature
// links as a read-path optimization.
type BoolMap map[string]bool

// Value implements database/sql/driver.Valuer
func (m BoolMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements database/sql.Scanner
func (m *BoolMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan BoolMap")
	}

	return json.Unmarshal(bytes, m)
}

type Place struct {
	ID      uint  `gorm:"primarykey" json:"id"`
	OwnerID *uint `gorm:"index" json:"owner_id"` // nullable: anonymous submissions in some deployments
	Owner   *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"owner,omitempty"`

	Name        string `gorm:"not null" json:"name"`
	Category    string `gorm:"index;not null" json:"category"`
	Description string `gorm:"type:text;not null" json:"description"`

	// Structured address is canonical; Address is the composed single-line
	// form derived at creation time and kept for display and search.
	Address      string `gorm:"type:text" json:"address"`
	CEP          string `gorm:"column:cep;type:varchar(8);index" json:"cep"`
	Street       string `json:"street"`
	Number       string `gorm:"type:varchar(20)" json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `gorm:"index" json:"city"`
	State        string `gorm:"type:varchar(2);index" json:"state"` // uppercase two-letter code

	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Website string `json:"website"`

	Latitude  *float64 `gorm:"type:decimal(10,8)" json:"lat"`
	Longitude *float64 `gorm:"type:decimal(11,8)" json:"lng"`

	AccessibilityFlags BoolMap `gorm:"type:text" json:"accessibility_flags"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owned relations: removed together with the place
	Features []PlaceFeature `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"features,omitempty"`
	Photos   []Photo        `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`

	// Aggregated relations: owned by their authors, read here only
	Reviews   []Review   `gorm:"foreignKey:PlaceID" json:"reviews,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:PlaceID" json:"favorites,omitempty"`

	// Populated by aggregate queries, not a column
	ReviewCount   int64 `gorm:"-" json:"-"`
	FavoriteCount int64 `gorm:"-" json:"-"`
}

func (Place) TableName() string {
	return "places"
}
