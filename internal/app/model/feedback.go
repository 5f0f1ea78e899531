package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONBlob stores an opaque JSON document in a single column
type JSONBlob json.RawMessage

// Value implements database/sql/driver.Valuer
func (b JSONBlob) Value() (driver.Value, error) {
	if len(b) == 0 {
		return nil, nil
	}
	return []byte(b), nil
}

// Scan implements database/sql.Scanner
func (b *JSONBlob) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*b = append((*b)[:0], v...)
	case string:
		*b = JSONBlob(v)
	default:
		return errors.New("failed to scan JSONBlob")
	}
	return nil
}

// MarshalJSON renders the raw document as-is
func (b JSONBlob) MarshalJSON() ([]byte, error) {
	if len(b) == 0 {
		return []byte("null"), nil
	}
	return []byte(b), nil
}

// UnmarshalJSON stores the raw document as-is
func (b *JSONBlob) UnmarshalJSON(data []byte) error {
	*b = append((*b)[:0], data...)
	return nil
}

// QuestionnaireResponse stores an accessibility questionnaire submission
// as an opaque payload
type QuestionnaireResponse struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Data      JSONBlob  `gorm:"type:text" json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

func (QuestionnaireResponse) TableName() string {
	return "questionnaire_responses"
}
