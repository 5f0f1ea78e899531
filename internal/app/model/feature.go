package model

import (
	"time"
)

// Feature is a named accessibility attribute applicable to places.
// The registry is self-extending: unknown keys submitted during place
// creation are inserted with the key itself as label.
type Feature struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Key       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"` // lowercase slug
	Label     string    `gorm:"not null" json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

func (Feature) TableName() string {
	return "features"
}

// PlaceFeature links a place to a feature, unique per pair
type PlaceFeature struct {
	PlaceID   uint      `gorm:"primaryKey;index" json:"place_id"`
	FeatureID uint      `gorm:"primaryKey;index" json:"feature_id"`
	Place     Place     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Feature   Feature   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"feature,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (PlaceFeature) TableName() string {
	return "place_features"
}

// canonicalFeatureLabels maps the known domain keys to their display labels.
// Keys outside this table fall back to the key itself as label.
var canonicalFeatureLabels = map[string]string{
	"ramp_access":          "Rampa de acesso",
	"elevator":             "Elevador",
	"accessible_bathroom":  "Banheiro adaptado",
	"reserved_parking":     "Vagas especiais",
	"tactile_floor":        "Piso tátil",
	"braille_signage":      "Sinalização em braile",
	"audio_description":    "Audiodescrição",
	"libras_staff":         "Funcionários treinados em Libras",
	"subtitles":            "Legendas / Closed Caption",
	"visual_signage":       "Sinalização visual",
	"priority_service":     "Atendimento prioritário",
	"wheelchair_available": "Cadeira de rodas disponível",
	"accessible_parking":   "Estacionamento acessível",
}

// canonicalFeatureKeys preserves a stable presentation order
var canonicalFeatureKeys = []string{
	"ramp_access",
	"elevator",
	"accessible_bathroom",
	"reserved_parking",
	"tactile_floor",
	"braille_signage",
	"audio_description",
	"libras_staff",
	"subtitles",
	"visual_signage",
	"priority_service",
	"wheelchair_available",
	"accessible_parking",
}

// FeatureKeys returns the canonical keys in presentation order
func FeatureKeys() []string {
	keys := make([]string, len(canonicalFeatureKeys))
	copy(keys, canonicalFeatureKeys)
	return keys
}

// FeatureLabel returns the canonical label for key, or key itself when the
// key is not in the canonical table
func FeatureLabel(key string) string {
	if label, ok := canonicalFeatureLabels[key]; ok {
		return label
	}
	return key
}

// BuildAccessibilityFlags produces the denormalized flag map over every
// canonical key, true for the keys in selected
func BuildAccessibilityFlags(selected []string) BoolMap {
	selectedSet := make(map[string]bool, len(selected))
	for _, key := range selected {
		selectedSet[key] = true
	}

	flags := make(BoolMap, len(canonicalFeatureKeys))
	for _, key := range canonicalFeatureKeys {
		flags[key] = selectedSet[key]
	}
	return flags
}
