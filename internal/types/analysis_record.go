package types

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisRecord is the persisted unit of the feedback pipeline: the
// original journal text plus the structured analysis derived from it.
// Records are append-only; nothing updates or deletes them.
type AnalysisRecord struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Text    string  `gorm:"type:text;not null" json:"text"`
	Context *string `gorm:"type:text" json:"context,omitempty"`

	Emotions    datatypes.JSONSlice[string] `gorm:"not null" json:"emotions"`
	RulesBroken datatypes.JSONSlice[string] `gorm:"not null" json:"rules_broken"`
	Biases      datatypes.JSONSlice[string] `gorm:"not null" json:"biases"`
	Advice      string                      `gorm:"type:text;not null" json:"advice"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (AnalysisRecord) TableName() string { return "analysis_records" }
