package types

import "time"

// TradingRule is a trader-defined discipline rule the journal is
// reviewed against.
type TradingRule struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Category    string  `gorm:"size:50;not null;default:'discipline'" json:"category"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (TradingRule) TableName() string { return "trading_rules" }
