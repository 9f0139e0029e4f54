package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Card priorities. A card without a priority stores NULL.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Labels      string  `gorm:"not null;default:'[]'"`
	Priority    *string `gorm:"type:text"`
	Position    int     `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Column Column `gorm:"foreignKey:ColumnID"`
}

// LabelList decodes the labels column, which holds a JSON string array.
// A row written before labels existed decodes as an empty list.
func (c *Card) LabelList() []string {
	if c.Labels == "" {
		return []string{}
	}
	var labels []string
	if err := json.Unmarshal([]byte(c.Labels), &labels); err != nil {
		return []string{}
	}
	return labels
}

// SetLabelList encodes labels into the JSON-array column.
func (c *Card) SetLabelList(labels []string) error {
	if labels == nil {
		labels = []string{}
	}
	raw, err := json.Marshal(labels)
	if err != nil {
		return err
	}
	c.Labels = string(raw)
	return nil
}
