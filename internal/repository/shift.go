package repository

import (
	"github.com/Sculptor-AI/tralalero/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// applyShift runs one ranged position update within parentColumn = parentID.
// It translates an ordering.Shift into a single UPDATE so the whole
// reorder stays inside the caller's transaction.
func applyShift(tx *gorm.DB, value interface{}, parentColumn string, parentID uuid.UUID, s ordering.Shift) error {
	if s.Empty() {
		return nil
	}

	q := tx.Model(value).
		Where(parentColumn+" = ?", parentID).
		Where("position >= ?", s.Lo)
	if s.Hi != ordering.NoBound {
		q = q.Where("position <= ?", s.Hi)
	}
	return q.Update("position", gorm.Expr("position + ?", s.Delta)).Error
}
