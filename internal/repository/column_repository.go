package repository

import (
	"context"
	"errors"

	"github.com/Sculptor-AI/tralalero/internal/model"
	"github.com/Sculptor-AI/tralalero/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

type ColumnRepositoryInterface interface {
	Create(ctx context.Context, column *model.Column) error
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	GetByIDForUser(ctx context.Context, columnID, userID uuid.UUID) (*model.Column, error)
	NextPosition(ctx context.Context, boardID uuid.UUID) (int, error)
	Update(ctx context.Context, column *model.Column) error
	DeleteAndCloseGap(ctx context.Context, column *model.Column) error
	Renumber(ctx context.Context, boardID uuid.UUID, order []uuid.UUID) error
}

var _ ColumnRepositoryInterface = (*ColumnRepository)(nil)

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position").
		Find(&columns).Error
	return columns, err
}

// GetByIDForUser fetches a column only when its board belongs to the user;
// the ownership chain is resolved in the query itself.
func (r *ColumnRepository) GetByIDForUser(ctx context.Context, columnID, userID uuid.UUID) (*model.Column, error) {
	var column model.Column
	err := r.db.WithContext(ctx).
		Joins("JOIN boards ON boards.id = columns.board_id").
		Where("columns.id = ? AND boards.user_id = ?", columnID, userID).
		First(&column).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &column, nil
}

// NextPosition returns the append slot for a board: max position + 1, or 0
// for a board with no columns yet.
func (r *ColumnRepository) NextPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	var next struct {
		Next int
	}
	err := r.db.WithContext(ctx).Model(&model.Column{}).
		Select("COALESCE(MAX(position), -1) + 1 AS next").
		Where("board_id = ?", boardID).
		Scan(&next).Error
	return next.Next, err
}

func (r *ColumnRepository) Update(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

// DeleteAndCloseGap removes the column and decrements every later sibling's
// position, in one transaction.
func (r *ColumnRepository) DeleteAndCloseGap(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", column.ID).Delete(&model.Column{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Already gone; nothing to re-close.
			return nil
		}
		return applyShift(tx, &model.Column{}, "board_id", column.BoardID, ordering.CloseGap(column.Position))
	})
}

// Renumber applies a full explicit column order for a board: the submitted
// index becomes the position. Ids not belonging to the board are ignored by
// the board_id condition.
func (r *ColumnRepository) Renumber(ctx context.Context, boardID uuid.UUID, order []uuid.UUID) error {
	positions := ordering.Renumber(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range order {
			if err := tx.Model(&model.Column{}).
				Where("id = ? AND board_id = ?", id, boardID).
				Update("position", positions[id]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
