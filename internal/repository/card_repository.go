package repository

import (
	"context"
	"errors"

	"github.com/Sculptor-AI/tralalero/internal/model"
	"github.com/Sculptor-AI/tralalero/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, card *model.Card) error
	GetByIDForUser(ctx context.Context, cardID, userID uuid.UUID) (*model.Card, error)
	GetByColumnIDs(ctx context.Context, columnIDs []uuid.UUID) ([]model.Card, error)
	NextPosition(ctx context.Context, columnID uuid.UUID) (int, error)
	Update(ctx context.Context, card *model.Card) error
	DeleteAndCloseGap(ctx context.Context, card *model.Card) error
	Move(ctx context.Context, cardID, targetColumnID uuid.UUID, newPosition int) error
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// GetByIDForUser resolves the full ownership chain card -> column -> board
// -> user in one joined query; a card id alone never proves ownership.
func (r *CardRepository) GetByIDForUser(ctx context.Context, cardID, userID uuid.UUID) (*model.Card, error) {
	var card model.Card
	err := r.db.WithContext(ctx).
		Joins("JOIN columns ON columns.id = cards.column_id").
		Joins("JOIN boards ON boards.id = columns.board_id").
		Where("cards.id = ? AND boards.user_id = ?", cardID, userID).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) GetByColumnIDs(ctx context.Context, columnIDs []uuid.UUID) ([]model.Card, error) {
	if len(columnIDs) == 0 {
		return nil, nil
	}
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("column_id IN ?", columnIDs).
		Order("position").
		Find(&cards).Error
	return cards, err
}

// NextPosition returns the append slot for a column: max position + 1, or 0
// for an empty column.
func (r *CardRepository) NextPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	var next struct {
		Next int
	}
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Select("COALESCE(MAX(position), -1) + 1 AS next").
		Where("column_id = ?", columnID).
		Scan(&next).Error
	return next.Next, err
}

func (r *CardRepository) Update(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// DeleteAndCloseGap removes the card and decrements every later sibling's
// position, in one transaction.
func (r *CardRepository) DeleteAndCloseGap(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", card.ID).Delete(&model.Card{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return applyShift(tx, &model.Card{}, "column_id", card.ColumnID, ordering.CloseGap(card.Position))
	})
}

// Move places the card at newPosition in targetColumnID, shifting siblings
// to keep both affected columns dense. The card is re-read inside the
// transaction so the shifts work from its current position, and its own row
// is updated only after both shifts have run.
func (r *CardRepository) Move(ctx context.Context, cardID, targetColumnID uuid.UUID, newPosition int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card model.Card
		if err := tx.First(&card, "id = ?", cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		sourceColumnID := card.ColumnID
		oldPosition := card.Position

		if sourceColumnID != targetColumnID {
			sourceShift, destShift := ordering.MoveAcross(oldPosition, newPosition)
			if err := applyShift(tx, &model.Card{}, "column_id", sourceColumnID, sourceShift); err != nil {
				return err
			}
			if err := applyShift(tx, &model.Card{}, "column_id", targetColumnID, destShift); err != nil {
				return err
			}
			card.ColumnID = targetColumnID
			card.Position = newPosition
		} else if oldPosition != newPosition {
			shift := ordering.ReorderWithin(oldPosition, newPosition)
			if err := applyShift(tx, &model.Card{}, "column_id", sourceColumnID, shift); err != nil {
				return err
			}
			card.Position = newPosition
		} else {
			return nil
		}

		return tx.Save(&card).Error
	})
}
