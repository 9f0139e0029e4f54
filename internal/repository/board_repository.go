package repository

import (
	"context"
	"errors"

	"github.com/Sculptor-AI/tralalero/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	CreateWithColumns(ctx context.Context, board *model.Board, columns []model.Column) error
	GetOwned(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	GetByIDForUser(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, boardID uuid.UUID) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithColumns inserts a board and its starter columns in one
// transaction, so a half-created board is never visible.
func (r *BoardRepository) CreateWithColumns(ctx context.Context, board *model.Board, columns []model.Column) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		for i := range columns {
			columns[i].BoardID = board.ID
			if err := tx.Create(&columns[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BoardRepository) GetOwned(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&boards).Error
	return boards, err
}

// GetByIDForUser fetches a board only when the user owns it. Absent and
// not-owned are indistinguishable to the caller.
func (r *BoardRepository) GetByIDForUser(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", boardID, userID).
		First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// Delete removes the board; columns and cards go with it via the schema's
// ON DELETE CASCADE.
func (r *BoardRepository) Delete(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", boardID).Delete(&model.Board{}).Error
}
