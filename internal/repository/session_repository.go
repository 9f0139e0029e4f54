package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Sculptor-AI/tralalero/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxSessionsPerUser caps how many live sessions a user keeps; older ones
// are pruned on login.
const MaxSessionsPerUser = 5

type SessionRepository struct {
	db *gorm.DB
}

type SessionRepositoryInterface interface {
	Create(ctx context.Context, session *model.Session) error
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	PruneForUser(ctx context.Context, userID uuid.UUID, keep int) error
}

var _ SessionRepositoryInterface = (*SessionRepository)(nil)

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByToken returns the live session for a token, nil when the token has
// no row or the row has expired.
func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
}

// PruneForUser deletes all but the user's `keep` most recently created
// sessions.
func (r *SessionRepository) PruneForUser(ctx context.Context, userID uuid.UUID, keep int) error {
	newest := r.db.Model(&model.Session{}).
		Select("id").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(keep)

	return r.db.WithContext(ctx).
		Where("user_id = ? AND id NOT IN (?)", userID, newest).
		Delete(&model.Session{}).Error
}
