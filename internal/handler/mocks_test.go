package handler_test

import (
	"context"

	"github.com/Sculptor-AI/tralalero/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	session := args.Get(0)
	if session == nil {
		return nil, args.Error(1)
	}
	return session.(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionRepository) PruneForUser(ctx context.Context, userID uuid.UUID, keep int) error {
	args := m.Called(ctx, userID, keep)
	return args.Error(0)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) CreateWithColumns(ctx context.Context, board *model.Board, columns []model.Column) error {
	args := m.Called(ctx, board, columns)
	return args.Error(0)
}

func (m *MockBoardRepository) GetOwned(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, userID)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Error(1)
	}
	return boards.([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) GetByIDForUser(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, boardID, userID)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) Update(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, boardID uuid.UUID) error {
	args := m.Called(ctx, boardID)
	return args.Error(0)
}

type MockColumnRepository struct {
	mock.Mock
}

func (m *MockColumnRepository) Create(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, boardID)
	columns := args.Get(0)
	if columns == nil {
		return nil, args.Error(1)
	}
	return columns.([]model.Column), args.Error(1)
}

func (m *MockColumnRepository) GetByIDForUser(ctx context.Context, columnID, userID uuid.UUID) (*model.Column, error) {
	args := m.Called(ctx, columnID, userID)
	column := args.Get(0)
	if column == nil {
		return nil, args.Error(1)
	}
	return column.(*model.Column), args.Error(1)
}

func (m *MockColumnRepository) NextPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	args := m.Called(ctx, boardID)
	return args.Int(0), args.Error(1)
}

func (m *MockColumnRepository) Update(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) DeleteAndCloseGap(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) Renumber(ctx context.Context, boardID uuid.UUID, order []uuid.UUID) error {
	args := m.Called(ctx, boardID, order)
	return args.Error(0)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByIDForUser(ctx context.Context, cardID, userID uuid.UUID) (*model.Card, error) {
	args := m.Called(ctx, cardID, userID)
	card := args.Get(0)
	if card == nil {
		return nil, args.Error(1)
	}
	return card.(*model.Card), args.Error(1)
}

func (m *MockCardRepository) GetByColumnIDs(ctx context.Context, columnIDs []uuid.UUID) ([]model.Card, error) {
	args := m.Called(ctx, columnIDs)
	cards := args.Get(0)
	if cards == nil {
		return nil, args.Error(1)
	}
	return cards.([]model.Card), args.Error(1)
}

func (m *MockCardRepository) NextPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	args := m.Called(ctx, columnID)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteAndCloseGap(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Move(ctx context.Context, cardID, targetColumnID uuid.UUID, newPosition int) error {
	args := m.Called(ctx, cardID, targetColumnID, newPosition)
	return args.Error(0)
}
