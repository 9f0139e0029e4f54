package handler

import (
	"github.com/Sculptor-AI/tralalero/internal/model"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Avatar    *string `json:"avatar"`
	CreatedAt string  `json:"createdAt"`
}

func newUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: formatTime(user.CreatedAt),
	}
}

type BoardResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func newBoardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		ID:        board.ID.String(),
		Name:      board.Name,
		Icon:      board.Icon,
		Color:     board.Color,
		CreatedAt: formatTime(board.CreatedAt),
		UpdatedAt: formatTime(board.UpdatedAt),
	}
}

type ColumnResponse struct {
	ID       string `json:"id"`
	BoardID  string `json:"boardId"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func newColumnResponse(column *model.Column) ColumnResponse {
	return ColumnResponse{
		ID:       column.ID.String(),
		BoardID:  column.BoardID.String(),
		Title:    column.Title,
		Position: column.Position,
	}
}

// ColumnWithCards is the nested shape served by the single-board read.
type ColumnWithCards struct {
	ColumnResponse
	Cards []CardResponse `json:"cards"`
}

type CardResponse struct {
	ID          string   `json:"id"`
	ColumnID    string   `json:"columnId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	Priority    *string  `json:"priority"`
	Position    int      `json:"position"`
}

func newCardResponse(card *model.Card) CardResponse {
	return CardResponse{
		ID:          card.ID.String(),
		ColumnID:    card.ColumnID.String(),
		Title:       card.Title,
		Description: card.Description,
		Labels:      card.LabelList(),
		Priority:    card.Priority,
		Position:    card.Position,
	}
}
