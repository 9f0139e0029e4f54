package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/Sculptor-AI/tralalero/internal/model"
	"github.com/Sculptor-AI/tralalero/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardRepo  repository.BoardRepositoryInterface
	columnRepo repository.ColumnRepositoryInterface
	cardRepo   repository.CardRepositoryInterface
}

func NewBoardHandler(boardRepo repository.BoardRepositoryInterface, columnRepo repository.ColumnRepositoryInterface, cardRepo repository.CardRepositoryInterface) *BoardHandler {
	return &BoardHandler{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		cardRepo:   cardRepo,
	}
}

type CreateBoardRequest struct {
	Name  string `json:"name" binding:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type UpdateBoardRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// List returns the user's boards, oldest first.
func (h *BoardHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardRepo.GetOwned(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = newBoardResponse(&boards[i])
	}

	c.JSON(http.StatusOK, gin.H{"boards": response})
}

// Create makes a new board with the three starter columns.
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board name is required"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board name is required"})
		return
	}

	icon := req.Icon
	if icon == "" {
		icon = "📋"
	}
	color := req.Color
	if color == "" {
		color = "sky"
	}

	board := &model.Board{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Icon:   icon,
		Color:  color,
	}
	columns := defaultColumns()

	if err := h.boardRepo.CreateWithColumns(c.Request.Context(), board, columns); err != nil {
		log.Printf("board create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	columnResponses := make([]ColumnResponse, len(columns))
	for i := range columns {
		columnResponses[i] = newColumnResponse(&columns[i])
	}

	c.JSON(http.StatusCreated, gin.H{
		"board":   newBoardResponse(board),
		"columns": columnResponses,
	})
}

// Get returns one board with its columns and cards, both ordered by
// position and the cards nested under their columns.
func (h *BoardHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boardRepo.GetByIDForUser(c.Request.Context(), boardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	columns, err := h.columnRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get board"})
		return
	}

	columnIDs := make([]uuid.UUID, len(columns))
	for i, column := range columns {
		columnIDs[i] = column.ID
	}

	cards, err := h.cardRepo.GetByColumnIDs(c.Request.Context(), columnIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get board"})
		return
	}

	cardsByColumn := make(map[uuid.UUID][]CardResponse)
	for i := range cards {
		cardsByColumn[cards[i].ColumnID] = append(cardsByColumn[cards[i].ColumnID], newCardResponse(&cards[i]))
	}

	response := make([]ColumnWithCards, len(columns))
	for i := range columns {
		nested := cardsByColumn[columns[i].ID]
		if nested == nil {
			nested = []CardResponse{}
		}
		response[i] = ColumnWithCards{
			ColumnResponse: newColumnResponse(&columns[i]),
			Cards:          nested,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"board":   newBoardResponse(board),
		"columns": response,
	})
}

// Update applies a partial update of name, icon and color.
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boardRepo.GetByIDForUser(c.Request.Context(), boardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name == nil && req.Icon == nil && req.Color == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updates provided"})
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Board name is required"})
			return
		}
		board.Name = name
	}
	if req.Icon != nil {
		board.Icon = *req.Icon
	}
	if req.Color != nil {
		board.Color = *req.Color
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		log.Printf("board update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"board": newBoardResponse(board)})
}

// Delete removes a board; columns and cards cascade away with it.
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boardRepo.GetByIDForUser(c.Request.Context(), boardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		log.Printf("board delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
