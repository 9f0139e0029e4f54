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

type ColumnHandler struct {
	columnRepo repository.ColumnRepositoryInterface
	boardRepo  repository.BoardRepositoryInterface
}

func NewColumnHandler(columnRepo repository.ColumnRepositoryInterface, boardRepo repository.BoardRepositoryInterface) *ColumnHandler {
	return &ColumnHandler{
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
	}
}

type CreateColumnRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateColumnRequest struct {
	Title string `json:"title" binding:"required"`
}

type ReorderColumnsRequest struct {
	ColumnOrder []string `json:"columnOrder" binding:"required"`
}

// Create appends a new column at the end of the board.
func (h *ColumnHandler) Create(c *gin.Context) {
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

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Column title is required"})
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Column title is required"})
		return
	}

	position, err := h.columnRepo.NextPosition(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine column position"})
		return
	}

	column := &model.Column{
		ID:       uuid.New(),
		BoardID:  boardID,
		Title:    title,
		Position: position,
	}
	if err := h.columnRepo.Create(c.Request.Context(), column); err != nil {
		log.Printf("column create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"column": ColumnWithCards{
		ColumnResponse: newColumnResponse(column),
		Cards:          []CardResponse{},
	}})
}

// Reorder applies a full explicit column order for the board. Positions are
// taken from the submitted list alone.
func (h *ColumnHandler) Reorder(c *gin.Context) {
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

	var req ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "columnOrder must be an array of column IDs"})
		return
	}

	order := make([]uuid.UUID, len(req.ColumnOrder))
	for i, idStr := range req.ColumnOrder {
		id, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		order[i] = id
	}

	if err := h.columnRepo.Renumber(c.Request.Context(), boardID, order); err != nil {
		log.Printf("column reorder failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder columns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Update renames a column.
func (h *ColumnHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	column, err := h.columnRepo.GetByIDForUser(c.Request.Context(), columnID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get column"})
		return
	}
	if column == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Column title is required"})
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Column title is required"})
		return
	}

	column.Title = title
	if err := h.columnRepo.Update(c.Request.Context(), column); err != nil {
		log.Printf("column update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update column"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"column": newColumnResponse(column)})
}

// Delete removes a column and closes the position gap among the remaining
// columns. Cards cascade away with the column.
func (h *ColumnHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	column, err := h.columnRepo.GetByIDForUser(c.Request.Context(), columnID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get column"})
		return
	}
	if column == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}

	if err := h.columnRepo.DeleteAndCloseGap(c.Request.Context(), column); err != nil {
		log.Printf("column delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete column"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
