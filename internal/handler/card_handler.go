package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Sculptor-AI/tralalero/internal/model"
	"github.com/Sculptor-AI/tralalero/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cardRepo   repository.CardRepositoryInterface
	columnRepo repository.ColumnRepositoryInterface
}

func NewCardHandler(cardRepo repository.CardRepositoryInterface, columnRepo repository.ColumnRepositoryInterface) *CardHandler {
	return &CardHandler{
		cardRepo:   cardRepo,
		columnRepo: columnRepo,
	}
}

type CreateCardRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	Priority    string   `json:"priority"`
}

type UpdateCardRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Labels      *[]string `json:"labels"`
	Priority    *string   `json:"priority"`
	ColumnID    *string   `json:"columnId"`
	Position    *int      `json:"position"`
}

type MoveCardRequest struct {
	CardID         string `json:"cardId" binding:"required"`
	SourceColumnID string `json:"sourceColumnId" binding:"required"`
	TargetColumnID string `json:"targetColumnId" binding:"required"`
	NewPosition    *int   `json:"newPosition" binding:"required"`
}

// normalizePriority maps "" and "none" to no priority and validates the
// rest against the known levels.
func normalizePriority(p string) (*string, bool) {
	if p == "" || p == "none" {
		return nil, true
	}
	if !model.ValidPriority(p) {
		return nil, false
	}
	return &p, true
}

// Create appends a new card at the end of the column.
func (h *CardHandler) Create(c *gin.Context) {
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

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Card title is required"})
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Card title is required"})
		return
	}

	priority, valid := normalizePriority(req.Priority)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be high, medium or low"})
		return
	}

	position, err := h.cardRepo.NextPosition(c.Request.Context(), columnID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine card position"})
		return
	}

	card := &model.Card{
		ID:          uuid.New(),
		ColumnID:    columnID,
		Title:       title,
		Description: req.Description,
		Priority:    priority,
		Position:    position,
	}
	if err := card.SetLabelList(req.Labels); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid labels"})
		return
	}

	if err := h.cardRepo.Create(c.Request.Context(), card); err != nil {
		log.Printf("card create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"card": newCardResponse(card)})
}

// Get returns a single card.
func (h *CardHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	card, err := h.cardRepo.GetByIDForUser(c.Request.Context(), cardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": newCardResponse(card)})
}

// Update applies a partial card update. An explicit position here is
// last-write-wins with no sibling reindex; Move is the reindexing path.
func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	card, err := h.cardRepo.GetByIDForUser(c.Request.Context(), cardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title == nil && req.Description == nil && req.Labels == nil &&
		req.Priority == nil && req.ColumnID == nil && req.Position == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updates provided"})
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card title cannot be empty"})
			return
		}
		card.Title = title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.Labels != nil {
		if err := card.SetLabelList(*req.Labels); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid labels"})
			return
		}
	}
	if req.Priority != nil {
		priority, valid := normalizePriority(*req.Priority)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be high, medium or low"})
			return
		}
		card.Priority = priority
	}
	if req.ColumnID != nil {
		targetID, err := uuid.Parse(*req.ColumnID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		target, err := h.columnRepo.GetByIDForUser(c.Request.Context(), targetID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get column"})
			return
		}
		if target == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Target column not found"})
			return
		}
		card.ColumnID = targetID
	}
	if req.Position != nil {
		if *req.Position < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Position cannot be negative"})
			return
		}
		card.Position = *req.Position
	}

	if err := h.cardRepo.Update(c.Request.Context(), card); err != nil {
		log.Printf("card update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": newCardResponse(card)})
}

// Delete removes a card and closes the position gap in its column.
func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	card, err := h.cardRepo.GetByIDForUser(c.Request.Context(), cardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	if err := h.cardRepo.DeleteAndCloseGap(c.Request.Context(), card); err != nil {
		log.Printf("card delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Move relocates a card within its column or across columns, keeping both
// columns' positions dense. Ownership of the card and the target column are
// both checked before anything shifts.
func (h *CardHandler) Move(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cardId, sourceColumnId, targetColumnId, and newPosition are required"})
		return
	}
	if *req.NewPosition < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Position cannot be negative"})
		return
	}

	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}
	targetColumnID, err := uuid.Parse(req.TargetColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	card, err := h.cardRepo.GetByIDForUser(c.Request.Context(), cardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	target, err := h.columnRepo.GetByIDForUser(c.Request.Context(), targetColumnID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get column"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target column not found"})
		return
	}

	if err := h.cardRepo.Move(c.Request.Context(), cardID, targetColumnID, *req.NewPosition); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		log.Printf("card move failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
