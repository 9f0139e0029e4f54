package handler

import (
	"net/http"
	"time"

	"github.com/Sculptor-AI/tralalero/internal/middleware"
	"github.com/Sculptor-AI/tralalero/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID pulls the authenticated user id set by the auth middleware.
// It writes the error response itself and returns false when absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// Every new board starts with the same three columns.
func defaultColumns() []model.Column {
	return []model.Column{
		{ID: uuid.New(), Title: "To Do", Position: 0},
		{ID: uuid.New(), Title: "In Progress", Position: 1},
		{ID: uuid.New(), Title: "Done", Position: 2},
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
