package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/Sculptor-AI/tralalero/internal/auth"
	"github.com/Sculptor-AI/tralalero/internal/model"
	"github.com/Sculptor-AI/tralalero/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	userRepo    repository.UserRepositoryInterface
	sessionRepo repository.SessionRepositoryInterface
	boardRepo   repository.BoardRepositoryInterface
	jwtSecret   []byte
}

func NewAuthHandler(userRepo repository.UserRepositoryInterface, sessionRepo repository.SessionRepositoryInterface, boardRepo repository.BoardRepositoryInterface, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		boardRepo:   boardRepo,
		jwtSecret:   jwtSecret,
	}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	Avatar          *string `json:"avatar"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
}

// issueSession signs a bearer token and records it as a session row.
func (h *AuthHandler) issueSession(c *gin.Context, user *model.User) (*AuthResponse, error) {
	token, expiresAt, err := auth.GenerateToken(user.ID, user.Email, user.Name, h.jwtSecret)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := h.sessionRepo.Create(c.Request.Context(), session); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:      newUserResponse(user),
		Token:     token,
		ExpiresAt: formatTime(expiresAt),
	}, nil
}

// Signup creates a user, their first board with the three starter columns,
// and an initial session.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, a password of at least 8 characters, and name are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.userRepo.FindByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         req.Name,
	}
	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		log.Printf("signup: create user failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	board := &model.Board{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   "My First Board",
		Icon:   "📋",
		Color:  "sky",
	}
	if err := h.boardRepo.CreateWithColumns(c.Request.Context(), board, defaultColumns()); err != nil {
		log.Printf("signup: create default board failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		log.Printf("signup: issue session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials, issues a fresh session and prunes the user's
// older sessions down to the retention cap.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.userRepo.FindByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}
	// Same response for unknown email and wrong password.
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		log.Printf("login: issue session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	if err := h.sessionRepo.PruneForUser(c.Request.Context(), user.ID, repository.MaxSessionsPerUser); err != nil {
		log.Printf("login: prune sessions failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout deletes the session row for the presented token. A request with no
// usable token is already logged out and still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if err := h.sessionRepo.DeleteByToken(c.Request.Context(), token); err != nil {
		log.Printf("logout: delete session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me resolves the bearer token to its user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// UpdateProfile changes name and avatar, and the password when the current
// one is supplied and verifies.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is required to change password"})
			return
		}
		if len(req.NewPassword) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 8 characters"})
			return
		}
		if !auth.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}

		passwordHash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		user.PasswordHash = passwordHash
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
			return
		}
		user.Name = name
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		log.Printf("profile: update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}
