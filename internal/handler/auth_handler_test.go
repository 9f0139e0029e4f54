package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sculptor-AI/tralalero/internal/auth"
	"github.com/Sculptor-AI/tralalero/internal/handler"
	"github.com/Sculptor-AI/tralalero/internal/model"
	"github.com/Sculptor-AI/tralalero/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testSecret = []byte("test-secret-key")

func setupAuthRouter(userRepo *MockUserRepository, sessionRepo *MockSessionRepository, boardRepo *MockBoardRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	h := handler.NewAuthHandler(userRepo, sessionRepo, boardRepo, testSecret)
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)

	return r
}

func TestSignup_Success(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	boardRepo := new(MockBoardRepository)

	userRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	var createdColumns []model.Column
	boardRepo.On("CreateWithColumns", mock.Anything, mock.AnythingOfType("*model.Board"), mock.Anything).
		Run(func(args mock.Arguments) {
			createdColumns = args.Get(2).([]model.Column)
		}).Return(nil)

	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)

	router := setupAuthRouter(userRepo, sessionRepo, boardRepo)
	body, _ := json.Marshal(map[string]string{
		"email":    "New@Example.com",
		"password": "password123",
		"name":     "New User",
	})
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var authResp handler.AuthResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &authResp))
	assert.Equal(t, "new@example.com", authResp.User.Email)
	assert.Equal(t, "New User", authResp.User.Name)
	assert.NotEmpty(t, authResp.Token)
	assert.NotEmpty(t, authResp.ExpiresAt)

	// The starter board comes with three columns at positions 0, 1, 2.
	assert.Len(t, createdColumns, 3)
	titles := []string{createdColumns[0].Title, createdColumns[1].Title, createdColumns[2].Title}
	assert.Equal(t, []string{"To Do", "In Progress", "Done"}, titles)
	for i, col := range createdColumns {
		assert.Equal(t, i, col.Position)
	}

	userRepo.AssertExpectations(t)
	boardRepo.AssertExpectations(t)
	sessionRepo.AssertExpectations(t)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	boardRepo := new(MockBoardRepository)

	userRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{
		ID:    uuid.New(),
		Email: "taken@example.com",
		Name:  "Existing",
	}, nil)

	router := setupAuthRouter(userRepo, sessionRepo, boardRepo)
	body, _ := json.Marshal(map[string]string{
		"email":    "taken@example.com",
		"password": "password123",
		"name":     "Someone Else",
	})
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "An account with this email already exists")
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	boardRepo.AssertNotCalled(t, "CreateWithColumns", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignup_ShortPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	boardRepo := new(MockBoardRepository)

	router := setupAuthRouter(userRepo, sessionRepo, boardRepo)
	body, _ := json.Marshal(map[string]string{
		"email":    "short@example.com",
		"password": "short",
		"name":     "Short Password",
	})
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	userID := uuid.New()
	passwordHash, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	boardRepo := new(MockBoardRepository)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{
		ID:           userID,
		Email:        "user@example.com",
		PasswordHash: passwordHash,
		Name:         "Test User",
	}, nil)
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)
	sessionRepo.On("PruneForUser", mock.Anything, userID, repository.MaxSessionsPerUser).Return(nil)

	router := setupAuthRouter(userRepo, sessionRepo, boardRepo)
	body, _ := json.Marshal(map[string]string{
		"email":    "user@example.com",
		"password": "password123",
	})
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var authResp handler.AuthResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &authResp))
	assert.Equal(t, userID.String(), authResp.User.ID)
	assert.NotEmpty(t, authResp.Token)

	sessionRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	passwordHash, err := auth.HashPassword("correct-password")
	assert.NoError(t, err)

	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	boardRepo := new(MockBoardRepository)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: passwordHash,
		Name:         "Test User",
	}, nil)

	router := setupAuthRouter(userRepo, sessionRepo, boardRepo)
	body, _ := json.Marshal(map[string]string{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid email or password")
	sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	boardRepo := new(MockBoardRepository)

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	router := setupAuthRouter(userRepo, sessionRepo, boardRepo)
	body, _ := json.Marshal(map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Same message as a wrong password so the two are indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid email or password")
}

func TestLogout_DeletesSessionRow(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	boardRepo := new(MockBoardRepository)

	sessionRepo.On("DeleteByToken", mock.Anything, "some-token").Return(nil)

	router := setupAuthRouter(userRepo, sessionRepo, boardRepo)
	req, _ := http.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some-token")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "true")
	sessionRepo.AssertExpectations(t)
}

func TestLogout_WithoutToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	boardRepo := new(MockBoardRepository)

	router := setupAuthRouter(userRepo, sessionRepo, boardRepo)
	req, _ := http.NewRequest("POST", "/auth/logout", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	sessionRepo.AssertNotCalled(t, "DeleteByToken", mock.Anything, mock.Anything)
}
