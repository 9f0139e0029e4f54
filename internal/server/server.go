package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sculptor-AI/tralalero/internal/config"
	"github.com/Sculptor-AI/tralalero/internal/handler"
	"github.com/Sculptor-AI/tralalero/internal/middleware"
	"github.com/Sculptor-AI/tralalero/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := runMigrations(db, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Migrations up to date")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	cardRepo := repository.NewCardRepository(db)

	// Initialize handlers
	jwtSecret := []byte(cfg.JWTSecret)
	authHandler := handler.NewAuthHandler(userRepo, sessionRepo, boardRepo, jwtSecret)
	boardHandler := handler.NewBoardHandler(boardRepo, columnRepo, cardRepo)
	columnHandler := handler.NewColumnHandler(columnRepo, boardRepo)
	cardHandler := handler.NewCardHandler(cardRepo, columnRepo)

	// Public routes. Logout reads the bearer token itself so that a request
	// with a dead token still succeeds.
	r.POST("/auth/signup", authHandler.Signup)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require a verified token backed by a live session
	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware(jwtSecret, sessionRepo))
	{
		authorized.GET("/auth/me", authHandler.Me)
		authorized.PUT("/auth/profile", authHandler.UpdateProfile)

		// Board routes
		authorized.GET("/boards", boardHandler.List)
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards/:id", boardHandler.Get)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Column routes
		authorized.POST("/boards/:id/columns", columnHandler.Create)
		authorized.PUT("/boards/:id/columns", columnHandler.Reorder)
		authorized.PUT("/columns/:id", columnHandler.Update)
		authorized.DELETE("/columns/:id", columnHandler.Delete)

		// Card routes
		authorized.POST("/columns/:id/cards", cardHandler.Create)
		authorized.POST("/cards/move", cardHandler.Move)
		authorized.GET("/cards/:id", cardHandler.Get)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.DELETE("/cards/:id", cardHandler.Delete)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

// runMigrations applies pending SQL migrations against the same connection
// pool gorm uses.
func runMigrations(db *gorm.DB, path string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
