package main

import (
	"log"

	_ "github.com/Sculptor-AI/tralalero/docs"
	"github.com/Sculptor-AI/tralalero/internal/config"
	"github.com/Sculptor-AI/tralalero/internal/server"
)

// @title           Kanban Board API
// @version         1.0
// @description     REST API for boards, columns, and cards with drag-and-drop ordering.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
