package main

import (
	"log"

	_ "teamtask/docs"
	"teamtask/internal/config"
	"teamtask/internal/server"
)

// @title           Team Task API
// @version         1.0
// @description     API for managing team tasks, assignees and the dashboard.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
