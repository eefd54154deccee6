package main

import (
	"fmt"
	"log"
	"net/http"

	"teamtask/internal/config"
	"teamtask/internal/store/emulator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Development stand-in for the remote task store. It speaks the same
// action protocol as the scripted endpoint, backed by Postgres.
func main() {
	cfg := config.Load()

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(&emulator.TaskRow{}, &emulator.AssigneeRow{}); err != nil {
		log.Fatalf("❌ Failed to migrate schema: %v", err)
	}

	r := gin.Default()
	h := emulator.NewHandler(
		emulator.NewTaskRepository(db),
		emulator.NewAssigneeRepository(db),
	)
	h.Register(r)

	log.Printf("🚀 Store emulator running on port %s\n", cfg.StorePort)
	if err := http.ListenAndServe(":"+cfg.StorePort, r); err != nil {
		log.Fatalf("❌ Failed to listen: %s", err)
	}
}
