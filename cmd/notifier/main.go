package main

import (
	"log"

	"teamtask/internal/config"
	"teamtask/internal/notifier"
)

func main() {
	cfg := config.Load()

	db, err := notifier.InitRegistry(cfg.RegistryPath)
	if err != nil {
		log.Fatalf("❌ Failed to open chat registry: %v", err)
	}
	defer db.Close()

	s := notifier.Init(cfg, notifier.NewChatRegistry(db))
	if err := s.Run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
