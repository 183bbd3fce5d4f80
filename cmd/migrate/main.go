package main

import (
	"log"

	"coffee-chat-backend/internal/config"
)

// Applies the schema regardless of DB_AUTO_MIGRATE, then exits.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer config.CloseDB(db)

	if err := config.MigrateAllModels(db, true); err != nil {
		log.Fatal(err)
	}
}
