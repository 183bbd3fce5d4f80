package routes

import (
	"coffee-chat-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerHealth(app *fiber.App, db *gorm.DB) {
	healthHandler := handlers.NewHealthHandler(db)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)
}
