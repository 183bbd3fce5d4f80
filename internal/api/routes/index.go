package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Register(app *fiber.App, db *gorm.DB) {
	registerHealth(app, db)

	// API group
	api := app.Group("/api")
	registerChats(api, db)
}
